package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/albapepper/cricket-insights/internal/catalog"
)

//go:embed templates/*.html
var templates embed.FS

// Heading is the page title.
const Heading = "🏏 Cricket Insights Dashboard"

// Group is a run of consecutive sections sharing a catalog group.
type Group struct {
	Name     catalog.Group
	Sections []Section
}

// Page is everything the dashboard template needs.
type Page struct {
	Heading     string
	Groups      []Group
	Total       int
	Failed      int
	GeneratedAt time.Time
	Elapsed     time.Duration
}

// NewPage groups sections for display without reordering them.
func NewPage(sections []Section, elapsed time.Duration) *Page {
	p := &Page{
		Heading:     Heading,
		Total:       len(sections),
		Failed:      Failed(sections),
		GeneratedAt: time.Now().UTC(),
		Elapsed:     elapsed,
	}
	for _, s := range sections {
		if n := len(p.Groups); n == 0 || p.Groups[n-1].Name != s.Entry.Group {
			p.Groups = append(p.Groups, Group{Name: s.Entry.Group})
		}
		g := &p.Groups[len(p.Groups)-1]
		g.Sections = append(g.Sections, s)
	}
	return p
}

var funcMap = template.FuncMap{
	"fmtDuration": func(d time.Duration) string {
		ms := float64(d.Microseconds()) / 1000
		if ms < 1000 {
			return fmt.Sprintf("%.0fms", ms)
		}
		return fmt.Sprintf("%.1fs", ms/1000)
	},
	"fmtTime": func(t time.Time) string {
		return t.Format("Jan 2 15:04:05 UTC")
	},
	"numeric": func(c Cell) bool {
		switch c.Value.(type) {
		case int64, float64:
			return true
		}
		return false
	},
}

var pageTmpl = template.Must(template.New("dashboard.html").Funcs(funcMap).ParseFS(templates, "templates/dashboard.html"))

// WritePage renders the dashboard HTML.
func WritePage(w io.Writer, p *Page) error {
	return pageTmpl.Execute(w, p)
}
