package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/albapepper/cricket-insights/internal/catalog"
	"github.com/albapepper/cricket-insights/internal/dataset"
	"github.com/albapepper/cricket-insights/internal/report"
)

type sectionWriter func(w io.Writer, sections []report.Section) error

func writerFor(format string) (sectionWriter, error) {
	switch strings.ToLower(format) {
	case "text", "":
		return writeText, nil
	case "json":
		return writeJSON, nil
	case "csv":
		return writeCSV, nil
	}
	return nil, fmt.Errorf("unknown format %q (use text, json or csv)", format)
}

func writeCatalog(w io.Writer, entries []catalog.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSLUG\tGROUP\tFORMATS\tTITLE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.Slug, e.Group, formatList(e.Formats), e.Title)
	}
	return tw.Flush()
}

// writeText prints each section as a heading followed by an aligned table.
func writeText(w io.Writer, sections []report.Section) error {
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s ==\n", s.Entry.Label())
		switch {
		case s.Err != nil:
			fmt.Fprintf(w, "Could not load this report: %v\n", s.Err)
			continue
		case s.Table.Empty():
			fmt.Fprintln(w, "No rows")
			continue
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, rec := range s.Table.Records() {
			fmt.Fprintln(tw, strings.Join(rec, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

type jsonSection struct {
	ID      int      `json:"id"`
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func writeJSON(w io.Writer, sections []report.Section) error {
	out := make([]jsonSection, len(sections))
	for i, s := range sections {
		js := jsonSection{ID: s.Entry.ID, Slug: s.Entry.Slug, Title: s.Entry.Title, Columns: s.Entry.Columns}
		if s.Err != nil {
			js.Error = s.Err.Error()
		} else {
			js.Rows = s.Table.Result().Rows
		}
		out[i] = js
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// writeCSV writes one CSV block per section. With more than one section each
// block is preceded by a "# label" line and followed by a blank line.
func writeCSV(w io.Writer, sections []report.Section) error {
	multi := len(sections) > 1
	for _, s := range sections {
		if multi {
			fmt.Fprintf(w, "# %s\n", s.Entry.Label())
		}
		if s.Err != nil {
			fmt.Fprintf(w, "# error: %v\n", s.Err)
		} else {
			cw := csv.NewWriter(w)
			if err := cw.WriteAll(s.Table.Records()); err != nil {
				return err
			}
		}
		if multi {
			fmt.Fprintln(w)
		}
	}
	return nil
}

func writeStatuses(w io.Writer, statuses []dataset.TableStatus) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FORMAT\tTABLE\tSTATUS")
	for _, st := range statuses {
		status := "ok"
		if !st.OK {
			status = st.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", st.Format, st.Table, status)
	}
	return tw.Flush()
}

func formatList(formats []dataset.Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return strings.Join(names, ",")
}
