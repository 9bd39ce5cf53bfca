package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/albapepper/cricket-insights/internal/dataset"
)

// NullText is shown for SQL NULL cells.
const NullText = "—"

// Cell is one value of a rendered table with its display text.
type Cell struct {
	Value any
	Text  string
}

// Table is a result set ready for display. Column and row order are exactly
// those of the query.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// NewTable converts a raw result into a table.
func NewTable(res *dataset.Result) *Table {
	t := &Table{
		Columns: append([]string(nil), res.Columns...),
		Rows:    make([][]Cell, len(res.Rows)),
	}
	for i, row := range res.Rows {
		cells := make([]Cell, len(row))
		for j, v := range row {
			cells[j] = Cell{Value: v, Text: FormatValue(v)}
		}
		t.Rows[i] = cells
	}
	return t
}

// Result converts the table back into a raw result.
func (t *Table) Result() *dataset.Result {
	res := &dataset.Result{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]any, len(t.Rows)),
	}
	for i, row := range t.Rows {
		vals := make([]any, len(row))
		for j, c := range row {
			vals[j] = c.Value
		}
		res.Rows[i] = vals
	}
	return res
}

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return len(t.Rows) == 0 }

// Records returns the header and row texts, e.g. for CSV.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Columns...))
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, c := range row {
			rec[i] = c.Text
		}
		out = append(out, rec)
	}
	return out
}

// FormatValue renders a scanned value. Reals always carry a decimal digit so
// 180 and 180.0 stay distinguishable.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return NullText
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		s := strconv.FormatFloat(x, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}
