// Package report runs catalog entries and renders their results.
//
// Render makes one linear pass over the entries it is given. Each entry is
// isolated: its failure is recorded on its own Section and the pass moves on.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/albapepper/cricket-insights/internal/catalog"
	"github.com/albapepper/cricket-insights/internal/dataset"
)

// ErrSchemaDrift is returned when a query's columns differ from the columns
// its catalog entry declares.
var ErrSchemaDrift = errors.New("result columns do not match catalog")

// Querier runs one read-only statement. *dataset.Dataset satisfies it.
type Querier interface {
	Query(ctx context.Context, stmt string) (*dataset.Result, error)
}

// Section is the outcome of one catalog entry.
type Section struct {
	Entry   catalog.Entry
	Table   *Table
	Err     error
	Elapsed time.Duration
}

// OK reports whether the entry produced a table.
func (s Section) OK() bool { return s.Err == nil }

// Run executes a single entry and converts its result.
func Run(ctx context.Context, q Querier, e catalog.Entry) (t *Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			t, err = nil, fmt.Errorf("entry %d panicked: %v", e.ID, r)
		}
	}()

	res, err := q.Query(ctx, e.SQL())
	if err != nil {
		return nil, err
	}
	if !slices.Equal(res.Columns, e.Columns) {
		return nil, fmt.Errorf("%w: got %v, want %v", ErrSchemaDrift, res.Columns, e.Columns)
	}
	return NewTable(res), nil
}

// Render runs every entry in order and returns one section per entry, in the
// same order. Failures are logged and kept on their section.
func Render(ctx context.Context, q Querier, entries []catalog.Entry, logger *slog.Logger) []Section {
	sections := make([]Section, 0, len(entries))
	for _, e := range entries {
		start := time.Now()
		t, err := Run(ctx, q, e)
		s := Section{Entry: e, Table: t, Err: err, Elapsed: time.Since(start)}
		if err != nil {
			logger.Error("Report section failed",
				"id", e.ID, "slug", e.Slug, "error", err)
		} else {
			logger.Debug("Report section rendered",
				"id", e.ID, "slug", e.Slug, "rows", len(t.Rows),
				"duration", s.Elapsed.Round(time.Millisecond))
		}
		sections = append(sections, s)
	}
	return sections
}

// Failed counts sections with an error.
func Failed(sections []Section) int {
	n := 0
	for _, s := range sections {
		if s.Err != nil {
			n++
		}
	}
	return n
}
