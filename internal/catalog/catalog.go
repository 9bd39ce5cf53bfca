// Package catalog holds the fixed, ordered list of dashboard queries.
//
// Each entry is a parameterless aggregate over one or more delivery tables.
// The SQL is kept portable between SQLite and Postgres: derived tables are
// always aliased, HAVING repeats the aggregate instead of naming its alias,
// "over" is quoted behind a table alias so a missing column cannot turn into
// a string literal, and ratios are forced to numeric before ROUND. Ranked
// entries break ties on their name columns so results are identical on every
// run.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/albapepper/cricket-insights/internal/dataset"
)

// ErrUnknownEntry is returned by Lookup for a key matching no entry.
var ErrUnknownEntry = errors.New("unknown catalog entry")

// Group is the dashboard heading an entry is listed under.
type Group string

const (
	Batting Group = "Batting Insights"
	Bowling Group = "Bowling Insights"
	Teams   Group = "Match & Team Insights"
	Trends  Group = "Performance Trends"
)

// Order is the direction of a ranked column.
type Order int

const (
	Unranked Order = iota
	Descending
	Ascending
)

// Entry is one catalog query.
type Entry struct {
	ID      int
	Slug    string
	Group   Group
	Title   string
	Formats []dataset.Format
	Columns []string
	Ranked  string // column the rows are ordered by, empty when unranked
	Order   Order
	Limit   int // 0 means every row

	build func(tables []string) string
}

// Label is the section heading, e.g. "01. Top 10 batsmen by total runs in ODIs".
func (e Entry) Label() string {
	return fmt.Sprintf("%02d. %s", e.ID, e.Title)
}

// SQL returns the statement for the entry's tables.
func (e Entry) SQL() string {
	tables := make([]string, len(e.Formats))
	for i, f := range e.Formats {
		tables[i] = f.Table()
	}
	return e.build(tables)
}

// On returns a copy of the entry reading other format tables. The number of
// formats must match the entry's.
func (e Entry) On(formats ...dataset.Format) (Entry, error) {
	if len(formats) != len(e.Formats) {
		return Entry{}, fmt.Errorf("entry %d reads %d table(s), got %d", e.ID, len(e.Formats), len(formats))
	}
	e.Formats = append([]dataset.Format(nil), formats...)
	return e, nil
}

// All returns the catalog in display order.
func All() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Lookup finds an entry by ordinal ("7", "07") or slug.
func Lookup(key string) (Entry, error) {
	key = strings.TrimSpace(key)
	if n, err := strconv.Atoi(key); err == nil {
		if n >= 1 && n <= len(entries) {
			return entries[n-1], nil
		}
		return Entry{}, fmt.Errorf("%w: %s", ErrUnknownEntry, key)
	}
	for _, e := range entries {
		if strings.EqualFold(e.Slug, key) {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrUnknownEntry, key)
}

// single adapts a one-table statement template. Every %[1]s is the table.
func single(tmpl string) func([]string) string {
	return func(t []string) string {
		return fmt.Sprintf(tmpl, t[0])
	}
}
