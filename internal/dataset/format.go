package dataset

import (
	"fmt"
	"strings"
)

// Format is a match format. Each format has its own delivery table.
type Format int

const (
	Test Format = iota // two-innings long form
	ODI                // 50-over limited
	T20                // 20-over limited
)

// Formats lists every format in table order.
var Formats = []Format{Test, ODI, T20}

// Table returns the name of the format's delivery table.
func (f Format) Table() string {
	switch f {
	case Test:
		return "test_matches"
	case ODI:
		return "odi_matches"
	case T20:
		return "t20_matches"
	}
	return ""
}

func (f Format) String() string {
	switch f {
	case Test:
		return "Test"
	case ODI:
		return "ODI"
	case T20:
		return "T20"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// MarshalText encodes the format by its short name.
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// ParseFormat accepts a format name or table name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, f.String()) || strings.EqualFold(s, f.Table()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown match format %q", s)
}

// Columns is the delivery-table schema every format table must expose.
var Columns = []string{
	"match_id",
	"inning",
	"over",
	"ball",
	"batting_team",
	"batter",
	"non_striker",
	"bowler",
	"runs_batter",
	"runs_extras",
	"runs_total",
	"wicket_kind",
	"winner",
	"toss_decision",
	"venue",
	"player_of_match",
}

// QuoteIdent double-quotes an identifier. "over" is reserved in Postgres.
// In a SELECT, SQLite reads a quoted name that matches no column as a string
// literal; use Qualify there.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Qualify quotes an identifier behind a table alias, e.g. d."over". A
// qualified name never falls back to a literal, so a missing column is an
// error on every driver.
func Qualify(alias, name string) string {
	return alias + "." + QuoteIdent(name)
}
