// Package datasettest builds throwaway SQLite dataset files for tests.
package datasettest

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/albapepper/cricket-insights/internal/config"
	"github.com/albapepper/cricket-insights/internal/dataset"
)

// Delivery is one fixture row. Empty WicketKind, Winner and TossDecision are
// stored as NULL; a zero RunsTotal is filled from RunsBatter + RunsExtras.
type Delivery struct {
	MatchID       int
	Inning        int
	Over          int
	Ball          int
	BattingTeam   string
	Batter        string
	NonStriker    string
	Bowler        string
	RunsBatter    int
	RunsExtras    int
	RunsTotal     int
	WicketKind    string
	Winner        string
	TossDecision  string
	Venue         string
	PlayerOfMatch string
}

// Fixture is a writable SQLite file with the three delivery tables.
type Fixture struct {
	t    testing.TB
	path string
	db   *sql.DB
}

// New creates an empty dataset file under t.TempDir().
func New(t testing.TB) *Fixture {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cricket_matches.db")
	db, err := sql.Open(config.DriverSQLite, path)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	f := &Fixture{t: t, path: path, db: db}
	for _, format := range dataset.Formats {
		f.Exec(createTableSQL(format.Table()))
	}
	return f
}

// Path returns the dataset file path.
func (f *Fixture) Path() string { return f.path }

// Dataset returns a read-only Dataset over the fixture file.
func (f *Fixture) Dataset() *dataset.Dataset {
	f.t.Helper()
	ds, err := dataset.Open(config.DriverSQLite, config.SQLiteDSN(f.path))
	if err != nil {
		f.t.Fatalf("open dataset: %v", err)
	}
	return ds
}

// Exec runs a statement against the fixture file.
func (f *Fixture) Exec(stmt string, args ...any) {
	f.t.Helper()
	if _, err := f.db.Exec(stmt, args...); err != nil {
		f.t.Fatalf("exec %q: %v", stmt, err)
	}
}

// Int runs a single-value query, for cross-checking catalog results.
func (f *Fixture) Int(query string, args ...any) int64 {
	f.t.Helper()
	var n sql.NullInt64
	if err := f.db.QueryRow(query, args...).Scan(&n); err != nil {
		f.t.Fatalf("query %q: %v", query, err)
	}
	return n.Int64
}

// Add inserts deliveries into a format's table in one transaction.
func (f *Fixture) Add(format dataset.Format, deliveries ...Delivery) {
	f.t.Helper()

	tx, err := f.db.Begin()
	if err != nil {
		f.t.Fatalf("begin: %v", err)
	}
	stmt, err := tx.Prepare(insertSQL(format.Table()))
	if err != nil {
		tx.Rollback()
		f.t.Fatalf("prepare insert: %v", err)
	}
	defer stmt.Close()

	for _, d := range deliveries {
		total := d.RunsTotal
		if total == 0 {
			total = d.RunsBatter + d.RunsExtras
		}
		_, err := stmt.Exec(
			d.MatchID, d.Inning, d.Over, d.Ball,
			d.BattingTeam, d.Batter, d.NonStriker, d.Bowler,
			d.RunsBatter, d.RunsExtras, total,
			nullIfEmpty(d.WicketKind), nullIfEmpty(d.Winner), nullIfEmpty(d.TossDecision),
			d.Venue, d.PlayerOfMatch,
		)
		if err != nil {
			tx.Rollback()
			f.t.Fatalf("insert delivery: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		f.t.Fatalf("commit: %v", err)
	}
}

// Seed fills every format table with a generated season.
func (f *Fixture) Seed(seed uint64) {
	f.t.Helper()
	for _, format := range dataset.Formats {
		f.Add(format, Season(format, seed)...)
	}
}

func createTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE %s (
		match_id INTEGER NOT NULL,
		inning INTEGER NOT NULL,
		"over" INTEGER NOT NULL,
		ball INTEGER NOT NULL,
		batting_team TEXT,
		batter TEXT,
		non_striker TEXT,
		bowler TEXT,
		runs_batter INTEGER NOT NULL DEFAULT 0,
		runs_extras INTEGER NOT NULL DEFAULT 0,
		runs_total INTEGER NOT NULL DEFAULT 0,
		wicket_kind TEXT,
		winner TEXT,
		toss_decision TEXT,
		venue TEXT,
		player_of_match TEXT
	)`, table)
}

func insertSQL(table string) string {
	cols := make([]string, len(dataset.Columns))
	marks := make([]string, len(dataset.Columns))
	for i, c := range dataset.Columns {
		cols[i] = dataset.QuoteIdent(c)
		marks[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(cols, ", "), strings.Join(marks, ", "))
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
