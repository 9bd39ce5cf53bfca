// Package dataset reads the cricket delivery tables. Every query opens its own
// handle, runs one statement to completion, fetches the whole result and
// closes the handle; nothing is shared or pooled between queries.
package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "modernc.org/sqlite"             // registers "sqlite"

	"github.com/albapepper/cricket-insights/internal/config"
)

// ErrUnsupportedDriver is returned for a driver name other than sqlite or pgx.
var ErrUnsupportedDriver = errors.New("unsupported dataset driver")

// Result is a fully materialized result set.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Dataset describes where the delivery tables live. It holds no open handle.
type Dataset struct {
	driver string
	dsn    string
}

// New creates a Dataset from configuration.
func New(cfg *config.Config) (*Dataset, error) {
	return Open(cfg.DatasetDriver, cfg.DatasetDSN())
}

// Open creates a Dataset for a database/sql driver name and DSN.
func Open(driver, dsn string) (*Dataset, error) {
	switch driver {
	case config.DriverSQLite, config.DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	return &Dataset{driver: driver, dsn: dsn}, nil
}

// Driver returns the database/sql driver name.
func (d *Dataset) Driver() string { return d.driver }

// Query runs one read-only statement and returns every row it produces.
func (d *Dataset) Query(ctx context.Context, stmt string) (*Result, error) {
	conn, err := d.open(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("read column types: %w", err)
	}
	numeric := make([]bool, len(types))
	for i, ct := range types {
		switch strings.ToUpper(ct.DatabaseTypeName()) {
		case "NUMERIC", "DECIMAL":
			numeric[i] = true
		}
	}

	res := &Result{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(res.Rows)+1, err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				v = string(b)
				vals[i] = v
			}
			if str, ok := v.(string); ok && numeric[i] {
				vals[i] = numericValue(str)
			}
		}
		res.Rows = append(res.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch rows: %w", err)
	}
	return res, nil
}

// numericValue converts the text form of a Postgres numeric, which pgx's
// database/sql adapter returns as a string, into the int64 or float64 SQLite
// would have produced for the same expression.
func numericValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}

// Ping verifies the dataset can be opened.
func (d *Dataset) Ping(ctx context.Context) error {
	conn, err := d.open(ctx)
	if err != nil {
		return err
	}
	return conn.Close()
}

// TableStatus is the schema check outcome for one format table.
type TableStatus struct {
	Format Format `json:"format"`
	Table  string `json:"table"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// CheckSchema verifies every format table exposes the delivery columns. The
// probe selects zero rows, so it costs one parse per table.
func (d *Dataset) CheckSchema(ctx context.Context) ([]TableStatus, error) {
	quoted := make([]string, len(Columns))
	for i, c := range Columns {
		quoted[i] = Qualify("d", c)
	}
	list := strings.Join(quoted, ", ")

	statuses := make([]TableStatus, 0, len(Formats))
	var failed int
	for _, f := range Formats {
		st := TableStatus{Format: f, Table: f.Table(), OK: true}
		if _, err := d.Query(ctx, fmt.Sprintf("SELECT %s FROM %s AS d LIMIT 0", list, f.Table())); err != nil {
			st.OK = false
			st.Error = err.Error()
			failed++
		}
		statuses = append(statuses, st)
	}
	if failed > 0 {
		return statuses, fmt.Errorf("schema check: %d of %d tables failed", failed, len(Formats))
	}
	return statuses, nil
}

// open returns a single dedicated handle. sql.Open is lazy, so the ping is
// where an unreadable dataset surfaces.
func (d *Dataset) open(ctx context.Context) (*sql.DB, error) {
	conn, err := sql.Open(d.driver, d.dsn)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	return conn, nil
}
