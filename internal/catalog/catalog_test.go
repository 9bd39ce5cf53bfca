package catalog_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/albapepper/cricket-insights/internal/catalog"
	"github.com/albapepper/cricket-insights/internal/dataset"
	"github.com/albapepper/cricket-insights/internal/dataset/datasettest"
)

type delivery = datasettest.Delivery

func run(t *testing.T, ds *dataset.Dataset, e catalog.Entry) *dataset.Result {
	t.Helper()
	res, err := ds.Query(context.Background(), e.SQL())
	if err != nil {
		t.Fatalf("entry %d (%s): %v\n%s", e.ID, e.Slug, err, e.SQL())
	}
	return res
}

func lookup(t *testing.T, key string) catalog.Entry {
	t.Helper()
	e, err := catalog.Lookup(key)
	if err != nil {
		t.Fatalf("Lookup(%q) error = %v", key, err)
	}
	return e
}

func on(t *testing.T, e catalog.Entry, formats ...dataset.Format) catalog.Entry {
	t.Helper()
	out, err := e.On(formats...)
	if err != nil {
		t.Fatalf("On() error = %v", err)
	}
	return out
}

func TestCatalogShape(t *testing.T) {
	all := catalog.All()
	if len(all) != 20 {
		t.Fatalf("catalog has %d entries, want 20", len(all))
	}

	slugs := make(map[string]bool)
	for i, e := range all {
		if e.ID != i+1 {
			t.Errorf("entry at position %d has ID %d", i, e.ID)
		}
		if slugs[e.Slug] {
			t.Errorf("duplicate slug %q", e.Slug)
		}
		slugs[e.Slug] = true

		if len(e.Columns) == 0 || len(e.Formats) == 0 || e.Title == "" {
			t.Errorf("entry %d is incomplete: %+v", e.ID, e)
		}
		if e.Ranked != "" && e.Order == catalog.Unranked {
			t.Errorf("entry %d ranks %q without an order", e.ID, e.Ranked)
		}
		sql := e.SQL()
		for _, f := range e.Formats {
			if !strings.Contains(sql, f.Table()) {
				t.Errorf("entry %d SQL does not read %s", e.ID, f.Table())
			}
		}
	}

	if got := all[0].Label(); got != "01. Top 10 batsmen by total runs in ODIs" {
		t.Errorf("Label() = %q", got)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := catalog.All()
	all[0].Title = "changed"
	if catalog.All()[0].Title == "changed" {
		t.Fatal("All() exposes the package catalog")
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		key    string
		wantID int
	}{
		{"1", 1},
		{"07", 7},
		{" 20 ", 20},
		{"most-maiden-overs", 10},
		{"TIED-MATCHES", 14},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := lookup(t, tt.key); got.ID != tt.wantID {
				t.Errorf("Lookup(%q).ID = %d, want %d", tt.key, got.ID, tt.wantID)
			}
		})
	}

	for _, key := range []string{"0", "21", "-1", "nope", ""} {
		if _, err := catalog.Lookup(key); !errors.Is(err, catalog.ErrUnknownEntry) {
			t.Errorf("Lookup(%q) error = %v, want ErrUnknownEntry", key, err)
		}
	}
}

func TestOnRetargetsTables(t *testing.T) {
	e := lookup(t, "1")
	test := on(t, e, dataset.Test)
	if !strings.Contains(test.SQL(), "test_matches") || strings.Contains(test.SQL(), "odi_matches") {
		t.Errorf("retargeted SQL:\n%s", test.SQL())
	}
	if !strings.Contains(e.SQL(), "odi_matches") {
		t.Error("On() modified the original entry")
	}

	if _, err := lookup(t, "12").On(dataset.ODI); err == nil {
		t.Error("On() accepted one format for a three-table entry")
	}
}

func TestTopRunScorersOnLongForm(t *testing.T) {
	fx := datasettest.New(t)
	fx.Add(dataset.Test,
		delivery{MatchID: 1, Inning: 1, Batter: "A", Bowler: "X", RunsBatter: 4},
		delivery{MatchID: 1, Inning: 1, Ball: 1, Batter: "A", Bowler: "X", RunsBatter: 6},
	)

	res := run(t, fx.Dataset(), on(t, lookup(t, "1"), dataset.Test))
	want := [][]any{{"A", int64(10)}}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("rows = %#v, want %#v", res.Rows, want)
	}
}

func TestAverageFirstInnings(t *testing.T) {
	fx := datasettest.New(t)
	var balls []delivery
	for i := 0; i < 18; i++ {
		balls = append(balls, delivery{MatchID: 7, Inning: 1, Over: i / 6, Ball: i%6 + 1, Batter: "A", Bowler: "X", RunsTotal: 10})
	}
	fx.Add(dataset.T20, balls...)

	res := run(t, fx.Dataset(), lookup(t, "average-first-innings"))
	if len(res.Rows) != 1 || res.Rows[0][0] != 180.0 {
		t.Errorf("rows = %#v, want [[180.0]]", res.Rows)
	}
}

func TestTiedMatches(t *testing.T) {
	fx := datasettest.New(t)
	fx.Add(dataset.ODI,
		delivery{MatchID: 1, Winner: "India", TossDecision: "bat"},
		delivery{MatchID: 2, Winner: "England", TossDecision: "field"},
		delivery{MatchID: 3, Winner: "", TossDecision: ""},
	)
	tied := lookup(t, "tied-matches")

	res := run(t, fx.Dataset(), tied)
	if !reflect.DeepEqual(res.Rows, [][]any{{int64(0)}}) {
		t.Fatalf("rows = %#v, want [[0]]", res.Rows)
	}

	fx.Add(dataset.ODI,
		delivery{MatchID: 4, TossDecision: "bat"},
		delivery{MatchID: 4, Ball: 1, TossDecision: "bat"},
		delivery{MatchID: 5, TossDecision: "field"},
	)
	fx.Exec("UPDATE odi_matches SET winner = '' WHERE match_id = 5")

	res = run(t, fx.Dataset(), tied)
	if !reflect.DeepEqual(res.Rows, [][]any{{int64(2)}}) {
		t.Errorf("rows = %#v, want [[2]]", res.Rows)
	}
}

func TestCenturiesAndDucksAggregatePerMatch(t *testing.T) {
	fx := datasettest.New(t)
	var balls []delivery
	add := func(match int, batter string, runs ...int) {
		for i, r := range runs {
			balls = append(balls, delivery{MatchID: match, Inning: 1, Ball: i, Batter: batter, Bowler: "X", RunsBatter: r})
		}
	}
	add(1, "B", 50, 50) // century in one match
	add(2, "B", 60)     // 60 + 60 across two matches is not a century
	add(3, "B", 60)
	add(1, "C", 0, 0) // two ducks
	add(2, "C", 0)
	add(3, "C", 1)

	fx.Add(dataset.ODI, balls...)
	fx.Add(dataset.T20, balls...)

	res := run(t, fx.Dataset(), lookup(t, "most-centuries"))
	if !reflect.DeepEqual(res.Rows, [][]any{{"B", int64(1)}}) {
		t.Errorf("centuries = %#v", res.Rows)
	}

	res = run(t, fx.Dataset(), lookup(t, "most-ducks"))
	if !reflect.DeepEqual(res.Rows, [][]any{{"C", int64(2)}}) {
		t.Errorf("ducks = %#v", res.Rows)
	}
}

func TestMaidenOvers(t *testing.T) {
	fx := datasettest.New(t)
	var balls []delivery
	for over := 0; over < 3; over++ {
		for b := 1; b <= 6; b++ {
			d := delivery{MatchID: 9, Inning: 1, Over: over, Ball: b, Batter: "A", Bowler: "X"}
			if over == 1 && b == 4 {
				d.RunsBatter = 1
			}
			balls = append(balls, d)
		}
	}
	fx.Add(dataset.ODI, balls...)

	res := run(t, fx.Dataset(), lookup(t, "most-maiden-overs"))
	want := [][]any{{int64(9), "X", int64(2)}}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("rows = %#v, want %#v", res.Rows, want)
	}
}

func TestMaidenOversNeedsOverColumn(t *testing.T) {
	fx := datasettest.New(t)
	fx.Add(dataset.ODI, delivery{MatchID: 9, Inning: 1, Over: 0, Ball: 1, Batter: "A", Bowler: "X"})
	fx.Exec(`ALTER TABLE odi_matches RENAME COLUMN "over" TO over_no`)

	e := lookup(t, "most-maiden-overs")
	res, err := fx.Dataset().Query(context.Background(), e.SQL())
	if err == nil {
		t.Fatalf("query succeeded without an over column: %#v", res.Rows)
	}
}

func TestBowlingAverageUsesAllRunsConceded(t *testing.T) {
	fx := datasettest.New(t)
	var balls []delivery
	for i := 0; i < 10; i++ {
		balls = append(balls,
			delivery{MatchID: 1, Over: i, Ball: 1, Bowler: "X", WicketKind: "bowled"},
			delivery{MatchID: 1, Over: i, Ball: 2, Bowler: "X", RunsBatter: 3},
		)
	}
	// Nine wickets falls short of the threshold.
	for i := 0; i < 9; i++ {
		balls = append(balls, delivery{MatchID: 1, Over: 20 + i, Ball: 1, Bowler: "Y", WicketKind: "caught"})
	}
	fx.Add(dataset.ODI, balls...)

	res := run(t, fx.Dataset(), lookup(t, "best-bowling-average"))
	want := [][]any{{"X", 3.0}}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("rows = %#v, want %#v", res.Rows, want)
	}
}

func TestMatchesPlayedDeduplicatesPerTable(t *testing.T) {
	fx := datasettest.New(t)
	for _, f := range dataset.Formats {
		fx.Add(f,
			delivery{MatchID: 1, BattingTeam: "India"},
			delivery{MatchID: 1, Ball: 1, BattingTeam: "India"},
			delivery{MatchID: 1, Ball: 2, BattingTeam: "England"},
		)
	}
	fx.Add(dataset.T20, delivery{MatchID: 2, BattingTeam: "India"})

	res := run(t, fx.Dataset(), lookup(t, "most-matches-played"))
	want := [][]any{{"India", int64(4)}, {"England", int64(3)}}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("rows = %#v, want %#v", res.Rows, want)
	}
}

func TestEmptyDatasetIsNotAnError(t *testing.T) {
	ds := datasettest.New(t).Dataset()
	for _, e := range catalog.All() {
		res := run(t, ds, e)
		if !reflect.DeepEqual(res.Columns, e.Columns) {
			t.Errorf("entry %d columns = %v, want %v", e.ID, res.Columns, e.Columns)
		}
	}
}

// TestSeededSeason checks the catalog-wide properties on a generated season.
func TestSeededSeason(t *testing.T) {
	fx := datasettest.New(t)
	fx.Seed(42)
	ds := fx.Dataset()

	alwaysRows := map[int]bool{1: true, 3: true, 6: true, 9: true, 11: true, 12: true, 13: true,
		14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 2: true, 8: true}

	for _, e := range catalog.All() {
		t.Run(e.Slug, func(t *testing.T) {
			first := run(t, ds, e)
			second := run(t, ds, e)
			if !reflect.DeepEqual(first, second) {
				t.Fatalf("two runs differ:\n%#v\n%#v", first, second)
			}
			if !reflect.DeepEqual(first.Columns, e.Columns) {
				t.Errorf("columns = %v, want %v", first.Columns, e.Columns)
			}
			if e.Limit > 0 && len(first.Rows) > e.Limit {
				t.Errorf("%d rows, limit %d", len(first.Rows), e.Limit)
			}
			if alwaysRows[e.ID] && len(first.Rows) == 0 {
				t.Errorf("no rows on a seeded season")
			}
			if e.Ranked != "" {
				assertRanked(t, e, first)
			}
		})
	}
}

func TestThresholdsOnSeededSeason(t *testing.T) {
	fx := datasettest.New(t)
	fx.Seed(7)
	ds := fx.Dataset()

	res := run(t, ds, lookup(t, "best-strike-rate"))
	for _, row := range res.Rows {
		if n := fx.Int("SELECT COUNT(ball) FROM t20_matches WHERE batter = ?", row[0]); n < 100 {
			t.Errorf("batter %v faced %d balls, below 100", row[0], n)
		}
	}

	res = run(t, ds, lookup(t, "best-economy"))
	for _, row := range res.Rows {
		if n := fx.Int("SELECT COUNT(ball) FROM t20_matches WHERE bowler = ?", row[0]); n < 60 {
			t.Errorf("bowler %v bowled %d balls, below 60", row[0], n)
		}
	}
}

func TestThresholdsExcludeShortSpells(t *testing.T) {
	fx := datasettest.New(t)
	var balls []delivery
	for i := 0; i < 100; i++ {
		balls = append(balls, delivery{MatchID: 1, Over: i / 6, Ball: i%6 + 1, Batter: "A", Bowler: "X", RunsBatter: 1})
	}
	// 99 sixes and 59 dot balls would top both tables without the minimums.
	for i := 0; i < 99; i++ {
		balls = append(balls, delivery{MatchID: 2, Over: i / 6, Ball: i%6 + 1, Batter: "S", Bowler: "Z", RunsBatter: 6})
	}
	for i := 0; i < 59; i++ {
		balls = append(balls, delivery{MatchID: 3, Over: i / 6, Ball: i%6 + 1, Batter: "D", Bowler: "Y"})
	}
	fx.Add(dataset.T20, balls...)
	ds := fx.Dataset()

	res := run(t, ds, lookup(t, "best-strike-rate"))
	if want := [][]any{{"A", 100.0}}; !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("strike rate rows = %#v, want %#v", res.Rows, want)
	}

	res = run(t, ds, lookup(t, "best-economy"))
	want := [][]any{{"X", 6.0}, {"Z", 36.0}}
	if !reflect.DeepEqual(res.Rows, want) {
		t.Errorf("economy rows = %#v, want %#v", res.Rows, want)
	}
}

func TestEntrySemantics(t *testing.T) {
	tests := []struct {
		key    string
		format dataset.Format
		balls  []delivery
		want   [][]any
	}{
		{
			// 4 deliveries where the batting side won, shared by every team:
			// India's 2 wins give 200/4 = 50.0, not a share of matches played.
			key:    "highest-win-percentage",
			format: dataset.Test,
			balls: []delivery{
				{MatchID: 1, BattingTeam: "India", Winner: "India"},
				{MatchID: 1, Ball: 1, BattingTeam: "India", Winner: "India"},
				{MatchID: 1, Ball: 2, BattingTeam: "England", Winner: "India"},
				{MatchID: 2, BattingTeam: "England", Winner: "England"},
				{MatchID: 2, Ball: 1, BattingTeam: "India", Winner: "England"},
				{MatchID: 3, BattingTeam: "India", Winner: "India"},
				{MatchID: 3, Ball: 1, BattingTeam: "Australia", Winner: "India"},
			},
			want: [][]any{{"India", 50.0}},
		},
		{
			key:    "most-wins",
			format: dataset.T20,
			balls: []delivery{
				{MatchID: 1, Winner: "India"},
				{MatchID: 1, Ball: 1, Winner: "India"},
				{MatchID: 2, Winner: "India"},
				{MatchID: 3, Winner: "England"},
				{MatchID: 3, Ball: 1, Winner: "England"},
				{MatchID: 3, Ball: 2, Winner: "England"},
				{MatchID: 3, Ball: 3, Winner: "England"},
				{MatchID: 4},
			},
			want: [][]any{{"India", int64(2)}, {"England", int64(1)}},
		},
		{
			key:    "most-common-venues",
			format: dataset.Test,
			balls: []delivery{
				{MatchID: 1, Venue: "Lord's"},
				{MatchID: 1, Ball: 1, Venue: "Lord's"},
				{MatchID: 2, Venue: "Lord's"},
				{MatchID: 3, Venue: "Eden Gardens"},
				{MatchID: 3, Ball: 1, Venue: "Eden Gardens"},
				{MatchID: 3, Ball: 2, Venue: "Eden Gardens"},
				{MatchID: 3, Ball: 3, Venue: "Eden Gardens"},
			},
			want: [][]any{{"Lord's", int64(2)}, {"Eden Gardens", int64(1)}},
		},
		{
			key:    "highest-scoring-matches",
			format: dataset.ODI,
			balls: []delivery{
				{MatchID: 1, RunsTotal: 10},
				{MatchID: 2, RunsTotal: 20},
				{MatchID: 3, RunsTotal: 15},
				{MatchID: 3, Ball: 1, RunsTotal: 15},
				{MatchID: 4, RunsTotal: 30},
				{MatchID: 5, RunsTotal: 5},
				{MatchID: 6, RunsBatter: 38, RunsExtras: 2},
			},
			want: [][]any{
				{int64(6), int64(40)}, {int64(3), int64(30)}, {int64(4), int64(30)},
				{int64(2), int64(20)}, {int64(1), int64(10)},
			},
		},
		{
			key:    "most-extras-conceded",
			format: dataset.Test,
			balls: []delivery{
				{MatchID: 1, RunsExtras: 3},
				{MatchID: 1, Ball: 1, RunsExtras: 2, RunsBatter: 4},
				{MatchID: 2, RunsExtras: 1},
				{MatchID: 3, RunsBatter: 6},
			},
			want: [][]any{{int64(1), int64(5)}, {int64(2), int64(1)}, {int64(3), int64(0)}},
		},
		{
			// The pair is ordered: B batting with A is not A batting with B.
			key:    "top-batting-pairs",
			format: dataset.T20,
			balls: []delivery{
				{MatchID: 1, Batter: "A", NonStriker: "B", RunsBatter: 4},
				{MatchID: 1, Ball: 1, Batter: "B", NonStriker: "A", RunsBatter: 1, RunsExtras: 1},
				{MatchID: 2, Inning: 2, Batter: "A", NonStriker: "B", RunsBatter: 3},
			},
			want: [][]any{{"A", "B", int64(7)}, {"B", "A", int64(2)}},
		},
		{
			key:    "most-player-of-match",
			format: dataset.ODI,
			balls: []delivery{
				{MatchID: 1, PlayerOfMatch: "Kohli"},
				{MatchID: 1, Ball: 1, PlayerOfMatch: "Kohli"},
				{MatchID: 2, PlayerOfMatch: "Kohli"},
				{MatchID: 3, PlayerOfMatch: "Root"},
				{MatchID: 3, Ball: 1, PlayerOfMatch: "Root"},
				{MatchID: 3, Ball: 2, PlayerOfMatch: "Root"},
				{MatchID: 3, Ball: 3, PlayerOfMatch: "Root"},
			},
			want: [][]any{{"Kohli", int64(2)}, {"Root", int64(1)}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			fx := datasettest.New(t)
			fx.Add(tt.format, tt.balls...)

			res := run(t, fx.Dataset(), lookup(t, tt.key))
			if !reflect.DeepEqual(res.Rows, tt.want) {
				t.Errorf("rows = %#v, want %#v", res.Rows, tt.want)
			}
		})
	}
}

func assertRanked(t *testing.T, e catalog.Entry, res *dataset.Result) {
	t.Helper()
	col := -1
	for i, c := range res.Columns {
		if c == e.Ranked {
			col = i
		}
	}
	if col < 0 {
		t.Fatalf("ranked column %q missing from %v", e.Ranked, res.Columns)
	}
	for i := 1; i < len(res.Rows); i++ {
		prev, cur := number(t, res.Rows[i-1][col]), number(t, res.Rows[i][col])
		if e.Order == catalog.Descending && cur > prev {
			t.Errorf("row %d: %v > %v in descending column %s", i, cur, prev, e.Ranked)
		}
		if e.Order == catalog.Ascending && cur < prev {
			t.Errorf("row %d: %v < %v in ascending column %s", i, cur, prev, e.Ranked)
		}
	}
}

func number(t *testing.T, v any) float64 {
	t.Helper()
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	}
	t.Fatalf("non-numeric ranked value %#v", v)
	return 0
}
