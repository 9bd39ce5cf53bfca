package catalog

import (
	"fmt"

	"github.com/albapepper/cricket-insights/internal/dataset"
)

// entries is the dashboard in display order. IDs are 1-based positions.
var entries = []Entry{
	// --- Batting ---
	{
		ID: 1, Slug: "top-run-scorers", Group: Batting,
		Title:   "Top 10 batsmen by total runs in ODIs",
		Formats: []dataset.Format{dataset.ODI},
		Columns: []string{"batter", "total_runs"},
		Ranked:  "total_runs", Order: Descending, Limit: 10,
		build: single(`SELECT batter, SUM(runs_batter) AS total_runs
FROM %[1]s
GROUP BY batter
ORDER BY total_runs DESC, batter ASC
LIMIT 10`),
	},
	{
		ID: 2, Slug: "best-strike-rate", Group: Batting,
		Title:   "Top 10 batsmen by strike rate in T20s (min 100 balls)",
		Formats: []dataset.Format{dataset.T20},
		Columns: []string{"batter", "strike_rate"},
		Ranked:  "strike_rate", Order: Descending, Limit: 10,
		build: single(`SELECT batter, ROUND(SUM(runs_batter) * 100.0 / COUNT(ball), 2) AS strike_rate
FROM %[1]s
GROUP BY batter
HAVING COUNT(ball) >= 100
ORDER BY strike_rate DESC, batter ASC
LIMIT 10`),
	},
	{
		ID: 3, Slug: "most-sixes", Group: Batting,
		Title:   "Most sixes hit in Test matches",
		Formats: []dataset.Format{dataset.Test},
		Columns: []string{"batter", "sixes"},
		Ranked:  "sixes", Order: Descending, Limit: 10,
		build: single(`SELECT batter, COUNT(*) AS sixes
FROM %[1]s
WHERE runs_batter = 6
GROUP BY batter
ORDER BY sixes DESC, batter ASC
LIMIT 10`),
	},
	{
		ID: 4, Slug: "most-centuries", Group: Batting,
		Title:   "Most centuries in ODIs",
		Formats: []dataset.Format{dataset.ODI},
		Columns: []string{"batter", "centuries"},
		Ranked:  "centuries", Order: Descending, Limit: 10,
		build: single(`SELECT batter, COUNT(*) AS centuries
FROM (
  SELECT match_id, batter, SUM(runs_batter) AS total_runs
  FROM %[1]s
  GROUP BY match_id, batter
  HAVING SUM(runs_batter) >= 100
) AS scores
GROUP BY batter
ORDER BY centuries DESC, batter ASC
LIMIT 10`),
	},
	{
		ID: 5, Slug: "most-ducks", Group: Batting,
		Title:   "Most ducks (0 runs) in T20s",
		Formats: []dataset.Format{dataset.T20},
		Columns: []string{"batter", "ducks"},
		Ranked:  "ducks", Order: Descending, Limit: 10,
		build: single(`SELECT batter, COUNT(*) AS ducks
FROM (
  SELECT match_id, batter, SUM(runs_batter) AS total_runs
  FROM %[1]s
  GROUP BY match_id, batter
  HAVING SUM(runs_batter) = 0
) AS scores
GROUP BY batter
ORDER BY ducks DESC, batter ASC
LIMIT 10`),
	},

	// --- Bowling ---
	{
		ID: 6, Slug: "leading-wicket-takers", Group: Bowling,
		Title:   "Leading wicket-takers in T20 matches",
		Formats: []dataset.Format{dataset.T20},
		Columns: []string{"bowler", "wickets"},
		Ranked:  "wickets", Order: Descending, Limit: 10,
		build: single(`SELECT bowler, COUNT(*) AS wickets
FROM %[1]s
WHERE wicket_kind IS NOT NULL AND wicket_kind <> ''
GROUP BY bowler
ORDER BY wickets DESC, bowler ASC
LIMIT 10`),
	},
	{
		ID: 7, Slug: "best-bowling-average", Group: Bowling,
		Title:   "Best bowling average in ODIs (min 10 wickets)",
		Formats: []dataset.Format{dataset.ODI},
		Columns: []string{"bowler", "bowling_avg"},
		Ranked:  "bowling_avg", Order: Ascending, Limit: 10,
		build: single(`SELECT bowler,
  ROUND(SUM(runs_total) * 1.0 / SUM(CASE WHEN wicket_kind <> '' THEN 1 ELSE 0 END), 2) AS bowling_avg
FROM %[1]s
GROUP BY bowler
HAVING SUM(CASE WHEN wicket_kind <> '' THEN 1 ELSE 0 END) >= 10
ORDER BY bowling_avg ASC, bowler ASC
LIMIT 10`),
	},
	{
		ID: 8, Slug: "best-economy", Group: Bowling,
		Title:   "Economy rate of bowlers in T20s (min 60 balls)",
		Formats: []dataset.Format{dataset.T20},
		Columns: []string{"bowler", "economy"},
		Ranked:  "economy", Order: Ascending, Limit: 10,
		build: single(`SELECT bowler, ROUND(SUM(runs_total) * 6.0 / COUNT(ball), 2) AS economy
FROM %[1]s
GROUP BY bowler
HAVING COUNT(ball) >= 60
ORDER BY economy ASC, bowler ASC
LIMIT 10`),
	},
	{
		ID: 9, Slug: "most-dot-balls", Group: Bowling,
		Title:   "Most dot balls bowled in Test matches",
		Formats: []dataset.Format{dataset.Test},
		Columns: []string{"bowler", "dot_balls"},
		Ranked:  "dot_balls", Order: Descending, Limit: 10,
		build: single(`SELECT bowler, COUNT(*) AS dot_balls
FROM %[1]s
WHERE runs_total = 0
GROUP BY bowler
ORDER BY dot_balls DESC, bowler ASC
LIMIT 10`),
	},
	{
		// An over is every delivery sharing (match, bowler, over number);
		// interrupted or shared overs are not split out.
		ID: 10, Slug: "most-maiden-overs", Group: Bowling,
		Title:   "Most maiden overs in an ODI",
		Formats: []dataset.Format{dataset.ODI},
		Columns: []string{"match_id", "bowler", "maiden_overs"},
		Ranked:  "maiden_overs", Order: Descending, Limit: 10,
		build: single(`SELECT match_id, bowler, COUNT(*) AS maiden_overs
FROM (
  SELECT d.match_id, d.bowler, d."over", SUM(d.runs_total) AS total_runs
  FROM %[1]s AS d
  GROUP BY d.match_id, d.bowler, d."over"
  HAVING SUM(runs_total) = 0
) AS maidens
GROUP BY match_id, bowler
ORDER BY maiden_overs DESC, match_id ASC, bowler ASC
LIMIT 10`),
	},

	// --- Match & Team ---
	{
		// The denominator counts every delivery where the batting side went
		// on to win. It is the same for every team, so win_pct ranks teams by
		// wins rather than measuring a true percentage. Rounded to two places
		// like the other ratio entries.
		ID: 11, Slug: "highest-win-percentage", Group: Teams,
		Title:   "Team with highest win percentage in Test cricket (relative index)",
		Formats: []dataset.Format{dataset.Test},
		Columns: []string{"team", "win_pct"},
		Ranked:  "win_pct", Order: Descending, Limit: 1,
		build: single(`SELECT winner AS team,
  ROUND(COUNT(*) * 100.0 / (
    SELECT COUNT(*) FROM %[1]s
    WHERE batting_team = winner
  ), 2) AS win_pct
FROM (
  SELECT DISTINCT match_id, winner
  FROM %[1]s
  WHERE winner IS NOT NULL AND winner <> ''
) AS results
GROUP BY winner
ORDER BY win_pct DESC, team ASC
LIMIT 1`),
	},
	{
		ID: 12, Slug: "most-matches-played", Group: Teams,
		Title:   "Most matches played by a team across formats",
		Formats: []dataset.Format{dataset.Test, dataset.ODI, dataset.T20},
		Columns: []string{"batting_team", "matches_played"},
		Ranked:  "matches_played", Order: Descending,
		build: func(t []string) string {
			return fmt.Sprintf(`SELECT batting_team, COUNT(*) AS matches_played
FROM (
  SELECT DISTINCT match_id, batting_team FROM %[1]s
  UNION ALL
  SELECT DISTINCT match_id, batting_team FROM %[2]s
  UNION ALL
  SELECT DISTINCT match_id, batting_team FROM %[3]s
) AS appearances
GROUP BY batting_team
ORDER BY matches_played DESC, batting_team ASC`, t[0], t[1], t[2])
		},
	},
	{
		ID: 13, Slug: "most-wins", Group: Teams,
		Title:   "Most wins by a team in T20",
		Formats: []dataset.Format{dataset.T20},
		Columns: []string{"winner", "wins"},
		Ranked:  "wins", Order: Descending, Limit: 10,
		build: single(`SELECT winner, COUNT(*) AS wins
FROM (
  SELECT DISTINCT match_id, winner
  FROM %[1]s
  WHERE winner IS NOT NULL AND winner <> ''
) AS results
GROUP BY winner
ORDER BY wins DESC, winner ASC
LIMIT 10`),
	},
	{
		// No winner with a recorded toss stands in for a tie; no-results
		// are counted too.
		ID: 14, Slug: "tied-matches", Group: Teams,
		Title:   "Tied matches in ODIs",
		Formats: []dataset.Format{dataset.ODI},
		Columns: []string{"tied_matches"},
		build: single(`SELECT COUNT(*) AS tied_matches
FROM (
  SELECT DISTINCT match_id
  FROM %[1]s
  WHERE (winner IS NULL OR winner = '')
    AND toss_decision IS NOT NULL AND toss_decision <> ''
) AS undecided`),
	},
	{
		ID: 15, Slug: "most-common-venues", Group: Teams,
		Title:   "Most common venues for Test matches",
		Formats: []dataset.Format{dataset.Test},
		Columns: []string{"venue", "matches"},
		Ranked:  "matches", Order: Descending, Limit: 10,
		build: single(`SELECT venue, COUNT(DISTINCT match_id) AS matches
FROM %[1]s
GROUP BY venue
ORDER BY matches DESC, venue ASC
LIMIT 10`),
	},

	// --- Performance Trends ---
	{
		ID: 16, Slug: "average-first-innings", Group: Trends,
		Title:   "Average first innings score in T20",
		Formats: []dataset.Format{dataset.T20},
		Columns: []string{"avg_score"},
		build: single(`SELECT ROUND(AVG(total_runs), 2) AS avg_score
FROM (
  SELECT match_id, SUM(runs_total) AS total_runs
  FROM %[1]s
  WHERE inning = 1
  GROUP BY match_id
) AS first_innings`),
	},
	{
		ID: 17, Slug: "highest-scoring-matches", Group: Trends,
		Title:   "Highest scoring ODI matches",
		Formats: []dataset.Format{dataset.ODI},
		Columns: []string{"match_id", "total_runs"},
		Ranked:  "total_runs", Order: Descending, Limit: 5,
		build: single(`SELECT match_id, SUM(runs_total) AS total_runs
FROM %[1]s
GROUP BY match_id
ORDER BY total_runs DESC, match_id ASC
LIMIT 5`),
	},
	{
		ID: 18, Slug: "most-extras-conceded", Group: Trends,
		Title:   "Most extras conceded in a Test match",
		Formats: []dataset.Format{dataset.Test},
		Columns: []string{"match_id", "total_extras"},
		Ranked:  "total_extras", Order: Descending, Limit: 5,
		build: single(`SELECT match_id, SUM(runs_extras) AS total_extras
FROM %[1]s
GROUP BY match_id
ORDER BY total_extras DESC, match_id ASC
LIMIT 5`),
	},
	{
		// Combined runs for every delivery the pair was at the crease,
		// across matches and innings; not split at wickets.
		ID: 19, Slug: "top-batting-pairs", Group: Trends,
		Title:   "Top batting pairs in T20s by combined runs (batter + non-striker)",
		Formats: []dataset.Format{dataset.T20},
		Columns: []string{"batter", "non_striker", "partnership_runs"},
		Ranked:  "partnership_runs", Order: Descending, Limit: 10,
		build: single(`SELECT batter, non_striker, SUM(runs_total) AS partnership_runs
FROM %[1]s
GROUP BY batter, non_striker
ORDER BY partnership_runs DESC, batter ASC, non_striker ASC
LIMIT 10`),
	},
	{
		ID: 20, Slug: "most-player-of-match", Group: Trends,
		Title:   "Players with most player-of-the-match awards in ODIs",
		Formats: []dataset.Format{dataset.ODI},
		Columns: []string{"player_of_match", "awards"},
		Ranked:  "awards", Order: Descending, Limit: 10,
		build: single(`SELECT player_of_match, COUNT(DISTINCT match_id) AS awards
FROM %[1]s
GROUP BY player_of_match
ORDER BY awards DESC, player_of_match ASC
LIMIT 10`),
	},
}
