package datasettest

import (
	"fmt"
	"math/rand/v2"

	"github.com/albapepper/cricket-insights/internal/dataset"
)

var (
	teams  = []string{"India", "Australia", "England", "Pakistan", "South Africa", "New Zealand"}
	venues = []string{"Eden Gardens", "MCG", "Lord's", "Gaddafi Stadium", "Newlands", "Basin Reserve"}
)

type shape struct {
	matches int
	innings int
	overs   int
}

// Shapes are scaled down from real formats to keep fixtures quick to build
// while still giving top-order batters and front-line bowlers enough balls
// to clear the strike-rate and economy thresholds.
var shapes = map[dataset.Format]shape{
	dataset.Test: {matches: 6, innings: 4, overs: 30},
	dataset.ODI:  {matches: 12, innings: 2, overs: 50},
	dataset.T20:  {matches: 20, innings: 2, overs: 20},
}

func player(team string, n int) string {
	return fmt.Sprintf("%s %02d", team[:3], n)
}

// Season generates a deterministic set of matches for one format. The same
// format and seed always produce the same deliveries.
func Season(format dataset.Format, seed uint64) []Delivery {
	rng := rand.New(rand.NewPCG(seed, uint64(format)+1))
	sh := shapes[format]

	var out []Delivery
	for m := 0; m < sh.matches; m++ {
		matchID := (int(format)+1)*1000 + m + 1
		home := teams[m%len(teams)]
		away := teams[(m+1+rng.IntN(len(teams)-1))%len(teams)]

		toss := "bat"
		if rng.IntN(2) == 1 {
			toss = "field"
		}
		winner := home
		switch r := rng.IntN(10); {
		case r >= 5 && r < 9:
			winner = away
		case r == 9:
			winner = "" // tie or no result
		}
		pom := player(home, 1+rng.IntN(4))
		if winner == away {
			pom = player(away, 1+rng.IntN(4))
		}
		venue := venues[rng.IntN(len(venues))]

		for inn := 1; inn <= sh.innings; inn++ {
			batting, bowling := home, away
			if inn%2 == 0 {
				batting, bowling = away, home
			}
			out = append(out, innings(rng, sh.overs, func(d *Delivery) {
				d.MatchID = matchID
				d.Inning = inn
				d.BattingTeam = batting
				d.Winner = winner
				d.TossDecision = toss
				d.Venue = venue
				d.PlayerOfMatch = pom
			}, batting, bowling)...)
		}
	}
	return out
}

func innings(rng *rand.Rand, overs int, stamp func(*Delivery), batting, bowling string) []Delivery {
	var out []Delivery
	striker, nonStriker, next := 1, 2, 3
	wickets := 0

	for over := 0; over < overs; over++ {
		bowler := player(bowling, 7+over%5)
		for ball := 1; ball <= 6; ball++ {
			d := Delivery{
				Over:       over,
				Ball:       ball,
				Batter:     player(batting, striker),
				NonStriker: player(batting, nonStriker),
				Bowler:     bowler,
			}
			stamp(&d)

			switch r := rng.IntN(100); {
			case r < 40:
			case r < 70:
				d.RunsBatter = 1
			case r < 80:
				d.RunsBatter = 2
			case r < 90:
				d.RunsBatter = 4
			case r < 95:
				d.RunsBatter = 6
			default:
				d.RunsExtras = 1 + rng.IntN(4)
			}
			d.RunsTotal = d.RunsBatter + d.RunsExtras

			if d.RunsTotal == 0 && rng.IntN(12) == 0 {
				d.WicketKind = []string{"bowled", "caught", "lbw"}[rng.IntN(3)]
			}
			out = append(out, d)

			if d.WicketKind != "" {
				wickets++
				if wickets == 10 {
					return out
				}
				striker = next
				next++
				continue
			}
			if d.RunsBatter%2 == 1 {
				striker, nonStriker = nonStriker, striker
			}
		}
		striker, nonStriker = nonStriker, striker
	}
	return out
}
