// Package performance turns weekly matchup scoring into per-player point
// histories, per-position rank tables, and the ADP-vs-reality modifier the
// valuation engine folds into its composite score.
package performance

import (
	"log/slog"
	"sort"

	"sleeperscout/internal/models"
)

// maxWeek caps the history load; fantasy regular seasons end at week 15.
const maxWeek = 15

// modifierCap bounds the raw performance modifier before the engine applies
// its tier-specific re-clamp.
const modifierCap = 15.0

// positionWeights scale the rank differential per position. Positions with
// deeper weekly pools swing harder.
var positionWeights = map[models.Position]float64{
	models.PositionQB:  0.2,
	models.PositionRB:  0.3,
	models.PositionWR:  0.25,
	models.PositionTE:  0.15,
	models.PositionDEF: 0.05,
	models.PositionK:   0.05,
}

// expectedRankMultipliers convert an overall ADP into an expected
// positional rank, approximating how many players of each position go in
// the first 150 picks.
var expectedRankMultipliers = map[models.Position]float64{
	models.PositionQB:  0.08,
	models.PositionRB:  0.25,
	models.PositionWR:  0.35,
	models.PositionTE:  0.08,
	models.PositionDEF: 0.08,
	models.PositionK:   0.08,
}

const defaultWeight = 0.15

// MatchupFetcher is the slice of the gateway the tracker needs.
type MatchupFetcher interface {
	GetMatchups(leagueID string, week int) ([]models.Matchup, error)
}

// WeekPoints is one sample in a player's point history.
type WeekPoints struct {
	Week   int
	Points float64
}

// LoadSummary reports how a history load went. Failed weeks are skipped,
// not fatal; the caller decides whether the holes matter.
type LoadSummary struct {
	WeeksLoaded int
	FailedWeeks []int
	Players     int
}

// Modifier is the outcome of comparing a player's actual positional rank
// against the rank their draft position implied.
type Modifier struct {
	Value        float64
	Reason       string
	CurrentRank  int
	ExpectedRank int
	Differential int
}

// Tracker accumulates point histories and positional rankings for one
// league. positionOf resolves a player ID to its position; histories of
// players it cannot resolve are kept but never ranked.
type Tracker struct {
	api        MatchupFetcher
	leagueID   string
	positionOf func(playerID string) (models.Position, bool)

	scores   map[string][]WeekPoints
	rankings map[models.Position]map[string]int
}

func NewTracker(api MatchupFetcher, leagueID string, positionOf func(string) (models.Position, bool)) *Tracker {
	return &Tracker{
		api:        api,
		leagueID:   leagueID,
		positionOf: positionOf,
		scores:     make(map[string][]WeekPoints),
		rankings:   make(map[models.Position]map[string]int),
	}
}

// Load pulls matchup scoring for weeks 1..min(currentWeek, 15) and rebuilds
// the rank tables. A week whose fetch fails is logged, recorded in the
// summary, and skipped.
func (t *Tracker) Load(currentWeek int) LoadSummary {
	var summary LoadSummary

	last := currentWeek
	if last > maxWeek {
		last = maxWeek
	}

	for week := 1; week <= last; week++ {
		matchups, err := t.api.GetMatchups(t.leagueID, week)
		if err != nil {
			slog.Warn("Could not load week data", "week", week, "error", err)
			summary.FailedWeeks = append(summary.FailedWeeks, week)
			continue
		}

		for _, matchup := range matchups {
			for playerID, points := range matchup.PlayersPoints {
				t.scores[playerID] = append(t.scores[playerID], WeekPoints{Week: week, Points: points})
			}
		}
		summary.WeeksLoaded++
	}

	t.calculateRankings()
	summary.Players = len(t.scores)

	return summary
}

// calculateRankings rebuilds the per-position rank tables from the point
// histories. Players are pooled by position, not globally; a WR3 season is
// compared against other receivers only.
func (t *Tracker) calculateRankings() {
	type playerTotal struct {
		id    string
		total float64
	}

	pools := make(map[models.Position][]playerTotal)

	for playerID, samples := range t.scores {
		var total float64
		for _, s := range samples {
			total += s.Points
		}
		if total <= 0 {
			continue
		}

		pos, ok := t.positionOf(playerID)
		if !ok {
			continue
		}
		pools[pos] = append(pools[pos], playerTotal{id: playerID, total: total})
	}

	t.rankings = make(map[models.Position]map[string]int)
	for pos, pool := range pools {
		sort.Slice(pool, func(i, j int) bool {
			if pool[i].total != pool[j].total {
				return pool[i].total > pool[j].total
			}
			return pool[i].id < pool[j].id
		})

		ranks := make(map[string]int, len(pool))
		for i, p := range pool {
			ranks[p.id] = i + 1
		}
		t.rankings[pos] = ranks
	}
}

// History returns the recorded point samples for a player.
func (t *Tracker) History(playerID string) []WeekPoints {
	return t.scores[playerID]
}

// PositionRank returns a player's 1-based rank within their position pool.
func (t *Tracker) PositionRank(playerID string, pos models.Position) (int, bool) {
	rank, ok := t.rankings[pos][playerID]
	return rank, ok
}

// ExpectedRank converts an overall ADP ordinal into the positional rank a
// draft slot of that height implies, floored at 1.
func ExpectedRank(adp int, pos models.Position) int {
	multiplier, ok := expectedRankMultipliers[pos]
	if !ok {
		multiplier = defaultWeight
	}

	expected := int(float64(adp) * multiplier)
	if expected < 1 {
		expected = 1
	}
	return expected
}

// PerformanceModifier scores a player's season against expectation. When
// both ADP sources are present the larger (more conservative) expected rank
// wins, so outperforming a low bar is rewarded less. The result is clamped
// to ±15.
func (t *Tracker) PerformanceModifier(playerID string, pos models.Position, leagueADP, externalADP *int) Modifier {
	currentRank, ok := t.PositionRank(playerID, pos)
	if !ok {
		return Modifier{Reason: "no performance data"}
	}

	var expected int
	switch {
	case leagueADP != nil && externalADP != nil:
		league := ExpectedRank(*leagueADP, pos)
		external := ExpectedRank(*externalADP, pos)
		expected = league
		if external > league {
			expected = external
		}
	case leagueADP != nil:
		expected = ExpectedRank(*leagueADP, pos)
	case externalADP != nil:
		expected = ExpectedRank(*externalADP, pos)
	default:
		return Modifier{Reason: "no ADP data", CurrentRank: currentRank}
	}

	differential := expected - currentRank

	weight, ok := positionWeights[pos]
	if !ok {
		weight = defaultWeight
	}

	raw := float64(differential) * weight * 2
	if raw > modifierCap {
		raw = modifierCap
	}
	if raw < -modifierCap {
		raw = -modifierCap
	}

	return Modifier{
		Value:        raw,
		Reason:       "rank vs expectation",
		CurrentRank:  currentRank,
		ExpectedRank: expected,
		Differential: differential,
	}
}
