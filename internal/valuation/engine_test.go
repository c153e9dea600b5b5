package valuation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sleeperscout/internal/adp"
	"sleeperscout/internal/models"
	"sleeperscout/internal/performance"
	"sleeperscout/internal/repository/memory"
)

type staticMatchups struct {
	matchups []models.Matchup
}

func (s staticMatchups) GetMatchups(leagueID string, week int) ([]models.Matchup, error) {
	return s.matchups, nil
}

func intPtr(v int) *int { return &v }

func newTestEngine(players map[string]models.Player, draft map[string]models.DraftInfo) (*Engine, *memory.Repository) {
	repo := memory.NewRepository()
	repo.SavePlayers(players)
	for id, info := range draft {
		repo.SaveDraftInfo(id, info)
	}
	return NewEngine(repo, nil, nil), repo
}

func TestBaseScoreUnrankedIsZero(t *testing.T) {
	engine, _ := newTestEngine(map[string]models.Player{
		"1": {ID: "1", Position: models.PositionWR, SearchRank: intPtr(9999)},
		"2": {ID: "2", Position: models.PositionWR},
	}, nil)

	assert.Zero(t, engine.Breakdown("1").BaseScore)
	assert.Zero(t, engine.Breakdown("2").BaseScore)
}

func TestBaseScoreScaling(t *testing.T) {
	engine, _ := newTestEngine(map[string]models.Player{
		"1": {ID: "1", Position: models.PositionWR, SearchRank: intPtr(50)},
	}, map[string]models.DraftInfo{
		"1": {PickNo: 40, Round: 4},
	})

	// (1000-50)/12.5 = 76, tier 2 multiplier 1.0.
	assert.InDelta(t, 76.0, engine.Breakdown("1").BaseScore, 0.001)
}

func TestTierOneFloor(t *testing.T) {
	// Round-1 pick with no usable signals still scores at least 85.
	engine, _ := newTestEngine(map[string]models.Player{
		"1": {ID: "1", Position: models.PositionWR},
	}, map[string]models.DraftInfo{
		"1": {PickNo: 5, Round: 1},
	})

	b := engine.Breakdown("1")
	assert.Equal(t, TierElite, b.Tier)
	assert.Equal(t, 85.0, b.Total)
}

func TestTierOneFloorHoldsUnderInjury(t *testing.T) {
	engine, _ := newTestEngine(map[string]models.Player{
		"1": {ID: "1", Position: models.PositionRB, InjuryStatus: "Out"},
	}, map[string]models.DraftInfo{
		"1": {PickNo: 1, Round: 1},
	})

	assert.GreaterOrEqual(t, engine.Score("1"), 85.0)
}

func TestTierThreeCap(t *testing.T) {
	engine, repo := newTestEngine(map[string]models.Player{
		"1": {ID: "1", Position: models.PositionRB, SearchRank: intPtr(1), DepthChartOrder: intPtr(1)},
	}, map[string]models.DraftInfo{
		"1": {PickNo: 120, Round: 10},
	})
	repo.AddTrending("1", 1000)

	b := engine.Breakdown("1")
	assert.Equal(t, TierDepth, b.Tier)
	assert.Equal(t, 85.0, b.Total)
}

func TestTierThreeHasNoFloor(t *testing.T) {
	engine, _ := newTestEngine(map[string]models.Player{
		"1": {ID: "1", Position: models.PositionWR, InjuryStatus: "Out"},
	}, nil)

	// Undrafted, unranked, injured: everything negative, floored at zero.
	assert.Equal(t, 0.0, engine.Score("1"))
}

func TestTierTwoSoftCapCompresses(t *testing.T) {
	engine, _ := newTestEngine(map[string]models.Player{
		"1": {ID: "1", Position: models.PositionWR, SearchRank: intPtr(50), DepthChartOrder: intPtr(2)},
	}, map[string]models.DraftInfo{
		"1": {PickNo: 40, Round: 5},
	})

	// base 76 + depth 10*1.2 + draft bonus 8 (base >= 50) = 96.
	// Soft cap: 95 + (96-95)*0.3 = 95.3.
	assert.InDelta(t, 95.3, engine.Score("1"), 0.001)
}

func TestTierTwoBelowSoftCapUnchanged(t *testing.T) {
	engine, _ := newTestEngine(map[string]models.Player{
		"1": {ID: "1", Position: models.PositionWR, SearchRank: intPtr(50)},
	}, map[string]models.DraftInfo{
		"1": {PickNo: 40, Round: 5},
	})

	// base 76 + draft bonus 8 = 84: above floor 65, below soft cap.
	assert.InDelta(t, 84.0, engine.Score("1"), 0.001)
}

func TestTrendingBonusMonotonicAndClamped(t *testing.T) {
	players := map[string]models.Player{
		"1": {ID: "1", Position: models.PositionWR},
	}

	var prev float64 = -1000
	for _, trending := range []int{-500, -100, -10, 0, 10, 50, 100, 500} {
		engine, repo := newTestEngine(players, nil)
		repo.AddTrending("1", trending)
		bonus := engine.Breakdown("1").TrendingBonus
		assert.GreaterOrEqual(t, bonus, prev, "trending bonus must be monotonic in trending score")
		prev = bonus
	}

	// Clamped at +/-20 before the tier multiplier (0.9 for tier 3).
	engine, repo := newTestEngine(players, nil)
	repo.AddTrending("1", 10000)
	assert.InDelta(t, 18.0, engine.Breakdown("1").TrendingBonus, 0.001)

	engine, repo = newTestEngine(players, nil)
	repo.AddTrending("1", -10000)
	assert.InDelta(t, -18.0, engine.Breakdown("1").TrendingBonus, 0.001)
}

func TestInjuryPenalties(t *testing.T) {
	cases := []struct {
		status  string
		penalty float64
	}{
		{"", 0},
		{"Healthy", 0},
		{"Questionable", -5},
		{"Doubtful", -15},
		{"Out", -30},
		{"IR", -30},
	}

	for _, tc := range cases {
		engine, _ := newTestEngine(map[string]models.Player{
			"1": {ID: "1", Position: models.PositionWR, InjuryStatus: tc.status},
		}, nil)
		assert.Equal(t, tc.penalty, engine.Breakdown("1").InjuryPenalty, "status %q", tc.status)
	}
}

func TestDepthChartBonusTopThreeOnly(t *testing.T) {
	cases := []struct {
		slot  *int
		bonus float64
	}{
		{intPtr(1), 20},
		{intPtr(2), 10},
		{intPtr(3), 5},
		{intPtr(4), 0},
		{nil, 0},
	}

	for _, tc := range cases {
		engine, _ := newTestEngine(map[string]models.Player{
			"1": {ID: "1", Position: models.PositionWR, DepthChartOrder: tc.slot},
		}, nil)
		// Tier 3 depth multiplier is 1.0.
		assert.Equal(t, tc.bonus, engine.Breakdown("1").DepthBonus)
	}
}

func TestScarcityBonusEliteOnly(t *testing.T) {
	draft := map[string]models.DraftInfo{
		"rb": {PickNo: 2, Round: 1},
	}
	engine, _ := newTestEngine(map[string]models.Player{
		"rb": {ID: "rb", Position: models.PositionRB},
	}, draft)
	assert.Equal(t, 4.0, engine.Breakdown("rb").ScarcityBonus)

	// Same position, tier 3: no scarcity adjustment.
	engine, _ = newTestEngine(map[string]models.Player{
		"rb": {ID: "rb", Position: models.PositionRB},
	}, nil)
	assert.Zero(t, engine.Breakdown("rb").ScarcityBonus)
}

func TestDraftBonusRequiresDraftInfo(t *testing.T) {
	engine, _ := newTestEngine(map[string]models.Player{
		"1": {ID: "1", Position: models.PositionWR, SearchRank: intPtr(100)},
	}, nil)
	assert.Zero(t, engine.Breakdown("1").DraftBonus)
}

func TestScoreNeverFailsForUnknownPlayer(t *testing.T) {
	engine, _ := newTestEngine(map[string]models.Player{}, nil)
	assert.Equal(t, 0.0, engine.Score("nope"))
}

func TestTierAssignment(t *testing.T) {
	draft := map[string]models.DraftInfo{
		"r1": {Round: 1}, "r3": {Round: 3}, "r4": {Round: 4},
		"r6": {Round: 6}, "r7": {Round: 7},
	}
	engine, _ := newTestEngine(map[string]models.Player{}, draft)

	assert.Equal(t, TierElite, engine.Tier("r1"))
	assert.Equal(t, TierElite, engine.Tier("r3"))
	assert.Equal(t, TierSolid, engine.Tier("r4"))
	assert.Equal(t, TierSolid, engine.Tier("r6"))
	assert.Equal(t, TierDepth, engine.Tier("r7"))
	assert.Equal(t, TierDepth, engine.Tier("undrafted"))
}

func TestPerformanceModifierReClampedPerTier(t *testing.T) {
	repo := memory.NewRepository()
	repo.SavePlayers(map[string]models.Player{
		"wr1": {ID: "wr1", FirstName: "Player", LastName: "One", Position: models.PositionWR},
	})

	fetcher := staticMatchups{matchups: []models.Matchup{
		{PlayersPoints: map[string]float64{"wr1": 30}},
	}}
	tracker := performance.NewTracker(fetcher, "league", func(id string) (models.Position, bool) {
		p, ok := repo.Player(id)
		return p.Position, ok
	})
	tracker.Load(1)

	source := adp.NewSourceFromTable(map[string]int{"player_one": 300})
	engine := NewEngine(repo, tracker, source)

	// A WR1 season against a 300 ADP expectation maxes the tracker's ±15
	// clamp; tier 3 re-clamps it to 10.
	b := engine.Breakdown("wr1")
	assert.Equal(t, "rank vs expectation", b.PerformanceReason)
	assert.Equal(t, 10.0, b.PerformanceModifier)
}

func TestDraftContext(t *testing.T) {
	engine, _ := newTestEngine(nil, map[string]models.DraftInfo{
		"1": {PickNo: 28, Round: 3},
	})

	assert.Equal(t, "R3.28", engine.DraftContext("1"))
	assert.Equal(t, "", engine.DraftContext("2"))
}
