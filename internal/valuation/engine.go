// Package valuation computes the tiered composite value score that every
// report queries. The score combines popularity rank, depth-chart slot,
// trending momentum, injury state, draft capital, and performance versus
// draft-day expectation; tier floors and caps keep late-round players from
// outranking proven starters on short-term noise alone.
package valuation

import (
	"fmt"
	"strings"

	"sleeperscout/internal/adp"
	"sleeperscout/internal/models"
	"sleeperscout/internal/performance"
	"sleeperscout/internal/repository/memory"
)

// Draft tiers. Tier 1 is rounds 1-3, tier 2 rounds 4-6, tier 3 everything
// later plus undrafted players.
const (
	TierElite = 1
	TierSolid = 2
	TierDepth = 3
)

var (
	tierBaseMultipliers  = map[int]float64{TierElite: 1.3, TierSolid: 1.0, TierDepth: 0.7}
	tierDepthMultipliers = map[int]float64{TierElite: 1.5, TierSolid: 1.2, TierDepth: 1.0}
	tierTrendMultipliers = map[int]float64{TierElite: 1.3, TierSolid: 1.1, TierDepth: 0.9}

	// Scarcity premium, elite tier only.
	scarcityBonuses = map[models.Position]float64{
		models.PositionRB:  4,
		models.PositionTE:  3,
		models.PositionQB:  2,
		models.PositionWR:  0,
		models.PositionK:   -2,
		models.PositionDEF: -2,
	}
)

// leagueADPSentinel marks draft picks recorded without a real pick number.
const leagueADPSentinel = 999

// Breakdown itemizes every contribution to a player's score. Total is the
// value after tier floors and caps.
type Breakdown struct {
	PlayerID            string
	Tier                int
	BaseScore           float64
	DepthBonus          float64
	TrendingBonus       float64
	InjuryPenalty       float64
	DraftBonus          float64
	PerformanceModifier float64
	PerformanceReason   string
	ScarcityBonus       float64
	Total               float64
}

// Engine scores players from the run's in-memory caches. The tracker and
// ADP source are optional; without them the performance modifier is simply
// absent, matching the graceful-degradation contract of every other signal.
type Engine struct {
	repo    *memory.Repository
	tracker *performance.Tracker
	adp     *adp.Source
}

func NewEngine(repo *memory.Repository, tracker *performance.Tracker, adpSource *adp.Source) *Engine {
	return &Engine{repo: repo, tracker: tracker, adp: adpSource}
}

// Score returns the composite value score for a player. Missing signals
// contribute neutrally; the call never fails.
func (e *Engine) Score(playerID string) float64 {
	return e.Breakdown(playerID).Total
}

// Tier returns the draft tier for a player.
func (e *Engine) Tier(playerID string) int {
	info, ok := e.repo.DraftInfo(playerID)
	if !ok {
		return TierDepth
	}
	return tierForRound(info.Round)
}

func tierForRound(round int) int {
	switch {
	case round <= 3:
		return TierElite
	case round <= 6:
		return TierSolid
	default:
		return TierDepth
	}
}

// Breakdown runs the full scoring pipeline and returns every component.
func (e *Engine) Breakdown(playerID string) Breakdown {
	player, _ := e.repo.Player(playerID)
	draftInfo, drafted := e.repo.DraftInfo(playerID)

	tier := TierDepth
	if drafted {
		tier = tierForRound(draftInfo.Round)
	}

	b := Breakdown{PlayerID: playerID, Tier: tier}

	// Base score from search rank, scaled 0-80 and then by tier.
	if player.Ranked() {
		base := float64(1000-*player.SearchRank) / 12.5
		if base < 0 {
			base = 0
		}
		b.BaseScore = base * tierBaseMultipliers[tier]
	}

	// Depth-chart bonus, top three slots only.
	if player.DepthChartOrder != nil {
		multiplier := tierDepthMultipliers[tier]
		switch slot := *player.DepthChartOrder; {
		case slot == 1:
			b.DepthBonus = 20 * multiplier
		case slot == 2:
			b.DepthBonus = 10 * multiplier
		case slot <= 3 && slot > 0:
			b.DepthBonus = 5 * multiplier
		}
	}

	// Trending momentum, clamped before tier scaling.
	trending := float64(e.repo.TrendingScore(playerID)) / 5
	if trending > 20 {
		trending = 20
	}
	if trending < -20 {
		trending = -20
	}
	b.TrendingBonus = trending * tierTrendMultipliers[tier]

	b.InjuryPenalty = injuryPenalty(player.InjuryStatus)

	if drafted {
		b.DraftBonus = draftBonus(tier, b.BaseScore)
	}

	if e.tracker != nil && e.adp != nil {
		b.PerformanceModifier, b.PerformanceReason = e.performanceModifier(playerID, player, draftInfo, drafted, tier)
	}

	if tier == TierElite {
		b.ScarcityBonus = scarcityBonuses[player.Position]
	}

	total := b.BaseScore + b.DepthBonus + b.TrendingBonus + b.InjuryPenalty +
		b.DraftBonus + b.PerformanceModifier + b.ScarcityBonus

	b.Total = applyTierBounds(tier, total)
	return b
}

// injuryPenalty maps the free-text injury status to a flat penalty. The
// substring checks run in severity order; first match wins.
func injuryPenalty(status string) float64 {
	if status == "" {
		return 0
	}
	lower := strings.ToLower(status)
	switch {
	case strings.Contains(lower, "out") || strings.Contains(lower, "ir"):
		return -30
	case strings.Contains(lower, "doubtful"):
		return -15
	case strings.Contains(lower, "questionable"):
		return -5
	}
	return 0
}

// draftBonus is a step function over the tier-scaled base score. Drafted
// players who live up to their capital get a nudge; busts get a small
// penalty.
func draftBonus(tier int, baseScore float64) float64 {
	switch tier {
	case TierElite:
		switch {
		case baseScore >= 60:
			return 12
		case baseScore >= 45:
			return 6
		case baseScore < 30:
			return -5
		}
	case TierSolid:
		switch {
		case baseScore >= 50:
			return 8
		case baseScore < 25:
			return -5
		}
	default:
		switch {
		case baseScore >= 40:
			return 8
		case baseScore < 20:
			return -3
		}
	}
	return 0
}

// performanceModifier pulls the tracker's ADP-vs-reality modifier and
// re-clamps it per tier.
func (e *Engine) performanceModifier(playerID string, player models.Player, draftInfo models.DraftInfo, drafted bool, tier int) (float64, string) {
	var leagueADP *int
	if drafted && draftInfo.PickNo > 0 && draftInfo.PickNo < leagueADPSentinel {
		pick := draftInfo.PickNo
		leagueADP = &pick
	}

	var externalADP *int
	if name := player.FullName(); name != "" {
		if value, ok := e.adp.Lookup(name); ok {
			externalADP = &value
		}
	}

	mod := e.tracker.PerformanceModifier(playerID, player.Position, leagueADP, externalADP)

	var low, high float64
	switch tier {
	case TierElite:
		low, high = -12, 18
	case TierSolid:
		low, high = -10, 12
	default:
		low, high = -8, 10
	}

	value := mod.Value
	if value > high {
		value = high
	}
	if value < low {
		value = low
	}
	return value, mod.Reason
}

// applyTierBounds enforces the tier floors and caps, then floors the result
// at zero. Tier 2 compresses anything above 95 rather than cutting it off.
func applyTierBounds(tier int, total float64) float64 {
	switch tier {
	case TierElite:
		if total < 85 {
			total = 85
		}
	case TierSolid:
		if total < 65 {
			total = 65
		}
		if total > 95 {
			total = 95 + (total-95)*0.3
		}
	default:
		if total > 85 {
			total = 85
		}
	}

	if total < 0 {
		return 0
	}
	return total
}

// DraftContext renders the "R3.28" style draft label used in reports.
func (e *Engine) DraftContext(playerID string) string {
	info, ok := e.repo.DraftInfo(playerID)
	if !ok {
		return ""
	}
	return fmt.Sprintf("R%d.%d", info.Round, info.PickNo)
}

// ADPContext falls back to the external ADP table when the league draft has
// no record, marking the estimate with an asterisk.
func (e *Engine) ADPContext(playerID, name string) string {
	if ctx := e.DraftContext(playerID); ctx != "" {
		return ctx
	}
	if e.adp != nil {
		if value, ok := e.adp.Lookup(name); ok {
			round := ((value - 1) / 12) + 1
			pick := ((value - 1) % 12) + 1
			return fmt.Sprintf("R%d.%02d*", round, pick)
		}
	}
	return "Undrafted*"
}
