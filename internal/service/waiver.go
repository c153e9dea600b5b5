package service

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"sleeperscout/internal/models"
)

// Waiver category thresholds.
const (
	minValueThreshold = 25 // ignore players below this score entirely

	gemMinValue    = 40 // hidden gems: real value...
	gemMaxTrending = 50 // ...that the league hasn't noticed yet

	trendingMinAdds = 20

	upsideMaxAge    = 28
	upsideMaxExp    = 5
	breakoutAgeLow  = 22
	breakoutAgeHigh = 26
	rookieBonus     = 10
	breakoutBonus   = 15
	depthPromoBonus = 25
	maxPerCategory  = 10
)

// Handcuff bonuses by position of the covered asset.
var handcuffBonuses = map[models.Position]float64{
	models.PositionRB: 35,
	models.PositionWR: 25,
	models.PositionTE: 30,
}

const defaultHandcuffBonus = 15

var waiverFocusPositions = map[models.Position]bool{
	models.PositionQB: true,
	models.PositionRB: true,
	models.PositionWR: true,
	models.PositionTE: true,
}

// WaiverReport analyzes the unrostered player pool for the configured
// user: hidden gems, trending pickups, insurance handcuffs, and high-upside
// stashes. The target user must exist in the league; that failure is fatal.
func (s *AnalyzerService) WaiverReport() (string, error) {
	if s.league == nil {
		return "", fmt.Errorf("league data not loaded")
	}

	userRoster, err := s.findUserRoster()
	if err != nil {
		return "", err
	}

	available := s.availablePlayers()
	slog.Info("Filtered available players", "count", len(available))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔍 *Waiver Wire: %s*\n\n", s.league.Name))

	analysis := s.AnalyzeRoster(userRoster)
	sb.WriteString(fmt.Sprintf("📊 *%s's Roster*\n", analysis.TeamName))
	if len(analysis.Needs) > 0 {
		needs := make([]string, len(analysis.Needs))
		for i, n := range analysis.Needs {
			needs[i] = string(n)
		}
		sb.WriteString(fmt.Sprintf("🎯 Needs: %s\n", strings.Join(needs, ", ")))
	}
	if len(analysis.Strengths) > 0 {
		sb.WriteString(fmt.Sprintf("💪 Strengths: %s\n", strings.Join(analysis.Strengths, ", ")))
	}

	writeCategory(&sb, "💎 HIDDEN GEMS", s.hiddenGems(available), func(p models.WaiverPick) string {
		return fmt.Sprintf("trend %+d", p.TrendingScore)
	})
	writeCategory(&sb, "📈 TRENDING UP", s.trendingPickups(available), func(p models.WaiverPick) string {
		return fmt.Sprintf("trend %+d", p.TrendingScore)
	})
	writeCategory(&sb, "🛡 INSURANCE PICKS", s.insurancePicks(available, userRoster), func(p models.WaiverPick) string {
		return "covers " + p.HandcuffFor
	})
	writeCategory(&sb, "🚀 HIGH UPSIDE STASHES", s.highUpside(available), func(p models.WaiverPick) string {
		return fmt.Sprintf("age %d, %d yr", p.Age, p.YearsExp)
	})

	return sb.String(), nil
}

func writeCategory(sb *strings.Builder, title string, picks []models.WaiverPick, note func(models.WaiverPick) string) {
	if len(picks) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n%s (%d found)\n", title, len(picks)))
	for _, p := range picks {
		sb.WriteString(fmt.Sprintf("  %-3s %s (%s) — %.1f (%s)\n", p.Position, p.Name, p.Team, p.ValueScore, note(p)))
	}
}

// findUserRoster resolves the configured display name to a roster. Not
// finding the user is a configuration error, not a data gap.
func (s *AnalyzerService) findUserRoster() (models.Roster, error) {
	if s.cfg.DisplayName == "" {
		return models.Roster{}, fmt.Errorf("no target user configured: set DISPLAY_NAME")
	}

	var userID string
	for _, u := range s.users {
		if u.DisplayName == s.cfg.DisplayName {
			userID = u.UserID
			break
		}
	}
	if userID == "" {
		return models.Roster{}, fmt.Errorf("could not find user with display name %q", s.cfg.DisplayName)
	}

	for _, roster := range s.rosters {
		if roster.OwnerID == userID {
			return roster, nil
		}
	}
	return models.Roster{}, fmt.Errorf("could not find roster for user %q", s.cfg.DisplayName)
}

type availablePlayer struct {
	id    string
	info  models.Player
	value float64
}

// availablePlayers filters the database to unrostered focus-position
// players above the minimum value threshold.
func (s *AnalyzerService) availablePlayers() []availablePlayer {
	rostered := map[string]bool{}
	for _, roster := range s.rosters {
		for _, id := range roster.Players {
			rostered[id] = true
		}
	}

	var available []availablePlayer
	for id, info := range s.repo.Players() {
		if rostered[id] || !waiverFocusPositions[info.Position] {
			continue
		}

		value := s.engine.Score(id)
		if value < minValueThreshold {
			continue
		}
		available = append(available, availablePlayer{id: id, info: info, value: value})
	}
	return available
}

// hiddenGems are valuable players the waiver market hasn't chased yet:
// high score, low trending, top of their depth chart.
func (s *AnalyzerService) hiddenGems(available []availablePlayer) []models.WaiverPick {
	var gems []models.WaiverPick
	for _, p := range available {
		if p.value < gemMinValue {
			continue
		}
		trending := s.repo.TrendingScore(p.id)
		if trending > gemMaxTrending {
			continue
		}
		if p.info.DepthChartOrder != nil && *p.info.DepthChartOrder > 2 {
			continue
		}

		gems = append(gems, models.WaiverPick{
			PlayerID:      p.id,
			Name:          displayName(p.info, p.id),
			Position:      p.info.Position,
			Team:          p.info.Team,
			ValueScore:    p.value,
			TrendingScore: trending,
			DepthSlot:     depthSlot(p.info),
			Category:      "Hidden Gem",
		})
	}
	return topPicks(gems, byValue)
}

func (s *AnalyzerService) trendingPickups(available []availablePlayer) []models.WaiverPick {
	var picks []models.WaiverPick
	for _, p := range available {
		trending := s.repo.TrendingScore(p.id)
		if trending < trendingMinAdds {
			continue
		}
		picks = append(picks, models.WaiverPick{
			PlayerID:      p.id,
			Name:          displayName(p.info, p.id),
			Position:      p.info.Position,
			Team:          p.info.Team,
			ValueScore:    p.value,
			TrendingScore: trending,
			Category:      "Trending Up",
		})
	}
	return topPicks(picks, byTrending)
}

// insurancePicks finds unrostered players sharing a team and position with
// one of the user's assets. Losing an RB1 to injury hurts most, so RB
// handcuffs get the biggest boost.
func (s *AnalyzerService) insurancePicks(available []availablePlayer, userRoster models.Roster) []models.WaiverPick {
	type asset struct {
		name     string
		position models.Position
	}
	assetsByTeam := map[string][]asset{}
	for _, id := range userRoster.Players {
		info := s.playerInfo(id)
		if info.Team == "" || info.Position == "" {
			continue
		}
		assetsByTeam[info.Team] = append(assetsByTeam[info.Team], asset{
			name:     displayName(info, id),
			position: info.Position,
		})
	}

	var picks []models.WaiverPick
	for _, p := range available {
		for _, a := range assetsByTeam[p.info.Team] {
			if a.position != p.info.Position {
				continue
			}
			bonus, ok := handcuffBonuses[p.info.Position]
			if !ok {
				bonus = defaultHandcuffBonus
			}
			picks = append(picks, models.WaiverPick{
				PlayerID:    p.id,
				Name:        displayName(p.info, p.id),
				Position:    p.info.Position,
				Team:        p.info.Team,
				ValueScore:  p.value + bonus,
				HandcuffFor: a.name,
				Bonus:       bonus,
				Category:    "Insurance/Handcuff",
			})
		}
	}
	return topPicks(picks, byValue)
}

// highUpside finds young players with promotion potential: rookies, the
// breakout age window, and top-three depth slots all add to the score.
func (s *AnalyzerService) highUpside(available []availablePlayer) []models.WaiverPick {
	var picks []models.WaiverPick
	for _, p := range available {
		if p.info.Age == nil || p.info.YearsExp == nil {
			continue
		}
		age, exp := *p.info.Age, *p.info.YearsExp
		if age > upsideMaxAge || exp > upsideMaxExp {
			continue
		}

		var bonus float64
		if exp == 0 {
			bonus += rookieBonus
		}
		if age >= breakoutAgeLow && age <= breakoutAgeHigh {
			bonus += breakoutBonus
		}
		if p.info.DepthChartOrder != nil && *p.info.DepthChartOrder <= 3 {
			bonus += depthPromoBonus
		}

		picks = append(picks, models.WaiverPick{
			PlayerID:   p.id,
			Name:       displayName(p.info, p.id),
			Position:   p.info.Position,
			Team:       p.info.Team,
			ValueScore: p.value + bonus,
			Age:        age,
			YearsExp:   exp,
			DepthSlot:  depthSlot(p.info),
			Bonus:      bonus,
			Category:   "High Upside",
		})
	}
	return topPicks(picks, byValue)
}

// depthSlot flattens the optional depth-chart order for report fields; zero
// means unknown.
func depthSlot(p models.Player) int {
	if p.DepthChartOrder == nil {
		return 0
	}
	return *p.DepthChartOrder
}

func byValue(a, b models.WaiverPick) bool {
	if a.ValueScore != b.ValueScore {
		return a.ValueScore > b.ValueScore
	}
	return a.Name < b.Name
}

func byTrending(a, b models.WaiverPick) bool {
	if a.TrendingScore != b.TrendingScore {
		return a.TrendingScore > b.TrendingScore
	}
	return a.Name < b.Name
}

func topPicks(picks []models.WaiverPick, less func(a, b models.WaiverPick) bool) []models.WaiverPick {
	sort.Slice(picks, func(i, j int) bool { return less(picks[i], picks[j]) })
	if len(picks) > maxPerCategory {
		picks = picks[:maxPerCategory]
	}
	return picks
}
