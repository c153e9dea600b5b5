package service

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"sleeperscout/internal/api/sleeper"
	"sleeperscout/internal/config"
	"sleeperscout/internal/mapping"
	"sleeperscout/internal/models"
	"sleeperscout/internal/repository/memory"
	"sleeperscout/internal/valuation"
)

// Trending feed parameters: one week of add/drop activity, top 100 each.
const (
	trendingLookbackHours = 168
	trendingLimit         = 100
)

// expectedCounts is a standard redraft roster shape. Surplus beyond
// expected+1 reads as tradeable depth; a shortfall reads as a need.
var expectedCounts = map[models.Position]int{
	models.PositionQB:  2,
	models.PositionRB:  4,
	models.PositionWR:  5,
	models.PositionTE:  2,
	models.PositionK:   1,
	models.PositionDEF: 1,
}

var positionOrder = []models.Position{
	models.PositionQB,
	models.PositionRB,
	models.PositionWR,
	models.PositionTE,
	models.PositionK,
	models.PositionDEF,
}

// AnalyzerService produces the roster, waiver, and player-value reports.
// It owns the fetched league state for the run; the valuation engine and
// gateway are constructed by the caller and passed in.
type AnalyzerService struct {
	api    *sleeper.API
	repo   *memory.Repository
	engine *valuation.Engine
	cfg    config.Sleeper

	loadPerformance func(currentWeek int)

	league  *models.League
	rosters []models.Roster
	users   map[string]models.User
}

func NewAnalyzerService(api *sleeper.API, repo *memory.Repository, engine *valuation.Engine, cfg config.Sleeper, loadPerformance func(currentWeek int)) *AnalyzerService {
	return &AnalyzerService{
		api:             api,
		repo:            repo,
		engine:          engine,
		cfg:             cfg,
		loadPerformance: loadPerformance,
		users:           map[string]models.User{},
	}
}

// Load fetches everything the reports need. League structure failures are
// fatal; trending, draft, and performance data degrade to absent signals.
func (s *AnalyzerService) Load() error {
	league, err := s.api.GetLeague(s.cfg.LeagueID)
	if err != nil {
		return fmt.Errorf("loading league: %w", err)
	}
	s.league = league
	slog.Info("Loaded league", "name", league.Name, "week", league.CurrentWeek())

	rosters, err := s.api.GetRosters(s.cfg.LeagueID)
	if err != nil {
		return fmt.Errorf("loading rosters: %w", err)
	}
	s.rosters = rosters

	users, err := s.api.GetUsers(s.cfg.LeagueID)
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}
	for _, u := range users {
		s.users[u.UserID] = u
	}

	players, err := s.api.GetAllPlayers()
	if err != nil {
		return fmt.Errorf("loading player database: %w", err)
	}
	s.repo.SavePlayers(players)
	slog.Info("Loaded player database", "players", len(players))

	if err := s.ReloadTrending(); err != nil {
		slog.Warn("Could not load trending data", "error", err)
	}

	if league.DraftID != "" {
		if err := s.loadDraftData(league.DraftID); err != nil {
			slog.Warn("Could not load draft data", "error", err)
		}
	}

	if s.loadPerformance != nil {
		s.loadPerformance(league.CurrentWeek())
	}

	return nil
}

// ReloadTrending rebuilds the momentum cache from the add and drop feeds.
// Adds count positive, drops negative.
func (s *AnalyzerService) ReloadTrending() error {
	adds, err := s.api.GetTrending("add", trendingLookbackHours, trendingLimit)
	if err != nil {
		return fmt.Errorf("loading trending adds: %w", err)
	}
	drops, err := s.api.GetTrending("drop", trendingLookbackHours, trendingLimit)
	if err != nil {
		return fmt.Errorf("loading trending drops: %w", err)
	}

	s.repo.ResetTrending()
	for _, p := range adds {
		s.repo.AddTrending(p.PlayerID, p.Count)
	}
	for _, p := range drops {
		s.repo.AddTrending(p.PlayerID, -p.Count)
	}

	slog.Info("Loaded trending data", "players", s.repo.TrendingCount())
	return nil
}

func (s *AnalyzerService) loadDraftData(draftID string) error {
	picks, err := s.api.GetDraftPicks(draftID)
	if err != nil {
		return err
	}
	for _, pick := range picks {
		if pick.PlayerID == "" {
			continue
		}
		s.repo.SaveDraftInfo(pick.PlayerID, models.DraftInfo{
			PickNo: pick.PickNo,
			Round:  pick.Round,
			Slot:   pick.DraftSlot,
		})
	}
	slog.Info("Loaded draft data", "picks", s.repo.DraftCount())
	return nil
}

// playerInfo resolves a roster entry to a player record. IDs that are team
// abbreviations are defenses.
func (s *AnalyzerService) playerInfo(id string) models.Player {
	if p, ok := s.repo.Player(id); ok {
		return p
	}
	return models.DefensePlayer(id)
}

func (s *AnalyzerService) teamName(roster models.Roster) string {
	if roster.Metadata.TeamName != "" {
		return roster.Metadata.TeamName
	}
	if user, ok := s.users[roster.OwnerID]; ok && user.DisplayName != "" {
		return user.DisplayName
	}
	return fmt.Sprintf("Team %d", roster.RosterID)
}

// AnalyzeRoster summarizes one roster's positional makeup.
func (s *AnalyzerService) AnalyzeRoster(roster models.Roster) models.RosterAnalysis {
	analysis := models.RosterAnalysis{
		TeamName:       s.teamName(roster),
		RosterID:       roster.RosterID,
		TotalPlayers:   len(roster.Players),
		PositionCounts: map[models.Position]int{},
	}

	for _, id := range roster.Players {
		analysis.PositionCounts[s.playerInfo(id).Position]++
	}

	for _, pos := range positionOrder {
		expected := expectedCounts[pos]
		actual := analysis.PositionCounts[pos]
		if actual > expected+1 {
			analysis.Strengths = append(analysis.Strengths, fmt.Sprintf("%s depth (%d players)", pos, actual))
		} else if actual < expected {
			analysis.Weaknesses = append(analysis.Weaknesses, fmt.Sprintf("%s shortage (%d/%d)", pos, actual, expected))
			analysis.Needs = append(analysis.Needs, pos)
		}
	}

	return analysis
}

// LeagueReport renders the full league analysis: every active roster with
// valued players, then trade opportunities pairing needs with depth.
func (s *AnalyzerService) LeagueReport() (string, error) {
	if s.league == nil {
		return "", fmt.Errorf("league data not loaded")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *League Analysis: %s*\n\n", s.league.Name))

	var analyses []models.RosterAnalysis
	seen := map[int]bool{}

	for _, roster := range s.rosters {
		if seen[roster.RosterID] || roster.OwnerID == "" {
			continue
		}
		seen[roster.RosterID] = true

		analysis := s.AnalyzeRoster(roster)
		analyses = append(analyses, analysis)
		s.writeTeamSection(&sb, roster, analysis)
	}

	sort.Slice(analyses, func(i, j int) bool { return analyses[i].RosterID < analyses[j].RosterID })
	s.writeTradeOpportunities(&sb, analyses)

	return sb.String(), nil
}

type valuedPlayer struct {
	id        string
	name      string
	position  models.Position
	value     float64
	adp       string
	isStarter bool
}

func (s *AnalyzerService) writeTeamSection(sb *strings.Builder, roster models.Roster, analysis models.RosterAnalysis) {
	sb.WriteString(fmt.Sprintf("*%s* (Roster #%d)\n", analysis.TeamName, analysis.RosterID))

	starterSet := map[string]bool{}
	for _, id := range roster.Starters {
		starterSet[id] = true
	}

	players := make([]valuedPlayer, 0, len(roster.Players))
	for _, id := range roster.Players {
		info := s.playerInfo(id)
		name := info.FullName()
		if name == "" {
			name = id
		}
		players = append(players, valuedPlayer{
			id:        id,
			name:      name,
			position:  info.Position,
			value:     s.engine.Score(id),
			adp:       s.engine.ADPContext(id, name),
			isStarter: starterSet[id],
		})
	}

	sort.Slice(players, func(i, j int) bool { return players[i].value > players[j].value })

	sb.WriteString("\n🏈 Starting Lineup:\n")
	for _, p := range players {
		if p.isStarter {
			sb.WriteString(fmt.Sprintf("  %-3s %s — %.1f (%s)\n", p.position, p.name, p.value, p.adp))
		}
	}
	sb.WriteString("\n📋 Bench:\n")
	for _, p := range players {
		if !p.isStarter {
			sb.WriteString(fmt.Sprintf("  %-3s %s — %.1f (%s)\n", p.position, p.name, p.value, p.adp))
		}
	}

	if len(analysis.Strengths) > 0 {
		sb.WriteString(fmt.Sprintf("\n💪 Strengths: %s\n", strings.Join(analysis.Strengths, ", ")))
	}
	if len(analysis.Weaknesses) > 0 {
		sb.WriteString(fmt.Sprintf("⚠️ Weaknesses: %s\n", strings.Join(analysis.Weaknesses, ", ")))
	}
	sb.WriteString("\n")
}

func (s *AnalyzerService) writeTradeOpportunities(sb *strings.Builder, analyses []models.RosterAnalysis) {
	sb.WriteString("🔄 *Trade Opportunities*\n")

	var opportunities []models.TradeOpportunity
	for _, pos := range []models.Position{models.PositionQB, models.PositionRB, models.PositionWR, models.PositionTE} {
		var needing, deep []string
		for _, a := range analyses {
			for _, need := range a.Needs {
				if need == pos {
					needing = append(needing, a.TeamName)
				}
			}
			for _, strength := range a.Strengths {
				if strings.HasPrefix(strength, string(pos)+" ") {
					deep = append(deep, a.TeamName)
				}
			}
		}
		for _, needyTeam := range needing {
			for _, deepTeam := range deep {
				if needyTeam != deepTeam {
					opportunities = append(opportunities, models.TradeOpportunity{
						Position:      pos,
						TeamNeeding:   needyTeam,
						TeamWithDepth: deepTeam,
					})
				}
			}
		}
	}

	if len(opportunities) == 0 {
		sb.WriteString("No obvious trade opportunities found based on positional needs.\n")
		return
	}
	for _, opp := range opportunities {
		sb.WriteString(fmt.Sprintf("• %s needs %s ← → %s has %s depth\n",
			opp.TeamNeeding, opp.Position, opp.TeamWithDepth, opp.Position))
	}
}

// PlayerValueReport fuzzy-finds a player by name and renders the score
// breakdown.
func (s *AnalyzerService) PlayerValueReport(name string) (string, error) {
	id, player, found := s.findPlayer(name)
	if !found {
		return fmt.Sprintf("🔍 No player found matching '%s'.", name), nil
	}

	b := s.engine.Breakdown(id)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* (%s - %s)\n", player.FullName(), player.Position, player.Team))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")
	sb.WriteString(fmt.Sprintf("Tier %d · %s\n\n", b.Tier, s.engine.ADPContext(id, player.FullName())))
	sb.WriteString(fmt.Sprintf("Base: %.1f\n", b.BaseScore))
	sb.WriteString(fmt.Sprintf("Depth chart: %+.1f\n", b.DepthBonus))
	sb.WriteString(fmt.Sprintf("Trending: %+.1f\n", b.TrendingBonus))
	sb.WriteString(fmt.Sprintf("Injury: %+.1f\n", b.InjuryPenalty))
	sb.WriteString(fmt.Sprintf("Draft: %+.1f\n", b.DraftBonus))
	sb.WriteString(fmt.Sprintf("Performance: %+.1f (%s)\n", b.PerformanceModifier, b.PerformanceReason))
	sb.WriteString(fmt.Sprintf("Scarcity: %+.1f\n", b.ScarcityBonus))
	sb.WriteString(fmt.Sprintf("\n*Value: %.1f*", b.Total))

	return sb.String(), nil
}

// findPlayer scans the player database for the best fuzzy name match above
// a 0.7 similarity threshold.
func (s *AnalyzerService) findPlayer(name string) (string, models.Player, bool) {
	const threshold = 0.7

	var bestID string
	var bestPlayer models.Player
	bestScore := 0.0

	for id, p := range s.repo.Players() {
		full := p.FullName()
		if full == "" {
			continue
		}
		score := mapping.Similarity(name, full)
		if score > threshold && score > bestScore {
			bestScore = score
			bestID = id
			bestPlayer = p
		}
	}

	return bestID, bestPlayer, bestID != ""
}

// WhoHasReport reports which roster owns a player, or that the player is a
// free agent.
func (s *AnalyzerService) WhoHasReport(name string) (string, error) {
	id, player, found := s.findPlayer(name)
	if !found {
		return fmt.Sprintf("🔍 No player found matching '%s'.", name), nil
	}

	full := player.FullName()
	for _, roster := range s.rosters {
		for _, rosterID := range roster.Players {
			if rosterID != id {
				continue
			}
			slot := "bench"
			for _, starter := range roster.Starters {
				if starter == id {
					slot = "starting lineup"
					break
				}
			}
			return fmt.Sprintf("*%s* (%s - %s) is on *%s* (%s).",
				full, player.Position, player.Team, s.teamName(roster), slot), nil
		}
	}

	return fmt.Sprintf("*%s* (%s - %s) is a free agent.", full, player.Position, player.Team), nil
}

// TrendingReport lists the strongest add and drop momentum.
func (s *AnalyzerService) TrendingReport() (string, error) {
	trending := s.repo.Trending()
	if len(trending) == 0 {
		return "No trending data loaded.", nil
	}

	type entry struct {
		id    string
		score int
	}
	entries := make([]entry, 0, len(trending))
	for id, score := range trending {
		entries = append(entries, entry{id, score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].id < entries[j].id
	})

	var sb strings.Builder
	sb.WriteString("📈 *Trending Adds*\n")
	for i, e := range entries {
		if i >= 10 || e.score <= 0 {
			break
		}
		info := s.playerInfo(e.id)
		sb.WriteString(fmt.Sprintf("  %s (%s) +%d\n", displayName(info, e.id), info.Position, e.score))
	}

	sb.WriteString("\n📉 *Trending Drops*\n")
	count := 0
	for i := len(entries) - 1; i >= 0 && count < 5; i-- {
		e := entries[i]
		if e.score >= 0 {
			break
		}
		info := s.playerInfo(e.id)
		sb.WriteString(fmt.Sprintf("  %s (%s) %d\n", displayName(info, e.id), info.Position, e.score))
		count++
	}

	return sb.String(), nil
}

func displayName(p models.Player, fallback string) string {
	if name := p.FullName(); name != "" {
		return name
	}
	return fallback
}
