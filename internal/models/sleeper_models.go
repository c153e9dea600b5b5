package models

import "strings"

// Position is a fantasy roster position as reported by Sleeper.
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDEF Position = "DEF"
)

// SkillPositions are the positions the identity resolver cares about.
var SkillPositions = map[Position]bool{
	PositionQB: true,
	PositionRB: true,
	PositionWR: true,
	PositionTE: true,
}

// IsSkill reports whether the position is QB/RB/WR/TE.
func (p Position) IsSkill() bool {
	return SkillPositions[p]
}

// Player is an immutable snapshot of one entry in the Sleeper player
// database. Optional numeric fields come back as null for inactive or
// obscure players, so they are pointers; nil means the signal is absent.
type Player struct {
	ID              string   `json:"player_id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Position        Position `json:"position"`
	Team            string   `json:"team"`
	Age             *int     `json:"age"`
	YearsExp        *int     `json:"years_exp"`
	DepthChartOrder *int     `json:"depth_chart_order"`
	InjuryStatus    string   `json:"injury_status"`
	Status          string   `json:"status"`
	SearchRank      *int     `json:"search_rank"`
}

// searchRankSentinel is Sleeper's "unranked" marker.
const searchRankSentinel = 9999

// FullName returns the display name used for ADP lookups and identity
// matching.
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// Ranked reports whether the player carries a usable search rank.
func (p Player) Ranked() bool {
	return p.SearchRank != nil && *p.SearchRank != searchRankSentinel
}

// DefensePlayer builds a synthetic record for roster entries that are team
// abbreviations ("BAL", "KC", ...) rather than player IDs.
func DefensePlayer(id string) Player {
	return Player{
		ID:       id,
		LastName: id,
		Position: PositionDEF,
		Team:     id,
	}
}

// League is the Sleeper league document.
type League struct {
	ID              string             `json:"league_id"`
	Name            string             `json:"name"`
	Season          string             `json:"season"`
	DraftID         string             `json:"draft_id"`
	Settings        LeagueSettings     `json:"settings"`
	ScoringSettings map[string]float64 `json:"scoring_settings"`
}

type LeagueSettings struct {
	Leg int `json:"leg"` // current NFL week
}

// CurrentWeek returns the league's current week, never below 1.
func (l League) CurrentWeek() int {
	if l.Settings.Leg < 1 {
		return 1
	}
	return l.Settings.Leg
}

// Roster is one team's roster in a league.
type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	Players  []string       `json:"players"`
	Starters []string       `json:"starters"`
	Metadata RosterMetadata `json:"metadata"`
}

type RosterMetadata struct {
	TeamName string `json:"team_name"`
}

// User is a league member.
type User struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// TrendingPlayer is one entry from the trending add/drop feeds.
type TrendingPlayer struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

// Matchup is one roster's side of a weekly matchup, including the
// per-player scoring breakdown.
type Matchup struct {
	RosterID      int                `json:"roster_id"`
	MatchupID     int                `json:"matchup_id"`
	Points        float64            `json:"points"`
	PlayersPoints map[string]float64 `json:"players_points"`
}

// DraftPick is one selection in the league draft.
type DraftPick struct {
	PlayerID  string `json:"player_id"`
	PickNo    int    `json:"pick_no"`
	Round     int    `json:"round"`
	DraftSlot int    `json:"draft_slot"`
}

// DraftInfo is the cached per-player draft position. Absence from the
// draft cache means undrafted.
type DraftInfo struct {
	PickNo int
	Round  int
	Slot   int
}
