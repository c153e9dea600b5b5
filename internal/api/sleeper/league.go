package sleeper

import (
	"fmt"
	"strconv"

	"sleeperscout/internal/models"
)

// API exposes the typed Sleeper endpoints the analyzers consume. Every call
// is synchronous and may fail transiently; callers decide whether a failure
// is fatal (league info) or degradable (one week's matchups).
type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) GetLeague(leagueID string) (*models.League, error) {
	var league models.League
	endpoint := fmt.Sprintf("/league/%s", leagueID)

	if err := a.client.Get(endpoint, nil, &league); err != nil {
		return nil, fmt.Errorf("fetching league info: %w", err)
	}

	return &league, nil
}

func (a *API) GetRosters(leagueID string) ([]models.Roster, error) {
	var rosters []models.Roster
	endpoint := fmt.Sprintf("/league/%s/rosters", leagueID)

	if err := a.client.Get(endpoint, nil, &rosters); err != nil {
		return nil, fmt.Errorf("fetching rosters: %w", err)
	}

	return rosters, nil
}

func (a *API) GetUsers(leagueID string) ([]models.User, error) {
	var users []models.User
	endpoint := fmt.Sprintf("/league/%s/users", leagueID)

	if err := a.client.Get(endpoint, nil, &users); err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}

	return users, nil
}

// GetAllPlayers pulls the full NFL player database. The response is large
// (~5MB); callers cache it in the repository for the run.
func (a *API) GetAllPlayers() (map[string]models.Player, error) {
	var players map[string]models.Player

	if err := a.client.Get("/players/nfl", nil, &players); err != nil {
		return nil, fmt.Errorf("fetching players: %w", err)
	}

	// The map key is the player ID; the record itself omits it.
	for id, p := range players {
		p.ID = id
		players[id] = p
	}

	return players, nil
}

// GetTrending fetches the add or drop feed. Direction is "add" or "drop".
func (a *API) GetTrending(direction string, lookbackHours, limit int) ([]models.TrendingPlayer, error) {
	var trending []models.TrendingPlayer
	endpoint := fmt.Sprintf("/players/nfl/trending/%s", direction)
	params := map[string]string{
		"lookback_hours": strconv.Itoa(lookbackHours),
		"limit":          strconv.Itoa(limit),
	}

	if err := a.client.Get(endpoint, params, &trending); err != nil {
		return nil, fmt.Errorf("fetching trending %s: %w", direction, err)
	}

	return trending, nil
}

func (a *API) GetMatchups(leagueID string, week int) ([]models.Matchup, error) {
	var matchups []models.Matchup
	endpoint := fmt.Sprintf("/league/%s/matchups/%d", leagueID, week)

	if err := a.client.Get(endpoint, nil, &matchups); err != nil {
		return nil, fmt.Errorf("fetching week %d matchups: %w", week, err)
	}

	return matchups, nil
}

func (a *API) GetDraftPicks(draftID string) ([]models.DraftPick, error) {
	var picks []models.DraftPick
	endpoint := fmt.Sprintf("/draft/%s/picks", draftID)

	if err := a.client.Get(endpoint, nil, &picks); err != nil {
		return nil, fmt.Errorf("fetching draft picks: %w", err)
	}

	return picks, nil
}
