package memory

import (
	"sync"

	"sleeperscout/internal/models"
)

// Repository holds the per-run caches: the player database, trending
// momentum scores, and draft positions. Everything is fetched once per run
// and read many times by the valuation engine and the analyzers.
type Repository struct {
	players  map[string]models.Player
	trending map[string]int
	draft    map[string]models.DraftInfo
	mu       sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{
		players:  make(map[string]models.Player),
		trending: make(map[string]int),
		draft:    make(map[string]models.DraftInfo),
	}
}

func (r *Repository) SavePlayers(players map[string]models.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = players
}

func (r *Repository) Player(id string) (models.Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	return p, ok
}

func (r *Repository) Players() map[string]models.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.players
}

func (r *Repository) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// AddTrending accumulates a signed momentum delta for a player. Adds feed
// positive deltas, drops negative ones.
func (r *Repository) AddTrending(id string, delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trending[id] += delta
}

func (r *Repository) ResetTrending() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trending = make(map[string]int)
}

func (r *Repository) TrendingScore(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.trending[id]
}

// Trending returns a copy of the accumulated momentum scores.
func (r *Repository) Trending() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]int, len(r.trending))
	for id, score := range r.trending {
		out[id] = score
	}
	return out
}

func (r *Repository) TrendingCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trending)
}

func (r *Repository) SaveDraftInfo(id string, info models.DraftInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.draft[id] = info
}

func (r *Repository) DraftInfo(id string) (models.DraftInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.draft[id]
	return info, ok
}

func (r *Repository) DraftCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.draft)
}
