package mapping

import (
	"fmt"
	"log/slog"
	"time"

	"sleeperscout/internal/models"
)

// PlayerLister is the slice of the gateway the refresher needs.
type PlayerLister interface {
	GetAllPlayers() (map[string]models.Player, error)
}

// Refresher rebuilds the cache mapping from the live player pool. Full
// refresh replaces the cache outright; incremental refresh merges new
// matches over the existing entries, preserving anything untouched.
type Refresher struct {
	store *Store
	api   PlayerLister
}

func NewRefresher(store *Store, api PlayerLister) *Refresher {
	return &Refresher{store: store, api: api}
}

// Refresh fetches players, resolves identities, diffs against the previous
// cache, and writes the new cache. The core file is never touched.
func (r *Refresher) Refresh(full bool) (models.DiffReport, error) {
	players, err := r.api.GetAllPlayers()
	if err != nil {
		return models.DiffReport{}, fmt.Errorf("fetching player pool: %w", err)
	}
	slog.Info("Fetched player pool", "players", len(players))

	core := r.store.LoadCore()
	cache := r.store.LoadCache()

	resolver := NewResolver(core)
	result := resolver.Resolve(players, Candidates(core, SeedCandidates))
	slog.Info("Resolved identities", "matched", len(result.Matches), "unmatched", len(result.Unmatched))

	report := Diff(cache.Mappings, result.Matches)
	report.Unmatched = result.Unmatched

	refreshType := "incremental"
	if full || len(cache.Mappings) == 0 {
		refreshType = "full"
		cache = models.EmptyMappingFile()
		cache.Mappings = result.Matches
	} else {
		for name, mapping := range result.Matches {
			cache.Mappings[name] = mapping
		}
	}

	cache.Version = "1.0"
	cache.LastRefreshed = time.Now().Format("2006-01-02")
	cache.Metadata = models.MappingMetadata{
		TotalMatched:   len(result.Matches),
		TotalUnmatched: len(result.Unmatched),
		RefreshType:    refreshType,
	}

	if err := r.store.SaveCache(cache); err != nil {
		return report, fmt.Errorf("saving mapping cache: %w", err)
	}

	return report, nil
}
