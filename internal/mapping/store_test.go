package mapping

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleeperscout/internal/models"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return NewStore(filepath.Join(dir, "core.json"), filepath.Join(dir, "cache.json"))
}

func TestLoadMissingFileDegradesToEmpty(t *testing.T) {
	store := tempStore(t)

	core := store.LoadCore()
	assert.Empty(t, core.Mappings)
	assert.NotNil(t, core.Mappings)
}

func TestLoadCorruptFileDegradesToEmpty(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, os.WriteFile(store.CacheFile, []byte("{not json"), 0o644))

	cache := store.LoadCache()
	assert.Empty(t, cache.Mappings)
	assert.NotNil(t, cache.Mappings)
}

func TestSaveCacheRoundTrip(t *testing.T) {
	store := tempStore(t)

	file := models.EmptyMappingFile()
	file.Version = "1.0"
	file.LastRefreshed = "2024-10-01"
	file.Mappings["Justin Jefferson"] = models.PlayerMapping{
		SleeperID:  "6786",
		ESPNID:     "4262921",
		Position:   models.PositionWR,
		Team:       "MIN",
		Confidence: models.ConfidenceVerified,
		MatchScore: 1.0,
	}
	file.Metadata = models.MappingMetadata{TotalMatched: 1, RefreshType: "full"}

	require.NoError(t, store.SaveCache(file))

	loaded := store.LoadCache()
	assert.Equal(t, "1.0", loaded.Version)
	assert.Equal(t, "2024-10-01", loaded.LastRefreshed)
	assert.Equal(t, file.Mappings["Justin Jefferson"], loaded.Mappings["Justin Jefferson"])
	assert.Equal(t, "full", loaded.Metadata.RefreshType)
}

func TestSaveCacheLeavesNoTempFiles(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.SaveCache(models.EmptyMappingFile()))

	entries, err := os.ReadDir(filepath.Dir(store.CacheFile))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(store.CacheFile), entries[0].Name())
}

func TestDiff(t *testing.T) {
	previous := map[string]models.PlayerMapping{
		"Stays":   {ESPNID: "1"},
		"Changes": {ESPNID: "2"},
		"Leaves":  {ESPNID: "3"},
	}
	current := map[string]models.PlayerMapping{
		"Stays":   {ESPNID: "1"},
		"Changes": {ESPNID: "22"},
		"Arrives": {ESPNID: "4"},
	}

	report := Diff(previous, current)

	require.Len(t, report.Added, 1)
	assert.Equal(t, "4", report.Added["Arrives"].ESPNID)

	require.Len(t, report.Updated, 1)
	assert.Equal(t, "2", report.Updated["Changes"].Old.ESPNID)
	assert.Equal(t, "22", report.Updated["Changes"].New.ESPNID)

	require.Len(t, report.Removed, 1)
	assert.Equal(t, "3", report.Removed["Leaves"].ESPNID)
}

func TestDiffRosterTurnover(t *testing.T) {
	// One player disappears from the pool, one appears: one add and one
	// removal, nothing updated.
	previous := map[string]models.PlayerMapping{"Old Guy": {ESPNID: "1"}}
	current := map[string]models.PlayerMapping{"New Guy": {ESPNID: "2"}}

	report := Diff(previous, current)
	assert.Len(t, report.Added, 1)
	assert.Len(t, report.Removed, 1)
	assert.Empty(t, report.Updated)
}

type fakeLister struct {
	players map[string]models.Player
	err     error
}

func (f *fakeLister) GetAllPlayers() (map[string]models.Player, error) {
	return f.players, f.err
}

func writeCore(t *testing.T, store *Store, file models.MappingFile) {
	t.Helper()
	data, err := json.Marshal(file)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.CoreFile, data, 0o644))
}

func TestRefreshFullReplacesCache(t *testing.T) {
	store := tempStore(t)

	stale := models.EmptyMappingFile()
	stale.Mappings["Gone Player"] = models.PlayerMapping{ESPNID: "old"}
	require.NoError(t, store.SaveCache(stale))

	core := models.EmptyMappingFile()
	core.Mappings["Justin Jefferson"] = models.PlayerMapping{
		ESPNID: "4262921", Position: models.PositionWR, Team: "MIN",
	}
	writeCore(t, store, core)

	lister := &fakeLister{players: map[string]models.Player{
		"6786": {ID: "6786", FirstName: "Justin", LastName: "Jefferson", Position: models.PositionWR, Team: "MIN"},
	}}

	report, err := NewRefresher(store, lister).Refresh(true)
	require.NoError(t, err)
	assert.Len(t, report.Added, 1)
	assert.Len(t, report.Removed, 1)

	cache := store.LoadCache()
	assert.NotContains(t, cache.Mappings, "Gone Player")
	assert.Contains(t, cache.Mappings, "Justin Jefferson")
	assert.Equal(t, "full", cache.Metadata.RefreshType)
	assert.NotEmpty(t, cache.LastRefreshed)
}

func TestRefreshIncrementalMerges(t *testing.T) {
	store := tempStore(t)

	existing := models.EmptyMappingFile()
	existing.Mappings["Kept Player"] = models.PlayerMapping{ESPNID: "kept"}
	require.NoError(t, store.SaveCache(existing))

	core := models.EmptyMappingFile()
	core.Mappings["Justin Jefferson"] = models.PlayerMapping{
		ESPNID: "4262921", Position: models.PositionWR, Team: "MIN",
	}
	writeCore(t, store, core)

	lister := &fakeLister{players: map[string]models.Player{
		"6786": {ID: "6786", FirstName: "Justin", LastName: "Jefferson", Position: models.PositionWR, Team: "MIN"},
	}}

	_, err := NewRefresher(store, lister).Refresh(false)
	require.NoError(t, err)

	cache := store.LoadCache()
	assert.Contains(t, cache.Mappings, "Kept Player")
	assert.Contains(t, cache.Mappings, "Justin Jefferson")
	assert.Equal(t, "incremental", cache.Metadata.RefreshType)
}

func TestRefreshFetchErrorPropagates(t *testing.T) {
	store := tempStore(t)
	lister := &fakeLister{err: errors.New("sleeper down")}

	_, err := NewRefresher(store, lister).Refresh(false)
	assert.Error(t, err)
}
