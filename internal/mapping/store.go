// Package mapping resolves player identities between the Sleeper and ESPN
// naming domains. A hand-curated core file is authoritative and never
// written by this code; a cache file is rebuilt or merged on each refresh.
package mapping

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"sleeperscout/internal/models"
)

// Store reads and writes the two on-disk mapping files.
type Store struct {
	CoreFile  string
	CacheFile string
}

func NewStore(coreFile, cacheFile string) *Store {
	return &Store{CoreFile: coreFile, CacheFile: cacheFile}
}

// LoadCore returns the curated core mapping. A missing or unreadable file
// degrades to an empty mapping; identity resolution still runs, it just has
// no verified anchors.
func (s *Store) LoadCore() models.MappingFile {
	return loadMappingFile(s.CoreFile)
}

// LoadCache returns the machine-written cache mapping, or an empty mapping
// when none exists yet.
func (s *Store) LoadCache() models.MappingFile {
	return loadMappingFile(s.CacheFile)
}

func loadMappingFile(path string) models.MappingFile {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Could not read mapping file", "path", path, "error", err)
		}
		return models.EmptyMappingFile()
	}

	var file models.MappingFile
	if err := json.Unmarshal(data, &file); err != nil {
		slog.Warn("Could not parse mapping file", "path", path, "error", err)
		return models.EmptyMappingFile()
	}

	if file.Mappings == nil {
		file.Mappings = map[string]models.PlayerMapping{}
	}
	return file
}

// SaveCache writes the cache mapping atomically: the document goes to a
// temp file in the same directory, then renames over the target, so an
// interrupted write never leaves a truncated cache.
func (s *Store) SaveCache(file models.MappingFile) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding mapping cache: %w", err)
	}

	dir := filepath.Dir(s.CacheFile)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.CacheFile)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.CacheFile); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing cache file: %w", err)
	}
	return nil
}

// Diff compares a fresh match set against the previous cache contents.
// Entries new to the cache are added; entries whose ESPN ID changed are
// updated with both values; names that vanished from the match set are
// removed.
func Diff(previous, current map[string]models.PlayerMapping) models.DiffReport {
	report := models.DiffReport{
		Added:   map[string]models.PlayerMapping{},
		Updated: map[string]models.MappingChange{},
		Removed: map[string]models.PlayerMapping{},
	}

	for name, mapping := range current {
		old, existed := previous[name]
		if !existed {
			report.Added[name] = mapping
			continue
		}
		if mapping.ESPNID != old.ESPNID {
			report.Updated[name] = models.MappingChange{Old: old, New: mapping}
		}
	}

	for name, mapping := range previous {
		if _, stillThere := current[name]; !stillThere {
			report.Removed[name] = mapping
		}
	}

	return report
}
