package models

// Confidence grades how an identity link between the Sleeper and ESPN
// naming domains was established.
type Confidence string

const (
	ConfidenceVerified Confidence = "verified" // from the hand-curated core file
	ConfidenceHigh     Confidence = "high"     // fuzzy score > 0.85
	ConfidenceMedium   Confidence = "medium"   // fuzzy score > 0.7
	ConfidenceLow      Confidence = "low"      // fuzzy score > 0.6
)

// PlayerMapping links one display name to an ESPN identity.
type PlayerMapping struct {
	SleeperID  string     `json:"sleeper_id,omitempty"`
	ESPNID     string     `json:"espn_id"`
	Position   Position   `json:"position"`
	Team       string     `json:"team"`
	Confidence Confidence `json:"confidence,omitempty"`
	MatchScore float64    `json:"match_score,omitempty"`
}

// MappingFile is the on-disk shape shared by the core mapping (hand-edited,
// read-mostly) and the cache mapping (machine-written).
type MappingFile struct {
	Version       string                   `json:"version"`
	LastRefreshed string                   `json:"last_refreshed,omitempty"`
	Mappings      map[string]PlayerMapping `json:"mappings"`
	Metadata      MappingMetadata          `json:"metadata"`
}

type MappingMetadata struct {
	TotalMatched   int    `json:"total_matched,omitempty"`
	TotalUnmatched int    `json:"total_unmatched,omitempty"`
	RefreshType    string `json:"refresh_type,omitempty"`
}

// EmptyMappingFile is the fallback when a mapping file is missing or
// unreadable.
func EmptyMappingFile() MappingFile {
	return MappingFile{Version: "1.0", Mappings: map[string]PlayerMapping{}}
}

// ExternalPlayer is a candidate identity on the ESPN side of the match.
type ExternalPlayer struct {
	Name     string   `json:"name"`
	ESPNID   string   `json:"espn_id"`
	Position Position `json:"position"`
	Team     string   `json:"team"`
}

// UnmatchedPlayer is a Sleeper player no candidate cleared the match
// threshold for.
type UnmatchedPlayer struct {
	SleeperID string   `json:"sleeper_id"`
	Name      string   `json:"name"`
	Position  Position `json:"position"`
	Team      string   `json:"team"`
}

// MappingChange carries the before/after of an updated identity link.
type MappingChange struct {
	Old PlayerMapping `json:"old"`
	New PlayerMapping `json:"new"`
}

// DiffReport compares a freshly resolved match set against the previous
// cache contents, keyed by display name.
type DiffReport struct {
	Added     map[string]PlayerMapping `json:"added"`
	Updated   map[string]MappingChange `json:"updated"`
	Removed   map[string]PlayerMapping `json:"removed"`
	Unmatched []UnmatchedPlayer        `json:"unmatched"`
}
