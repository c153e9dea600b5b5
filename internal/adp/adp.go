// Package adp supplies a platform-independent average-draft-position signal
// keyed by normalized player name. It is a secondary prior next to the
// league's own draft; a missing entry means "no signal", never zero.
package adp

import "strings"

// Source is a static ADP reference table. Entries are keyed by the same
// normalization Lookup applies to display names.
type Source struct {
	table map[string]int
}

// NewSource returns a source seeded with the bundled consensus table.
func NewSource() *Source {
	return &Source{table: consensusADP}
}

// NewSourceFromTable is used by tests and by callers that load their own
// reference data.
func NewSourceFromTable(table map[string]int) *Source {
	return &Source{table: table}
}

// Lookup returns the ADP for a display name. ok is false when the player is
// not in the table; callers must treat that as signal absence.
func (s *Source) Lookup(name string) (int, bool) {
	adp, ok := s.table[Normalize(name)]
	return adp, ok
}

// Normalize lowercases a display name, replaces spaces with underscores,
// and strips the punctuation that differs between platforms.
func Normalize(name string) string {
	n := strings.ToLower(name)
	n = strings.ReplaceAll(n, " ", "_")
	n = strings.ReplaceAll(n, ".", "")
	n = strings.ReplaceAll(n, "'", "")
	n = strings.ReplaceAll(n, "-", "_")
	return n
}

// consensusADP mirrors typical 2024 consensus draft positions.
var consensusADP = map[string]int{
	// Top tier (picks 1-24)
	"christian_mccaffrey": 1,
	"jamarr_chase":        2,
	"saquon_barkley":      4,
	"ceedee_lamb":         6,
	"puka_nacua":          12,
	"travis_kelce":        18,
	"jonathan_taylor":     20,
	"josh_allen":          22,

	// Mid tier (picks 25-100)
	"tyreek_hill":        25,
	"lamar_jackson":      28,
	"breece_hall":        30,
	"amon_ra_st_brown":   32,
	"jalen_hurts":        34,
	"george_kittle":      35,
	"garrett_wilson":     38,
	"davante_adams":      42,
	"mark_andrews":       45,
	"derrick_henry":      48,
	"mike_evans":         55,
	"austin_ekeler":      65,
	"drake_london":       68,

	// Late round values
	"hunter_henry":     145,
	"detroit_lions":    165,
	"chase_mclaughlin": 180,
}
