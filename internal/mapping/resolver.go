package mapping

import (
	"math"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"sleeperscout/internal/models"
)

// Match acceptance thresholds. A candidate must clear acceptThreshold
// strictly; the confidence tiers grade how comfortably it cleared.
const (
	acceptThreshold = 0.6
	highThreshold   = 0.85
	mediumThreshold = 0.7

	// teamBonus is added when team abbreviations match exactly. Two players
	// with similar names on the same team are almost certainly the same
	// person.
	teamBonus = 0.3
)

// Result is the output of one resolution pass.
type Result struct {
	Matches   map[string]models.PlayerMapping
	Unmatched []models.UnmatchedPlayer
}

// Resolver matches live Sleeper players against ESPN-side candidates. Names
// in the core mapping are matched exactly and never demoted by the fuzzy
// pass.
type Resolver struct {
	core models.MappingFile
}

func NewResolver(core models.MappingFile) *Resolver {
	return &Resolver{core: core}
}

// Resolve runs the exact pass over the core mapping, then the fuzzy pass
// over everything left. Only skill positions (QB/RB/WR/TE) participate;
// records missing a name or team are skipped outright.
func (r *Resolver) Resolve(players map[string]models.Player, candidates []models.ExternalPlayer) Result {
	result := Result{Matches: map[string]models.PlayerMapping{}}

	skill := make(map[string]models.Player)
	for id, p := range players {
		if p.Position.IsSkill() {
			skill[id] = p
		}
	}

	// Exact pass: core names keep their curated ESPN ID with verified
	// confidence.
	for id, p := range skill {
		name := p.FullName()
		if name == "" || p.Team == "" {
			continue
		}
		core, ok := r.core.Mappings[name]
		if !ok {
			continue
		}
		result.Matches[name] = models.PlayerMapping{
			SleeperID:  id,
			ESPNID:     core.ESPNID,
			Position:   p.Position,
			Team:       p.Team,
			Confidence: models.ConfidenceVerified,
			MatchScore: 1.0,
		}
	}

	// Fuzzy pass over the remainder.
	for id, p := range skill {
		name := p.FullName()
		if name == "" || p.Team == "" {
			continue
		}
		if _, done := result.Matches[name]; done {
			continue
		}

		var best *models.ExternalPlayer
		bestScore := 0.0

		for i := range candidates {
			candidate := &candidates[i]
			if candidate.Position != p.Position {
				continue
			}

			score := Similarity(name, candidate.Name)
			if p.Team == candidate.Team {
				score += teamBonus
			}
			// Round before comparing so float noise cannot push an
			// exactly-threshold total over the line.
			score = math.Round(score*1000) / 1000

			if score > bestScore && score > acceptThreshold {
				bestScore = score
				best = candidate
			}
		}

		if best == nil {
			result.Unmatched = append(result.Unmatched, models.UnmatchedPlayer{
				SleeperID: id,
				Name:      name,
				Position:  p.Position,
				Team:      p.Team,
			})
			continue
		}

		result.Matches[name] = models.PlayerMapping{
			SleeperID:  id,
			ESPNID:     best.ESPNID,
			Position:   p.Position,
			Team:       p.Team,
			Confidence: confidenceFor(bestScore),
			MatchScore: bestScore,
		}
	}

	return result
}

func confidenceFor(score float64) models.Confidence {
	switch {
	case score > highThreshold:
		return models.ConfidenceHigh
	case score > mediumThreshold:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// Similarity is the name-similarity ratio: one minus the normalized
// Levenshtein distance over lowercased names.
func Similarity(a, b string) float64 {
	al := strings.ToLower(a)
	bl := strings.ToLower(b)

	// LevenshteinDistance counts runes, so the denominator must too.
	maxLen := len([]rune(al))
	if n := len([]rune(bl)); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 0
	}

	distance := fuzzy.LevenshteinDistance(al, bl)
	return 1 - float64(distance)/float64(maxLen)
}

// Candidates builds the ESPN-side candidate pool from the core mapping plus
// a seed set of players not yet curated.
func Candidates(core models.MappingFile, seeds []models.ExternalPlayer) []models.ExternalPlayer {
	candidates := make([]models.ExternalPlayer, 0, len(core.Mappings)+len(seeds))
	for name, m := range core.Mappings {
		candidates = append(candidates, models.ExternalPlayer{
			Name:     name,
			ESPNID:   m.ESPNID,
			Position: m.Position,
			Team:     m.Team,
		})
	}
	return append(candidates, seeds...)
}

// SeedCandidates supplements the candidate pool with recent skill players
// that tend to be missing from hand-curated files.
var SeedCandidates = []models.ExternalPlayer{
	{Name: "Amon-Ra St. Brown", ESPNID: "4361548", Position: models.PositionWR, Team: "DET"},
	{Name: "Bijan Robinson", ESPNID: "4431882", Position: models.PositionRB, Team: "ATL"},
	{Name: "Garrett Wilson", ESPNID: "4430520", Position: models.PositionWR, Team: "NYJ"},
	{Name: "Chris Olave", ESPNID: "4430521", Position: models.PositionWR, Team: "NO"},
	{Name: "T.J. Hockenson", ESPNID: "3918449", Position: models.PositionTE, Team: "MIN"},
}
