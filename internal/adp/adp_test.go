package adp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Christian McCaffrey": "christian_mccaffrey",
		"Ja'Marr Chase":       "jamarr_chase",
		"Amon-Ra St. Brown":   "amon_ra_st_brown",
		"T.J. Hockenson":      "tj_hockenson",
		"CeeDee Lamb":         "ceedee_lamb",
	}

	for in, want := range cases {
		assert.Equal(t, want, Normalize(in))
	}
}

func TestLookup(t *testing.T) {
	source := NewSourceFromTable(map[string]int{
		"saquon_barkley": 4,
	})

	adp, ok := source.Lookup("Saquon Barkley")
	assert.True(t, ok)
	assert.Equal(t, 4, adp)

	_, ok = source.Lookup("Practice Squad Guy")
	assert.False(t, ok)
}

func TestBundledTableResolvesThroughNormalize(t *testing.T) {
	source := NewSource()

	adp, ok := source.Lookup("Amon-Ra St. Brown")
	assert.True(t, ok)
	assert.Equal(t, 32, adp)
}
