package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldbook/internal/catalog"
	"fieldbook/internal/types"
)

func testCatalog() []catalog.Species {
	allYear := map[string]bool{}
	for _, m := range catalog.MonthKeys {
		allYear[m] = true
	}
	return []catalog.Species{
		{ID: "snail-kite", CommonName: "Snail Kite", ScientificName: "Rostrhamus sociabilis", Family: "Accipitridae", Habitat: "Freshwater marsh", Months: allYear},
		{ID: "florida-scrub-jay", CommonName: "Florida Scrub-Jay", ScientificName: "Aphelocoma coerulescens", Family: "Corvidae", Habitat: "Oak scrub", Months: allYear},
		{ID: "swallow-tailed-kite", CommonName: "Swallow-tailed Kite", Family: "Accipitridae", Habitat: "Riverine forest", Months: map[string]bool{"Mar": true, "Apr": true, "May": true, "Jun": true, "Jul": true, "Aug": true}},
		{ID: "painted-bunting", CommonName: "Painted Bunting", Family: "Cardinalidae", Habitat: "Scrub edge"},
	}
}

func TestFilterIdentity(t *testing.T) {
	// No gates: the filter returns exactly the catalog in original order.
	species := testCatalog()
	got := Filter(species, nil, FilterParams{})
	require.Len(t, got, len(species))
	if diff := cmp.Diff(species, got); diff != "" {
		t.Errorf("identity filter changed the catalog (-want +got):\n%s", diff)
	}
}

func TestFilterQuery(t *testing.T) {
	species := testCatalog()

	tests := []struct {
		name    string
		params  FilterParams
		wantIDs []string
	}{
		{
			name:    "query matches common name case-insensitively",
			params:  FilterParams{Query: "kite"},
			wantIDs: []string{"snail-kite", "swallow-tailed-kite"},
		},
		{
			name:    "query matches scientific name",
			params:  FilterParams{Query: "aphelocoma"},
			wantIDs: []string{"florida-scrub-jay"},
		},
		{
			name:    "query matches family",
			params:  FilterParams{Query: "accipitridae"},
			wantIDs: []string{"snail-kite", "swallow-tailed-kite"},
		},
		{
			name:    "query matches habitat",
			params:  FilterParams{Query: "scrub"},
			wantIDs: []string{"florida-scrub-jay", "painted-bunting"},
		},
		{
			name:    "query is trimmed before matching",
			params:  FilterParams{Query: "  KITE  "},
			wantIDs: []string{"snail-kite", "swallow-tailed-kite"},
		},
		{
			name:    "no match yields empty view",
			params:  FilterParams{Query: "penguin"},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(species, nil, tt.params)
			var ids []string
			for _, sp := range got {
				ids = append(ids, sp.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilterMonthGate(t *testing.T) {
	species := testCatalog()

	// Swallow-tailed Kite declares Mar-Aug only; Painted Bunting has no
	// month map and is never excluded by month.
	got := Filter(species, nil, FilterParams{Month: "Jan"})
	ids := idsOf(got)
	assert.NotContains(t, ids, "swallow-tailed-kite")
	assert.Contains(t, ids, "painted-bunting")
	assert.Contains(t, ids, "snail-kite")

	got = Filter(species, nil, FilterParams{Month: "Apr"})
	assert.Contains(t, idsOf(got), "swallow-tailed-kite")
}

func TestFilterTargetOnly(t *testing.T) {
	species := testCatalog()
	annotations := map[string]types.Annotation{
		"snail-kite":      {SpeciesID: "snail-kite", Target: true},
		"painted-bunting": {SpeciesID: "painted-bunting", Seen: true},
	}

	got := Filter(species, annotations, FilterParams{TargetOnly: true})
	assert.Equal(t, []string{"snail-kite"}, idsOf(got))
}

func TestFilterMonthWithNoMatchesIsEmptyNotError(t *testing.T) {
	species := []catalog.Species{
		{ID: "a", CommonName: "A", Months: map[string]bool{"Jun": true}},
	}
	got := Filter(species, nil, FilterParams{Month: "Dec"})
	assert.Empty(t, got)
}

func TestComputeStats(t *testing.T) {
	species := testCatalog()
	annotations := map[string]types.Annotation{
		"snail-kite":          {SpeciesID: "snail-kite", Seen: true, Target: true},
		"florida-scrub-jay":   {SpeciesID: "florida-scrub-jay", Seen: true},
		"swallow-tailed-kite": {SpeciesID: "swallow-tailed-kite", Target: true},
	}

	s := ComputeStats(species, annotations)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Seen)
	assert.Equal(t, 2, s.Targets)
	assert.Equal(t, 50, s.Pct)

	assert.LessOrEqual(t, s.Seen, s.Total)
	assert.GreaterOrEqual(t, s.Pct, 0)
	assert.LessOrEqual(t, s.Pct, 100)
}

func TestComputeStatsEmptyCatalog(t *testing.T) {
	s := ComputeStats(nil, nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.Pct)
}

func TestComputeStatsRounding(t *testing.T) {
	species := []catalog.Species{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	annotations := map[string]types.Annotation{
		"a": {SpeciesID: "a", Seen: true},
	}
	// 1/3 -> 33.33 -> 33
	assert.Equal(t, 33, ComputeStats(species, annotations).Pct)

	annotations["b"] = types.Annotation{SpeciesID: "b", Seen: true}
	// 2/3 -> 66.67 -> 67
	assert.Equal(t, 67, ComputeStats(species, annotations).Pct)
}

func TestComputeStatsIgnoresAnnotationsOutsideCatalog(t *testing.T) {
	// Annotations persist across sessions; a later session can come up on a
	// smaller catalog (fallback, file reload). Seen stays bounded by Total.
	species := catalog.Fallback()
	annotations := map[string]types.Annotation{
		"snail-kite": {SpeciesID: "snail-kite", Seen: true},
		"limpkin":    {SpeciesID: "limpkin", Seen: true, Target: true},
		"wood-stork": {SpeciesID: "wood-stork", Seen: true},
	}

	s := ComputeStats(species, annotations)
	assert.Equal(t, 1, s.Total)
	assert.Equal(t, 1, s.Seen)
	assert.Equal(t, 0, s.Targets)
	assert.Equal(t, 100, s.Pct)
	assert.LessOrEqual(t, s.Seen, s.Total)
}

func idsOf(species []catalog.Species) []string {
	var ids []string
	for _, sp := range species {
		ids = append(ids, sp.ID)
	}
	return ids
}
