// Package engine computes the derived views: the filtered checklist,
// aggregate completion statistics, and the challenge's progress and
// deterministic daily picks. Everything here is a pure function of its
// inputs; callers recompute whenever an input changes.
package engine

import (
	"math"
	"strings"

	"fieldbook/internal/catalog"
	"fieldbook/internal/types"
)

// FilterParams describes one checklist view.
type FilterParams struct {
	Query      string // free text, matched case-insensitively after trimming
	TargetOnly bool   // only species annotated target=true
	Month      string // three-letter abbreviation; "" disables the month gate
}

// Filter returns the subsequence of the catalog satisfying params, in
// catalog order. Gates apply in order: target, month, query. Species with no
// month map are never excluded by month; species with a map that omits the
// selected month fail it.
func Filter(species []catalog.Species, annotations map[string]types.Annotation, params FilterParams) []catalog.Species {
	query := strings.ToLower(strings.TrimSpace(params.Query))

	var out []catalog.Species
	for _, sp := range species {
		if params.TargetOnly && !annotations[sp.ID].Target {
			continue
		}
		if params.Month != "" && !sp.AvailableIn(params.Month) {
			continue
		}
		if query != "" && !matchesQuery(sp, query) {
			continue
		}
		out = append(out, sp)
	}
	return out
}

// matchesQuery reports whether any searchable field contains the folded query.
func matchesQuery(sp catalog.Species, query string) bool {
	for _, field := range []string{sp.CommonName, sp.ScientificName, sp.Family, sp.Habitat} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Stats are the aggregate completion statistics for the whole catalog.
type Stats struct {
	Total   int
	Seen    int
	Targets int
	Pct     int // round(Seen/Total*100); 0 when Total is 0
}

// ComputeStats tallies seen/target annotations against the catalog.
// Annotations for species absent from the catalog are ignored; the catalog
// can shrink between sessions (fallback catalog, file reload) while old
// annotations persist, and Seen must never exceed Total.
func ComputeStats(species []catalog.Species, annotations map[string]types.Annotation) Stats {
	s := Stats{Total: len(species)}
	for _, sp := range species {
		ann, ok := annotations[sp.ID]
		if !ok {
			continue
		}
		if ann.Seen {
			s.Seen++
		}
		if ann.Target {
			s.Targets++
		}
	}
	if s.Total > 0 {
		s.Pct = int(math.Round(float64(s.Seen) / float64(s.Total) * 100))
	}
	return s
}
