package engine

import (
	"math"
	"sort"
	"time"

	"fieldbook/internal/catalog"
	"fieldbook/internal/types"
)

// MaxDailyPicks bounds the daily recommendation list.
const MaxDailyPicks = 5

// ChallengePct returns the challenge completion percentage, clamped to
// [0,100].
func ChallengePct(state *types.ChallengeState) int {
	pct := int(math.Round(float64(state.Count()) / float64(types.ChallengeCap) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// DaySeed hashes a calendar date string (ISO YYYY-MM-DD) into a per-day
// seed: acc = acc*31 + char, truncated to unsigned 32 bits. The hash is not
// meant to be strong; it only has to vary day to day and stay stable within
// one day.
func DaySeed(date string) uint32 {
	var acc uint32
	for _, ch := range date {
		acc = acc*31 + uint32(ch)
	}
	return acc
}

// DayString formats t as the local calendar day used for seeding.
func DayString(t time.Time) string {
	return t.Format("2006-01-02")
}

// DailyPicks selects up to MaxDailyPicks not-yet-completed species for the
// given calendar day. The pool is narrowed to species whose month map marks
// the selected month as true; if that narrowing empties the pool (including
// when no month is selected), the full not-completed pool is used instead.
// Ordering is a
// deterministic keyed sort: seed XOR id length XOR name length, with catalog
// order breaking ties. Same day, same catalog, same completion set, same
// month => identical output.
func DailyPicks(species []catalog.Species, state *types.ChallengeState, month string, day string) []catalog.Species {
	var pool []catalog.Species
	for _, sp := range species {
		if !state.Has(sp.ID) {
			pool = append(pool, sp)
		}
	}

	// Unlike the checklist month gate, the narrowing here requires an
	// explicit month map entry; map-less species only reappear via the
	// fallback below.
	var narrowed []catalog.Species
	for _, sp := range pool {
		if sp.Months != nil && sp.Months[month] {
			narrowed = append(narrowed, sp)
		}
	}
	if len(narrowed) == 0 {
		narrowed = pool
	}

	seed := DaySeed(day)
	keyed := make([]catalog.Species, len(narrowed))
	copy(keyed, narrowed)
	sort.SliceStable(keyed, func(i, j int) bool {
		return pickKey(seed, keyed[i]) < pickKey(seed, keyed[j])
	})

	if len(keyed) > MaxDailyPicks {
		keyed = keyed[:MaxDailyPicks]
	}
	return keyed
}

// pickKey derives the per-species sort key for a day. The key collides
// freely (it only mixes two string lengths into the seed); the stable sort
// keeps catalog order among colliding species.
func pickKey(seed uint32, sp catalog.Species) uint32 {
	return seed ^ uint32(len(sp.ID)) ^ uint32(len(sp.CommonName))
}
