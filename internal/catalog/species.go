// Package catalog loads and models the regional species list.
// The catalog is read-only for the lifetime of a session; user state
// (seen/target annotations, logs, challenge progress) lives in internal/store
// and references species by ID.
package catalog

import "strings"

// Month abbreviations used as keys in Species.Months, in calendar order.
var MonthKeys = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Species is a single entry in the regional species list.
// ID is unique across the catalog; when the source omits it, it is derived
// from the common name via SlugID.
type Species struct {
	ID             string          `json:"id"`
	CommonName     string          `json:"commonName"`
	ScientificName string          `json:"scientificName,omitempty"`
	Family         string          `json:"family,omitempty"`
	Season         string          `json:"season,omitempty"`
	Habitat        string          `json:"habitat,omitempty"`
	BestLocation   string          `json:"bestLocation,omitempty"`
	Months         map[string]bool `json:"months,omitempty"`
}

// AvailableIn reports whether the species is expected in the given month.
// A species with no month map is never excluded by month; a species with a
// map that lacks the key (or maps it to false) is not available. This
// asymmetry is deliberate: partially specified catalog entries only claim
// the months they name.
func (s Species) AvailableIn(month string) bool {
	if s.Months == nil {
		return true
	}
	return s.Months[month]
}

// SlugID derives a stable identifier from a common name: lowercase, runs of
// non-alphanumeric characters collapsed to a single '-', no leading or
// trailing '-'. "Cooper's Hawk" -> "cooper-s-hawk".
func SlugID(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			if b.Len() > 0 {
				pendingSep = true
			}
			continue
		}
		if pendingSep {
			b.WriteByte('-')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
