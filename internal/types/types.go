// Package types defines the user-owned data model shared by the stores,
// the engines, and the TUI: annotations, observation log entries, and
// challenge state. Species itself lives in internal/catalog; everything
// here references it by ID.
package types

import (
	"strings"
	"time"
)

// Annotation is the per-species user state. Created lazily on first
// interaction; never deleted. At most one per species ID.
type Annotation struct {
	SpeciesID string `json:"speciesId"`
	Seen      bool   `json:"seen"`
	Target    bool   `json:"target"`
	Date      string `json:"date,omitempty"`
	Location  string `json:"location,omitempty"`
	County    string `json:"county,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// LogCategory is the closed set of observation session categories.
type LogCategory string

const (
	CategoryGeneral    LogCategory = "general"
	CategoryRaptors    LogCategory = "raptors"
	CategoryOwls       LogCategory = "owls"
	CategoryShorebirds LogCategory = "shorebirds"
)

// LogCategories lists the valid categories in display order.
var LogCategories = []LogCategory{
	CategoryGeneral, CategoryRaptors, CategoryOwls, CategoryShorebirds,
}

// Valid reports whether c is one of the known categories.
func (c LogCategory) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryRaptors, CategoryOwls, CategoryShorebirds:
		return true
	}
	return false
}

// LogEntry is one observation session record. Immutable once created;
// SpeciesName is free text, not a catalog foreign key.
type LogEntry struct {
	ID          string      `json:"id"`
	Date        string      `json:"date"`
	SpeciesName string      `json:"speciesName"`
	Location    string      `json:"location"`
	County      string      `json:"county,omitempty"`
	Category    LogCategory `json:"category"`
	Settings    string      `json:"settings,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

// ChallengeCap is the fixed size of the personal challenge.
const ChallengeCap = 100

// ChallengeState tracks the 100-species challenge. Completed preserves
// insertion order and never exceeds ChallengeCap.
type ChallengeState struct {
	Active    bool       `json:"active"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	Completed []string   `json:"completed"`
}

// Start activates the challenge with an empty completion set and a fresh
// start timestamp. Unconditional.
func (c *ChallengeState) Start(now time.Time) {
	c.Active = true
	c.StartedAt = &now
	c.Completed = nil
}

// Reset deactivates the challenge and clears all progress. Unconditional.
func (c *ChallengeState) Reset() {
	c.Active = false
	c.StartedAt = nil
	c.Completed = nil
}

// Has reports whether the species is already counted.
func (c ChallengeState) Has(id string) bool {
	for _, got := range c.Completed {
		if got == id {
			return true
		}
	}
	return false
}

// Count returns the number of counted species.
func (c ChallengeState) Count() int {
	return len(c.Completed)
}

// AddCompleted appends the species to the completion set and reports
// whether anything changed. No-ops (never errors) when the challenge is
// inactive, the species is already counted, or the cap is reached.
// Completion is a ratchet: there is no removal operation.
func (c *ChallengeState) AddCompleted(id string) bool {
	id = strings.TrimSpace(id)
	if !c.Active || id == "" {
		return false
	}
	if len(c.Completed) >= ChallengeCap || c.Has(id) {
		return false
	}
	c.Completed = append(c.Completed, id)
	return true
}
