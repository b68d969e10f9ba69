// Package app implements the interactive fieldbook TUI: a root Bubble Tea
// model routing between five mutually exclusive views, with wizard-style
// form input for log entries and annotation edits.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"fieldbook/cmd/fieldbook/ui"
	"fieldbook/internal/catalog"
	"fieldbook/internal/config"
	"fieldbook/internal/store"
)

// ViewMode determines which view is active. Views are mutually exclusive.
type ViewMode int

const (
	HomeView ViewMode = iota
	ChecklistView
	DetailView
	LogsView
	ChallengeView
)

// String returns the display name for each view.
func (v ViewMode) String() string {
	names := []string{"Home", "Checklist", "Detail", "Logs", "Challenge"}
	if int(v) < len(names) {
		return names[v]
	}
	return "Unknown"
}

// InputMode represents the current input handling state. A single state
// machine instead of scattered awaiting* flags.
type InputMode int

const (
	InputModeNormal  InputMode = iota // Keys act as navigation/toggles
	InputModeSearch                   // Search input captures keystrokes
	InputModeLogForm                  // Log entry form active
	InputModeEditForm                 // Annotation edit form active
)

// Deps are the stores and config the model operates on. Passed explicitly;
// there are no ambient globals.
type Deps struct {
	Config    *config.Config
	Progress  *store.ProgressStore
	Logs      *store.LogStore
	Challenge *store.ChallengeStore

	// Now overrides the clock for the default month filter and daily
	// picks. nil means time.Now.
	Now func() time.Time
}

// catalogLoadedMsg delivers the startup (or reloaded) catalog.
type catalogLoadedMsg struct {
	species []catalog.Species
}

// catalogChangedMsg signals that the watched catalog file changed on disk.
type catalogChangedMsg struct{}

// Model is the root model for the interactive checklist.
type Model struct {
	deps   Deps
	styles ui.Styles

	viewMode  ViewMode
	inputMode InputMode

	// Catalog
	species       []catalog.Species
	loading       bool
	watcher       *catalog.Watcher
	catalogEvents chan struct{}

	// Checklist filter state
	query      string
	targetOnly bool
	monthIdx   int // index into catalog.MonthKeys; -1 disables the month gate
	cursor     int
	filtered   []catalog.Species

	searchInput textinput.Model

	// Detail
	selectedID string

	// Pages
	home          ui.HomePageModel
	logsPage      ui.LogsPageModel
	challengePage ui.ChallengePageModel

	// Active form, nil outside form modes
	form *formState

	width  int
	height int
	ready  bool

	// Clock, injected so daily-pick rendering is testable
	now func() time.Time
}

// SelectedMonth returns the month abbreviation of the active month filter,
// or "" when disabled.
func (m Model) SelectedMonth() string {
	if m.monthIdx < 0 || m.monthIdx >= len(catalog.MonthKeys) {
		return ""
	}
	return catalog.MonthKeys[m.monthIdx]
}
