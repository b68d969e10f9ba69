package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fieldbook/cmd/fieldbook/ui"
	"fieldbook/internal/catalog"
	"fieldbook/internal/engine"
	"fieldbook/internal/logging"
)

// New builds the root model. The catalog loads asynchronously; until it
// arrives the home view shows a loading notice and the other views work
// against an empty catalog.
func New(deps Deps) Model {
	theme := ui.DetectTheme()
	if deps.Config != nil && deps.Config.UI.DarkMode {
		theme = ui.DarkTheme()
	}
	styles := ui.NewStyles(theme)

	search := textinput.New()
	search.Placeholder = "name, family, or habitat…"
	search.CharLimit = 64
	search.Width = 32

	m := Model{
		deps:          deps,
		styles:        styles,
		viewMode:      HomeView,
		inputMode:     InputModeNormal,
		loading:       true,
		catalogEvents: make(chan struct{}, 1),
		searchInput:   search,
		home:          ui.NewHomePageModel(styles),
		logsPage:      ui.NewLogsPageModel(styles),
		challengePage: ui.NewChallengePageModel(styles),
		now:           deps.Now,
	}
	if m.now == nil {
		m.now = time.Now
	}
	m.monthIdx = currentMonthIndex(m.now())

	// Seen transitions feed the challenge auto-count.
	deps.Progress.OnSeen(func(id string) { deps.Challenge.RecordSeen(id) })

	if deps.Config != nil && deps.Config.Catalog.Watch {
		m.watcher = catalog.Watch(deps.Config.Catalog.Source, func() {
			select {
			case m.catalogEvents <- struct{}{}:
			default: // a reload is already pending
			}
		})
	}

	m.logsPage.UpdateContent(deps.Logs.Entries())
	return m
}

// Init kicks off the catalog load and the watcher listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCatalog(), m.waitForCatalogChange())
}

// loadCatalog fetches the catalog off the event loop. Failures surface as a
// fallback catalog, never as an error message.
func (m Model) loadCatalog() tea.Cmd {
	source := ""
	if m.deps.Config != nil {
		source = m.deps.Config.Catalog.Source
	}
	return func() tea.Msg {
		return catalogLoadedMsg{species: catalog.Load(context.Background(), source)}
	}
}

// waitForCatalogChange blocks on the watcher channel. Re-armed after every
// delivery.
func (m Model) waitForCatalogChange() tea.Cmd {
	events := m.catalogEvents
	return func() tea.Msg {
		<-events
		return catalogChangedMsg{}
	}
}

// Close releases the watcher. Called after the program exits.
func (m Model) Close() {
	m.watcher.Close()
}

// refilter recomputes the filtered checklist view and clamps the cursor.
func (m *Model) refilter() {
	m.filtered = engine.Filter(m.species, m.deps.Progress.All(), engine.FilterParams{
		Query:      m.query,
		TargetOnly: m.targetOnly,
		Month:      m.SelectedMonth(),
	})
	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// stats computes the aggregate view over the current catalog.
func (m Model) stats() engine.Stats {
	return engine.ComputeStats(m.species, m.deps.Progress.All())
}

// dailyPicks computes today's challenge recommendations.
func (m Model) dailyPicks() []catalog.Species {
	state := m.deps.Challenge.State()
	return engine.DailyPicks(m.species, &state, m.SelectedMonth(), engine.DayString(m.now()))
}

// selectedSpecies resolves the detail view's species, falling back to the
// checklist cursor.
func (m Model) selectedSpecies() (catalog.Species, bool) {
	for _, sp := range m.species {
		if sp.ID == m.selectedID {
			return sp, true
		}
	}
	if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
		return m.filtered[m.cursor], true
	}
	return catalog.Species{}, false
}

// setView switches the active view.
func (m *Model) setView(v ViewMode) {
	if m.viewMode != v {
		logging.Get(logging.CategoryUI).Debug("view %s -> %s", m.viewMode, v)
	}
	m.viewMode = v
}

func currentMonthIndex(t time.Time) int {
	return int(t.Month()) - 1
}
