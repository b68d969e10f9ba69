package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"fieldbook/internal/catalog"
)

// Update handles all messages for the root model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.logsPage.SetSize(msg.Width-4, msg.Height-6)
		m.challengePage.SetSize(msg.Width - 4)
		m.home.SetSize(msg.Width - 4)
		return m, nil

	case catalogLoadedMsg:
		m.species = msg.species
		m.loading = false
		m.refilter()
		return m, nil

	case catalogChangedMsg:
		// Reload and re-arm the watcher listener.
		return m, tea.Batch(m.loadCatalog(), m.waitForCatalogChange())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always exits, regardless of input mode.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.inputMode {
	case InputModeLogForm, InputModeEditForm:
		cmd, open := m.updateForm(msg)
		if !open {
			m.form = nil
			m.inputMode = InputModeNormal
			m.refilter()
		}
		return m, cmd

	case InputModeSearch:
		return m.handleSearchKey(msg)
	}

	return m.handleNormalKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.query = ""
		m.inputMode = InputModeNormal
		m.refilter()
		return m, nil
	case "enter":
		m.searchInput.Blur()
		m.inputMode = InputModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.query = m.searchInput.Value()
	m.refilter()
	return m, cmd
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global navigation.
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "1":
		m.setView(HomeView)
		return m, nil
	case "2":
		m.setView(ChecklistView)
		m.refilter()
		return m, nil
	case "3":
		m.setView(DetailView)
		return m, nil
	case "4":
		m.setView(LogsView)
		m.logsPage.UpdateContent(m.deps.Logs.Entries())
		return m, nil
	case "5":
		m.setView(ChallengeView)
		return m, nil
	case "n":
		m.form = m.newLogForm()
		m.inputMode = InputModeLogForm
		return m, nil
	}

	switch m.viewMode {
	case ChecklistView:
		return m.handleChecklistKey(msg)
	case DetailView:
		return m.handleDetailKey(msg)
	case LogsView:
		var cmd tea.Cmd
		m.logsPage, cmd = m.logsPage.Update(msg)
		return m, cmd
	case ChallengeView:
		return m.handleChallengeKey(msg)
	}

	return m, nil
}

func (m Model) handleChecklistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = len(m.filtered) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	case "/":
		m.inputMode = InputModeSearch
		m.searchInput.Focus()
		return m, nil
	case "t":
		m.targetOnly = !m.targetOnly
		m.refilter()
	case "m":
		m.monthIdx++
		if m.monthIdx >= len(catalog.MonthKeys) {
			m.monthIdx = -1 // wrap through "no month filter"
		}
		m.refilter()
	case "M":
		m.monthIdx = -1
		m.refilter()
	case "s":
		if sp, ok := m.cursorSpecies(); ok {
			m.deps.Progress.ToggleSeen(sp.ID)
			m.refilter()
		}
	case "x":
		if sp, ok := m.cursorSpecies(); ok {
			m.deps.Progress.ToggleTarget(sp.ID)
			m.refilter()
		}
	case "enter":
		if sp, ok := m.cursorSpecies(); ok {
			m.selectedID = sp.ID
			m.setView(DetailView)
		}
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sp, ok := m.selectedSpecies()
	if !ok {
		if msg.String() == "esc" {
			m.setView(ChecklistView)
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.setView(ChecklistView)
	case "s":
		m.deps.Progress.ToggleSeen(sp.ID)
		m.refilter()
	case "x":
		m.deps.Progress.ToggleTarget(sp.ID)
		m.refilter()
	case "e":
		m.form = m.newEditForm(sp.ID)
		m.inputMode = InputModeEditForm
	case "c":
		// Manual challenge count; silently a no-op when inactive,
		// duplicate, or at the cap.
		m.deps.Challenge.Count(sp.ID)
	}
	return m, nil
}

func (m Model) handleChallengeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "S":
		m.deps.Challenge.Start()
	case "R":
		m.deps.Challenge.Reset()
	case "esc":
		m.setView(HomeView)
	}
	return m, nil
}

func (m Model) cursorSpecies() (catalog.Species, bool) {
	if len(m.filtered) == 0 || m.cursor >= len(m.filtered) {
		return catalog.Species{}, false
	}
	return m.filtered[m.cursor], true
}
