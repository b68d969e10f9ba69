package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fieldbook/cmd/fieldbook/ui"
	"fieldbook/internal/engine"
)

// View renders the active view under a tab header.
func (m Model) View() string {
	if !m.ready {
		return "starting fieldbook…"
	}

	var content string
	switch {
	case m.inputMode == InputModeLogForm, m.inputMode == InputModeEditForm:
		content = m.viewForm()
	default:
		content = m.viewPage()
	}

	header := m.viewHeader()
	footer := m.viewFooter()
	body := m.styles.Content.Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) viewPage() string {
	switch m.viewMode {
	case HomeView:
		return m.home.View(m.stats(), m.deps.Logs.Len(), m.deps.Challenge.State().Active, m.loading)

	case ChecklistView:
		var sb strings.Builder
		sb.WriteString(m.viewFilterBar())
		sb.WriteString("\n")
		rows := make([]ui.ChecklistRow, len(m.filtered))
		for i, sp := range m.filtered {
			rows[i] = ui.ChecklistRow{Species: sp, Annotation: m.deps.Progress.Annotation(sp.ID)}
		}
		sb.WriteString(ui.RenderChecklist(m.styles, m.width-4, m.height-9, rows, m.cursor))
		return sb.String()

	case DetailView:
		sp, ok := m.selectedSpecies()
		if !ok {
			return m.styles.Muted.Render("No species selected. Pick one from the checklist.")
		}
		return ui.RenderDetail(m.styles, m.width-4, sp, m.deps.Progress.Annotation(sp.ID))

	case LogsView:
		return m.logsPage.View()

	case ChallengeView:
		state := m.deps.Challenge.State()
		return m.challengePage.View(state, engine.ChallengePct(&state), m.dailyPicks(), m.SelectedMonth())
	}
	return ""
}

func (m Model) viewHeader() string {
	s := m.styles
	var tabs []string
	for v := HomeView; v <= ChallengeView; v++ {
		label := fmt.Sprintf("%d %s", int(v)+1, v)
		if v == m.viewMode {
			tabs = append(tabs, s.Header.Render(label))
		} else {
			tabs = append(tabs, s.Muted.Render(label))
		}
	}
	return " " + strings.Join(tabs, "  ")
}

func (m Model) viewFilterBar() string {
	s := m.styles
	var parts []string

	if m.inputMode == InputModeSearch {
		parts = append(parts, "/"+m.searchInput.View())
	} else if m.query != "" {
		parts = append(parts, s.Info.Render("search: "+m.query))
	}
	if m.targetOnly {
		parts = append(parts, s.Target.Render("targets only"))
	}
	if month := m.SelectedMonth(); month != "" {
		parts = append(parts, s.Info.Render("month: "+month))
	} else {
		parts = append(parts, s.Muted.Render("all months"))
	}

	stats := m.stats()
	parts = append(parts, s.Muted.Render(fmt.Sprintf("%d/%d seen (%d%%)", stats.Seen, stats.Total, stats.Pct)))
	return strings.Join(parts, "   ")
}

func (m Model) viewFooter() string {
	s := m.styles
	switch m.inputMode {
	case InputModeSearch:
		return s.Footer.Render("[Enter] apply  [Esc] clear")
	case InputModeLogForm, InputModeEditForm:
		return s.Footer.Render("")
	}

	switch m.viewMode {
	case ChecklistView:
		return s.Footer.Render("[j/k] move  [/] search  [t] targets  [m] month  [s] seen  [x] target  [Enter] detail  [q] quit")
	case LogsView:
		return s.Footer.Render("[j/k] scroll  [n] new entry  [q] quit")
	case ChallengeView:
		return s.Footer.Render("[S] start  [R] reset  [q] quit")
	case DetailView:
		return s.Footer.Render("[s] seen  [x] target  [e] edit  [c] count  [Esc] back  [q] quit")
	}
	return s.Footer.Render("[1-5] views  [n] log entry  [q] quit")
}
