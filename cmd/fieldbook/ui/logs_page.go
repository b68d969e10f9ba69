package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"fieldbook/internal/types"
)

// LogsPageModel shows the observation log, newest first, in a scrollable
// viewport.
type LogsPageModel struct {
	viewport viewport.Model
	styles   Styles
	count    int
}

// NewLogsPageModel creates the logs page.
func NewLogsPageModel(styles Styles) LogsPageModel {
	vp := viewport.New(80, 20)
	vp.SetContent("")
	return LogsPageModel{viewport: vp, styles: styles}
}

// Update handles scrolling.
func (m LogsPageModel) Update(msg tea.Msg) (LogsPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "k", "up":
			m.viewport.LineUp(1)
		case "j", "down":
			m.viewport.LineDown(1)
		case "pgup":
			m.viewport.HalfViewUp()
		case "pgdown":
			m.viewport.HalfViewDown()
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the page.
func (m LogsPageModel) View() string {
	if m.count == 0 {
		return m.styles.Muted.Render("No observation sessions logged yet. Press 'n' to add one.")
	}
	return m.viewport.View()
}

// SetSize updates the viewport dimensions.
func (m *LogsPageModel) SetSize(w, h int) {
	m.viewport.Width = w
	m.viewport.Height = h
}

// UpdateContent rebuilds the viewport from the log entries.
func (m *LogsPageModel) UpdateContent(entries []types.LogEntry) {
	m.count = len(entries)

	var sb strings.Builder
	for _, e := range entries {
		header := fmt.Sprintf("%s  %s", e.Date, e.SpeciesName)
		sb.WriteString(m.styles.Bold.Render(header))
		sb.WriteString("  ")
		sb.WriteString(m.styles.Badge.Render(string(e.Category)))
		sb.WriteString("\n")

		place := e.Location
		if e.County != "" {
			place += ", " + e.County
		}
		sb.WriteString("  " + m.styles.Body.Render(place) + "\n")
		if e.Settings != "" {
			sb.WriteString("  " + m.styles.Muted.Render("settings: "+e.Settings) + "\n")
		}
		if e.Notes != "" {
			sb.WriteString("  " + m.styles.Muted.Render(e.Notes) + "\n")
		}
		sb.WriteString("\n")
	}
	m.viewport.SetContent(sb.String())
}
