package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"fieldbook/internal/catalog"
	"fieldbook/internal/types"
)

// ChallengePageModel defines the state of the 100-species challenge page.
type ChallengePageModel struct {
	progress progress.Model
	styles   Styles
	width    int
}

// NewChallengePageModel creates the challenge page.
func NewChallengePageModel(styles Styles) ChallengePageModel {
	p := progress.New(progress.WithDefaultGradient())
	return ChallengePageModel{progress: p, styles: styles, width: 80}
}

// SetSize updates the layout width.
func (m *ChallengePageModel) SetSize(w int) {
	m.width = w
	m.progress.Width = w - 4
	if m.progress.Width > 60 {
		m.progress.Width = 60
	}
}

// View renders challenge progress and the daily picks.
func (m ChallengePageModel) View(state types.ChallengeState, pct int, picks []catalog.Species, month string) string {
	s := m.styles
	var sb strings.Builder

	sb.WriteString(s.Title.Render("100 Species Challenge"))
	sb.WriteString("\n")

	if !state.Active {
		sb.WriteString(s.Muted.Render("Challenge not running."))
		sb.WriteString("\n\n")
		sb.WriteString(s.Muted.Render("[S] start challenge  [Esc] back"))
		sb.WriteString("\n")
		return sb.String()
	}

	if state.StartedAt != nil {
		sb.WriteString(s.Subtitle.Render("started " + state.StartedAt.Format("Jan 2, 2006")))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(s.Bold.Render(fmt.Sprintf("%d / %d species", state.Count(), types.ChallengeCap)))
	sb.WriteString("\n")
	sb.WriteString(m.progress.ViewAs(float64(pct) / 100))
	sb.WriteString("\n\n")

	header := "Today's picks"
	if month != "" {
		header += " (" + month + ")"
	}
	sb.WriteString(s.Header.Render(" " + header + " "))
	sb.WriteString("\n")
	if len(picks) == 0 {
		sb.WriteString(s.Muted.Render("  Nothing left to chase. Challenge complete?"))
		sb.WriteString("\n")
	}
	for _, sp := range picks {
		line := "  • " + sp.CommonName
		if sp.BestLocation != "" {
			line += s.Muted.Render("  — try " + sp.BestLocation)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render("[S] restart  [R] reset  [Esc] back"))
	sb.WriteString("\n")
	return sb.String()
}
