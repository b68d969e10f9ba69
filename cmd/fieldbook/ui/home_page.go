package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"fieldbook/internal/engine"
)

// HomePageModel renders the summary screen from markdown, in the same way
// a chat transcript would be rendered.
type HomePageModel struct {
	renderer *glamour.TermRenderer
	styles   Styles
	width    int
}

// NewHomePageModel creates the home page. A renderer that cannot be
// constructed degrades to plain text.
func NewHomePageModel(styles Styles) HomePageModel {
	style := "light"
	if styles.Theme.IsDark {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(76),
	)
	if err != nil {
		renderer = nil
	}
	return HomePageModel{renderer: renderer, styles: styles, width: 80}
}

// SetSize updates the wrap width.
func (m *HomePageModel) SetSize(w int) {
	m.width = w
}

// View renders the summary markdown.
func (m HomePageModel) View(stats engine.Stats, logCount int, challengeActive bool, loading bool) string {
	if loading {
		return m.styles.Muted.Render("Loading species catalog…")
	}

	md := m.summaryMarkdown(stats, logCount, challengeActive)
	if m.renderer != nil {
		if out, err := m.renderer.Render(md); err == nil {
			return out
		}
	}
	return md
}

func (m HomePageModel) summaryMarkdown(stats engine.Stats, logCount int, challengeActive bool) string {
	var sb strings.Builder
	sb.WriteString("# Fieldbook\n\n")
	sb.WriteString(fmt.Sprintf("**%d** of **%d** species seen (%d%%), %d marked as targets.\n\n",
		stats.Seen, stats.Total, stats.Pct, stats.Targets))
	sb.WriteString(fmt.Sprintf("%d observation sessions logged.\n\n", logCount))
	if challengeActive {
		sb.WriteString("The 100 species challenge is **running** — see the challenge view for today's picks.\n\n")
	} else {
		sb.WriteString("The 100 species challenge is not running.\n\n")
	}
	sb.WriteString("## Keys\n\n")
	sb.WriteString("- `1`–`5` switch views: home, checklist, detail, logs, challenge\n")
	sb.WriteString("- `/` search, `t` targets only, `m`/`M` cycle month filter\n")
	sb.WriteString("- `s` toggle seen, `x` toggle target, `n` new log entry\n")
	sb.WriteString("- `q` quit\n")
	return sb.String()
}
