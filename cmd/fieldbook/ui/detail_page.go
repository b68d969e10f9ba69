package ui

import (
	"fmt"
	"strings"

	"fieldbook/internal/catalog"
	"fieldbook/internal/types"
)

// RenderDetail renders the species detail view: catalog facts on top, the
// user's annotation below.
func RenderDetail(s Styles, width int, sp catalog.Species, ann types.Annotation) string {
	var sb strings.Builder

	sb.WriteString(s.Title.Render(sp.CommonName))
	sb.WriteString("\n")
	if sp.ScientificName != "" {
		sb.WriteString(s.Subtitle.Render(sp.ScientificName))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	writeFact := func(label, value string) {
		if value == "" {
			return
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", s.Bold.Render(label+":"), value))
	}
	writeFact("Family", sp.Family)
	writeFact("Season", sp.Season)
	writeFact("Habitat", sp.Habitat)
	writeFact("Best location", sp.BestLocation)
	if sp.Months != nil {
		sb.WriteString(fmt.Sprintf("%s %s\n", s.Bold.Render("Months:"), renderMonths(s, sp)))
	}

	sb.WriteString("\n")
	sb.WriteString(s.RenderDivider(min(width, 60)))
	sb.WriteString("\n\n")

	status := s.Muted.Render("not seen")
	if ann.Seen {
		status = s.Success.Render("seen")
	}
	if ann.Target {
		status += "  " + s.Target.Render("◎ target")
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", s.Bold.Render("Status:"), status))
	writeFact("Date", ann.Date)
	writeFact("Location", ann.Location)
	writeFact("County", ann.County)
	writeFact("Notes", ann.Notes)

	sb.WriteString("\n")
	sb.WriteString(s.Muted.Render("[s] seen  [x] target  [e] edit  [c] count for challenge  [Esc] back"))
	sb.WriteString("\n")
	return sb.String()
}

// renderMonths shows the twelve months with the available ones highlighted.
func renderMonths(s Styles, sp catalog.Species) string {
	parts := make([]string, 0, len(catalog.MonthKeys))
	for _, m := range catalog.MonthKeys {
		if sp.AvailableIn(m) {
			parts = append(parts, s.Success.Render(m))
		} else {
			parts = append(parts, s.Muted.Render(m))
		}
	}
	return strings.Join(parts, " ")
}
