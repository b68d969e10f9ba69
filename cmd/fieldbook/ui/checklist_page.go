package ui

import (
	"fmt"
	"strings"

	"fieldbook/internal/catalog"
	"fieldbook/internal/types"
)

// ChecklistRow pairs a species with its annotation for rendering.
type ChecklistRow struct {
	Species    catalog.Species
	Annotation types.Annotation
}

// RenderChecklist renders the filtered species list with a cursor. The list
// is windowed around the cursor so long catalogs scroll instead of
// overflowing the terminal.
func RenderChecklist(s Styles, width, height int, rows []ChecklistRow, cursor int) string {
	if len(rows) == 0 {
		return s.Muted.Render("No species match the current filters.")
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}

	visible := height
	if visible < 1 {
		visible = 1
	}
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(rows) {
		end = len(rows)
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		sb.WriteString(renderRow(s, width, rows[i], i == cursor))
		sb.WriteString("\n")
	}
	if end < len(rows) {
		sb.WriteString(s.Muted.Render(fmt.Sprintf("  … %d more", len(rows)-end)))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderRow(s Styles, width int, row ChecklistRow, selected bool) string {
	seen := " "
	if row.Annotation.Seen {
		seen = s.SeenMark.Render("✓")
	}
	target := " "
	if row.Annotation.Target {
		target = s.Target.Render("◎")
	}
	pointer := "  "
	if selected {
		pointer = s.Cursor.Render("▶ ")
	}

	name := row.Species.CommonName
	if r := []rune(name); width > 0 && len(r) > 32 {
		name = string(r[:31]) + "…"
	}
	line := fmt.Sprintf("%s[%s]%s %-32s", pointer, seen, target, name)
	if sci := row.Species.ScientificName; sci != "" && (width == 0 || width > 48) {
		line += " " + s.Subtitle.Render(sci)
	}
	return line
}
