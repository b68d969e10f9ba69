package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fieldbook/internal/engine"
	"fieldbook/internal/store"
	"fieldbook/internal/types"
)

type formKind int

const (
	formLog formKind = iota
	formEdit
)

// formState is a stepped form: tab/enter advance through text fields, and
// the log form ends on a category chooser cycled with left/right. Escape
// cancels; a rejected submission keeps the filled values so they can be
// corrected.
type formState struct {
	kind        formKind
	labels      []string
	inputs      []textinput.Model
	focus       int
	categoryIdx int    // log form only
	notice      string // validation feedback
	speciesID   string // edit form target
}

func newInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 120
	in.Width = 40
	in.SetValue(value)
	return in
}

// newLogForm builds the observation log form with today's date prefilled.
func (m *Model) newLogForm() *formState {
	f := &formState{
		kind:   formLog,
		labels: []string{"Date", "Species", "Location", "County", "Settings", "Notes"},
		inputs: []textinput.Model{
			newInput("YYYY-MM-DD", engine.DayString(m.now())),
			newInput("e.g. Snail Kite", ""),
			newInput("where you were", ""),
			newInput("optional", ""),
			newInput("optional, e.g. 8x42 bins", ""),
			newInput("optional", ""),
		},
	}
	f.inputs[0].Focus()
	return f
}

// newEditForm builds the annotation edit form prefilled from the current
// record.
func (m *Model) newEditForm(speciesID string) *formState {
	ann := m.deps.Progress.Annotation(speciesID)
	f := &formState{
		kind:      formEdit,
		speciesID: speciesID,
		labels:    []string{"Date", "Location", "County", "Notes"},
		inputs: []textinput.Model{
			newInput("YYYY-MM-DD", ann.Date),
			newInput("where you saw it", ann.Location),
			newInput("optional", ann.County),
			newInput("optional", ann.Notes),
		},
	}
	f.inputs[0].Focus()
	return f
}

// fieldCount includes the category chooser for the log form.
func (f *formState) fieldCount() int {
	if f.kind == formLog {
		return len(f.inputs) + 1
	}
	return len(f.inputs)
}

func (f *formState) onCategoryRow() bool {
	return f.kind == formLog && f.focus == len(f.inputs)
}

func (f *formState) setFocus(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx >= f.fieldCount() {
		idx = f.fieldCount() - 1
	}
	f.focus = idx
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// updateForm routes a key to the active form. Returns false when the form
// was dismissed.
func (m *Model) updateForm(msg tea.KeyMsg) (tea.Cmd, bool) {
	f := m.form

	switch msg.String() {
	case "esc":
		return nil, false
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return nil, true
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return nil, true
	case "left":
		if f.onCategoryRow() {
			f.categoryIdx = (f.categoryIdx + len(types.LogCategories) - 1) % len(types.LogCategories)
			return nil, true
		}
	case "right":
		if f.onCategoryRow() {
			f.categoryIdx = (f.categoryIdx + 1) % len(types.LogCategories)
			return nil, true
		}
	case "enter":
		if f.focus < f.fieldCount()-1 {
			f.setFocus(f.focus + 1)
			return nil, true
		}
		return nil, m.submitForm()
	}

	if f.focus < len(f.inputs) {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return cmd, true
	}
	return nil, true
}

// submitForm applies the form. Returns true when the form should stay open
// (rejected submission).
func (m *Model) submitForm() bool {
	f := m.form
	switch f.kind {
	case formLog:
		accepted := m.deps.Logs.Append(types.LogEntry{
			Date:        strings.TrimSpace(f.inputs[0].Value()),
			SpeciesName: f.inputs[1].Value(),
			Location:    f.inputs[2].Value(),
			County:      strings.TrimSpace(f.inputs[3].Value()),
			Settings:    strings.TrimSpace(f.inputs[4].Value()),
			Notes:       strings.TrimSpace(f.inputs[5].Value()),
			Category:    types.LogCategories[f.categoryIdx],
		})
		if !accepted {
			f.notice = "species and location are required"
			return true
		}
		m.logsPage.UpdateContent(m.deps.Logs.Entries())
		return false

	case formEdit:
		fields := []store.AnnotationField{store.FieldDate, store.FieldLocation, store.FieldCounty, store.FieldNotes}
		for i, field := range fields {
			m.deps.Progress.SetField(f.speciesID, field, strings.TrimSpace(f.inputs[i].Value()))
		}
		return false
	}
	return false
}

// viewForm renders the active form.
func (m Model) viewForm() string {
	f := m.form
	s := m.styles
	var sb strings.Builder

	title := "New observation session"
	if f.kind == formEdit {
		title = "Edit sighting details"
	}
	sb.WriteString(s.Title.Render(title))
	sb.WriteString("\n")

	for i, in := range f.inputs {
		label := f.labels[i]
		if i == f.focus {
			sb.WriteString(s.Cursor.Render("▶ "))
		} else {
			sb.WriteString("  ")
		}
		sb.WriteString(s.Bold.Render(label+":") + " " + in.View())
		sb.WriteString("\n")
	}

	if f.kind == formLog {
		if f.onCategoryRow() {
			sb.WriteString(s.Cursor.Render("▶ "))
		} else {
			sb.WriteString("  ")
		}
		sb.WriteString(s.Bold.Render("Category:") + " ")
		for i, c := range types.LogCategories {
			name := string(c)
			if i == f.categoryIdx {
				sb.WriteString(s.Badge.Render(name))
			} else {
				sb.WriteString(s.Muted.Render(name))
			}
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	if f.notice != "" {
		sb.WriteString("\n" + s.Warning.Render(f.notice) + "\n")
	}
	sb.WriteString("\n" + s.Muted.Render("[Tab] next field  [Enter] next/submit  [Esc] cancel") + "\n")
	return sb.String()
}
