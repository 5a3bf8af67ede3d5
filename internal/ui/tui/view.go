package tui

import (
	"fmt"
	"sort"
	"strings"
)

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderSteps(&b, m)

	switch {
	case m.Done:
		b.WriteString("\n\n")
		b.WriteString(doneStyle.Render(checkMark + " Submitted"))
		b.WriteString("\n")
		return b.String()
	case m.seq.Pending():
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View() + " " + warningStyle.Render("Submitting..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(formStyle.Render(m.form.View()))
	b.WriteString("\n")

	renderErrors(&b, m)
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	if m.title != "" {
		b.WriteString(titleStyle.Render(m.title))
		b.WriteString(" ")
	}
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("step %d of %d", m.seq.Active()+1, m.seq.Len())))
	b.WriteString("\n")
}

func renderSteps(b *strings.Builder, m Model) {
	steps := m.seq.Steps()
	parts := make([]string, len(steps))
	for i, s := range steps {
		switch {
		case m.seq.StepDone(i):
			parts[i] = doneStyle.Render(checkMark + " " + s.Label)
		case i == m.seq.Active():
			parts[i] = activeStyle.Render(activeMark + " " + s.Label)
		default:
			parts[i] = dimStyle.Render(pending + " " + s.Label)
		}
	}
	b.WriteString(strings.Join(parts, dimStyle.Render("  >  ")))
}

func renderErrors(b *strings.Builder, m Model) {
	names := make([]string, 0, len(m.fieldErrs))
	for name := range m.fieldErrs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		line := m.fieldErrs[name]
		if name != "" {
			label := name
			if f, ok := m.state.Field(name); ok && f.Label != "" {
				label = f.Label
			}
			line = label + ": " + line
		}
		b.WriteString(failedStyle.Render(crossMark + " " + line))
		b.WriteString("\n")
	}

	if m.SubmitErr != nil {
		b.WriteString(failedStyle.Render(fmt.Sprintf("%s Submit failed: %v", crossMark, m.SubmitErr)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Press enter to submit again."))
		b.WriteString("\n")
	}
}

func renderFooter(b *strings.Builder, m Model) {
	hints := []string{"enter: next"}
	if m.seq.IsLast() {
		hints[0] = "enter: submit"
	}
	if m.seq.Active() > 0 {
		hints = append(hints, "esc: back")
	}
	hints = append(hints, "ctrl+c: quit")
	b.WriteString(footerStyle.Render(strings.Join(hints, "  ")))
	b.WriteString("\n")
}
