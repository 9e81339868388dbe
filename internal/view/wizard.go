package view

import (
	"fmt"
	"strings"

	"provider-directory/internal/wizard"
)

// Wizard renders the step indicator, pending field errors and the server
// banner of an editor.
func Wizard(w *wizard.Wizard) string {
	var b strings.Builder

	current := w.Step()
	for i, s := range wizard.Steps() {
		label := fmt.Sprintf("%d. %s", i+1, s)
		switch {
		case s == current:
			b.WriteString(activeTab.Render(label))
		case s < current:
			b.WriteString(okStyle.Render(label))
		default:
			b.WriteString(dimStyle.Render(label))
		}
		if s != wizard.LastStep {
			b.WriteString(dimStyle.Render(" › "))
		}
	}
	b.WriteString("\n")

	if errs := w.Errors(); len(errs) > 0 {
		b.WriteString(FieldErrors(errs))
	}
	if msg := w.ServerError(); msg != "" {
		b.WriteString(errStyle.Render(msg))
		b.WriteString("\n")
	}
	return b.String()
}
