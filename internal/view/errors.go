package view

import (
	"sort"
	"strings"

	"provider-directory/pkg/validator"
)

// ErrorPage is shown when a command fails unexpectedly.
func ErrorPage(err error) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Oops! Algo salió mal"))
	b.WriteString("\n\n")
	b.WriteString("Lo sentimos, ha ocurrido un error inesperado. Por favor, intenta nuevamente.")
	if err != nil {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("Intentar de nuevo"))
	b.WriteString(dimStyle.Render(": vuelve a ejecutar el comando."))
	return errorBox.Render(b.String())
}

// FieldErrors lists validation messages sorted by field.
func FieldErrors(errs validator.FieldErrors) string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(errStyle.Render("✗ " + k + ": " + errs[k]))
		b.WriteString("\n")
	}
	return b.String()
}
