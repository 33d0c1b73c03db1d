package form

import (
	"sort"

	"github.com/wolfman30/clinic-booking-form/internal/clinicapi"
)

// serverErrorMessage is the banner shown for any transport failure.
const serverErrorMessage = "Erro ao conectar com o servidor."

// fieldLabels maps wire field names to the labels shown next to messages.
// Unmapped names are shown verbatim.
var fieldLabels = map[string]string{
	"medico":       "Médico",
	"data":         "Data",
	"hora":         "Horário",
	"observacoes":  "Observações",
	"convenio":     "Convênio",
	"usa_convenio": "Convênio",
	"data_hora":    "Data e Horário",
	"__all__":      "Erro",
}

// FieldLabel returns the localized label for a wire field name.
func FieldLabel(field string) string {
	if label, ok := fieldLabels[field]; ok {
		return label
	}
	return field
}

// ErrorSurface maps server validation errors onto the view's inline error
// lines and shared banner. Any tracked field change clears it unconditionally.
type ErrorSurface struct {
	view    View
	visible bool
}

// NewErrorSurface creates an error surface bound to a view.
func NewErrorSurface(view View) *ErrorSurface {
	return &ErrorSurface{view: view}
}

// Show renders the server's field errors. Fields are ordered by name (the
// wire contract only orders messages within a field); message order within a
// field is preserved.
func (s *ErrorSurface) Show(errs clinicapi.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var lines []ErrorLine
	for _, field := range fields {
		for _, msg := range errs[field] {
			lines = append(lines, ErrorLine{
				Field:   field,
				Label:   FieldLabel(field),
				Message: msg,
			})
		}
	}

	s.view.ShowFieldErrors(lines, fields)
	s.visible = true
}

// ShowServerError renders the generic unreachable-server banner. It is not
// attributed to any field.
func (s *ErrorSurface) ShowServerError() {
	s.view.ShowServerError(serverErrorMessage)
	s.visible = true
}

// Clear removes all displayed errors. Clearing an already-empty surface is a
// no-op.
func (s *ErrorSurface) Clear() {
	if !s.visible {
		return
	}
	s.view.ClearFieldErrors()
	s.visible = false
}
