package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/clinic-booking-form/internal/clinicapi"
)

func TestFieldLabel(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"medico", "Médico"},
		{"data", "Data"},
		{"hora", "Horário"},
		{"observacoes", "Observações"},
		{"convenio", "Convênio"},
		{"usa_convenio", "Convênio"},
		{"data_hora", "Data e Horário"},
		{"__all__", "Erro"},
		{"paciente", "paciente"}, // unmapped names pass through verbatim
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, FieldLabel(tt.field))
		})
	}
}

func TestErrorSurfaceShowOrdersFields(t *testing.T) {
	view := &fakeView{}
	s := NewErrorSurface(view)

	s.Show(clinicapi.FieldErrors{
		"medico": {"Este campo é obrigatório."},
		"hora":   {"Horário inválido.", "Escolha outro horário."},
	})

	lines := view.snapshot().errorLines
	require.Len(t, lines, 3)
	assert.Equal(t, ErrorLine{Field: "hora", Label: "Horário", Message: "Horário inválido."}, lines[0])
	assert.Equal(t, ErrorLine{Field: "hora", Label: "Horário", Message: "Escolha outro horário."}, lines[1])
	assert.Equal(t, ErrorLine{Field: "medico", Label: "Médico", Message: "Este campo é obrigatório."}, lines[2])
	assert.Equal(t, []string{"hora", "medico"}, view.snapshot().invalidFields)
}

func TestErrorSurfaceClearIdempotent(t *testing.T) {
	view := &fakeView{}
	s := NewErrorSurface(view)

	s.Clear()
	assert.Equal(t, 0, view.snapshot().clearCalls, "clearing an empty surface touches nothing")

	s.Show(clinicapi.FieldErrors{"medico": {"Este campo é obrigatório."}})
	s.Clear()
	s.Clear()
	assert.Equal(t, 1, view.snapshot().clearCalls)
	assert.Empty(t, view.snapshot().errorLines)
}

func TestErrorSurfaceServerError(t *testing.T) {
	view := &fakeView{}
	s := NewErrorSurface(view)

	s.ShowServerError()
	assert.Equal(t, "Erro ao conectar com o servidor.", view.snapshot().banner)

	s.Clear()
	assert.Empty(t, view.snapshot().banner)
}
