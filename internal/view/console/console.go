// Package console renders the booking form on a terminal. It is the plain
// front end used by the demo command; anything that drives the form package
// through another surface implements form.View the same way.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/wolfman30/clinic-booking-form/internal/clinicapi"
	"github.com/wolfman30/clinic-booking-form/internal/form"
)

// View prints each state change as a short line. All methods are safe for
// concurrent use; fetch completions arrive on controller goroutines.
type View struct {
	mu         sync.Mutex
	out        io.Writer
	listingURL string

	doctorOptions []form.DoctorOption

	done chan struct{}
	once sync.Once
}

// New creates a console view writing to out. Done is closed when the form
// navigates to listingURL.
func New(out io.Writer, listingURL string) *View {
	return &View{out: out, listingURL: listingURL, done: make(chan struct{})}
}

// Done is closed after the single navigation away from the form.
func (v *View) Done() <-chan struct{} { return v.done }

// DoctorOptions returns the currently listed doctors.
func (v *View) DoctorOptions() []form.DoctorOption {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]form.DoctorOption(nil), v.doctorOptions...)
}

func (v *View) printf(format string, args ...any) {
	fmt.Fprintf(v.out, format+"\n", args...)
}

func (v *View) SetSpecialty(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("especialidade: %s", id)
}

func (v *View) ShowDoctorOptions(opts []form.DoctorOption) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.doctorOptions = opts
	v.printf("médicos:")
	for _, o := range opts {
		v.printf("  [%s] %s", o.ID, o.Label)
	}
}

func (v *View) ShowDoctorPlaceholder(p form.DoctorPlaceholder) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.doctorOptions = nil
	switch p {
	case form.DoctorLoading:
		v.printf("médico: Carregando médicos...")
	case form.DoctorNoneFound:
		v.printf("médico: Nenhum médico encontrado")
	default:
		v.printf("médico: Selecione o médico")
	}
}

func (v *View) SelectDoctor(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("médico selecionado: %s", id)
}

func (v *View) SetDateEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !enabled {
		v.printf("data: desabilitada")
	}
}

func (v *View) SetDateValue(date string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if date != "" {
		v.printf("data: %s", date)
	}
}

func (v *View) SetDateMin(date string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("data mínima: %s", date)
}

func (v *View) ShowGridMessage(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("horários: %s", msg)
}

func (v *View) RenderGrid(cells []form.SlotCell) {
	v.mu.Lock()
	defer v.mu.Unlock()
	var b strings.Builder
	for i, c := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		switch {
		case c.Selected:
			b.WriteString("[" + c.Label + "]")
		case c.Enabled:
			b.WriteString(" " + c.Label + " ")
		default:
			b.WriteString(" --:-- ")
		}
	}
	v.printf("horários: %s", b.String())
}

func (v *View) SetInsuranceVisible(visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if visible {
		v.printf("convênio: informar plano")
	}
}

func (v *View) SetInsurancePlan(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if id != "" {
		v.printf("convênio: plano %s", id)
	}
}

func (v *View) ShowDraftSummary(s form.DraftSummary) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("resumo: %s | %s | %s às %s", s.Doctor, s.Specialty, s.Date, s.Time)
	if s.Insurance != "" {
		v.printf("resumo: convênio %s", s.Insurance)
	}
}

func (v *View) HideDraftSummary() {
	v.mu.Lock()
	defer v.mu.Unlock()
}

func (v *View) SetSubmitEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if enabled {
		v.printf("confirmar: disponível")
	}
}

func (v *View) SetSubmitBusy(busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if busy {
		v.printf("confirmar: enviando...")
	}
}

func (v *View) ShowFieldErrors(lines []form.ErrorLine, invalidFields []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, l := range lines {
		v.printf("erro: %s: %s", l.Label, l.Message)
	}
}

func (v *View) ClearFieldErrors() {
	v.mu.Lock()
	defer v.mu.Unlock()
}

func (v *View) ShowServerError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("erro: %s", msg)
}

func (v *View) ShowSuccess(c clinicapi.Confirmation) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("consulta agendada: #%d %s com %s em %s às %s", c.ID, c.Paciente, c.Medico, c.Data, c.Hora)
	if c.Convenio != "" {
		v.printf("consulta agendada: convênio %s", c.Convenio)
	}
}

func (v *View) SetRedirectProgress(percent int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if percent%20 == 0 || percent == 100 {
		v.printf("redirecionando: %d%%", percent)
	}
}

func (v *View) NavigateToListing() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("abrindo %s", v.listingURL)
	v.once.Do(func() { close(v.done) })
}
