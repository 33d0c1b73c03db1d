package form

import "github.com/wolfman30/clinic-booking-form/internal/clinicapi"

// Option is a selectable id/label pair for the statically rendered fields
// (specialties, insurance plans).
type Option struct {
	ID    string
	Label string
}

// DoctorOption is one entry of the doctor field after a successful fetch.
type DoctorOption struct {
	ID    string
	Label string // "nome — especialidade"
}

// DoctorPlaceholder enumerates the disabled states of the doctor field.
type DoctorPlaceholder int

const (
	// DoctorChoose is the neutral "pick a doctor" state.
	DoctorChoose DoctorPlaceholder = iota
	// DoctorLoading is shown while the doctor list fetch is in flight.
	DoctorLoading
	// DoctorNoneFound is shown when the specialty has no doctors.
	DoctorNoneFound
)

// SlotCell is one control of the slot grid, in catalog order.
type SlotCell struct {
	Label    string
	Enabled  bool
	Selected bool
}

// ErrorLine is one rendered validation message.
type ErrorLine struct {
	Field   string // wire field name, e.g. "medico"
	Label   string // localized label, e.g. "Médico"
	Message string
}

// DraftSummary feeds the confirmation preview shown once a slot is picked.
// An empty Insurance hides the insurance line.
type DraftSummary struct {
	Doctor    string
	Specialty string
	Date      string // dd/mm/yyyy
	Time      string
	Insurance string
}

// Grid placeholder messages, kept in the product's wording.
const (
	msgSelectDoctorAndDay = "Selecione o médico e o dia."
	msgSelectDate         = "Selecione uma data."
	msgLoadingSlots       = "Carregando horários..."
)

// View is everything the controller needs from a front end. Implementations
// must be cheap and non-blocking: calls happen while the controller holds its
// state lock. A call fully replaces the previous state of its region.
type View interface {
	// Cascade fields
	SetSpecialty(id string)
	ShowDoctorOptions(opts []DoctorOption)     // populate and enable
	ShowDoctorPlaceholder(p DoctorPlaceholder) // disable with placeholder
	SelectDoctor(id string)
	SetDateEnabled(enabled bool)
	SetDateValue(date string)
	SetDateMin(date string)

	// Slot grid
	ShowGridMessage(msg string)
	RenderGrid(cells []SlotCell)

	// Insurance
	SetInsuranceVisible(visible bool)
	SetInsurancePlan(id string)

	// Draft summary and submission affordance
	ShowDraftSummary(s DraftSummary)
	HideDraftSummary()
	SetSubmitEnabled(enabled bool)
	SetSubmitBusy(busy bool)

	// Error surface
	ShowFieldErrors(lines []ErrorLine, invalidFields []string)
	ClearFieldErrors()
	ShowServerError(msg string) // shared banner plus a brief attention cue

	// Success path
	ShowSuccess(c clinicapi.Confirmation)
	SetRedirectProgress(percent int)
	NavigateToListing()
}
