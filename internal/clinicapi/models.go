package clinicapi

// Doctor is one entry of the doctors-by-specialty listing.
type Doctor struct {
	ID            int64  `json:"id"`
	Nome          string `json:"nome"`
	Especialidade string `json:"especialidade"`
}

// FieldErrors maps a form field name to the server's validation messages for
// it. Message order within a field is meaningful and preserved.
type FieldErrors map[string][]string

// Confirmation carries the display fields of a booked appointment as returned
// by the write endpoint.
type Confirmation struct {
	ID            int64  `json:"id"`
	Paciente      string `json:"paciente"`
	Medico        string `json:"medico"`
	Especialidade string `json:"especialidade,omitempty"`
	Data          string `json:"data"`
	Hora          string `json:"hora"`
	Convenio      string `json:"convenio,omitempty"`
}

// Outcome is the classified result of a booking submission. Exactly one of
// Confirmation (OK) or Errors (!OK) is populated.
type Outcome struct {
	OK           bool
	Confirmation *Confirmation
	Errors       FieldErrors
}

type doctorsResponse struct {
	Medicos []Doctor `json:"medicos"`
}

type slotsResponse struct {
	Horarios []string `json:"horarios"`
}

type submitResponse struct {
	OK       bool          `json:"ok"`
	Consulta *Confirmation `json:"consulta"`
	Errors   FieldErrors   `json:"errors"`
}
