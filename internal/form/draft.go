// Package form implements the booking form controller: the cascading
// Specialty→Doctor→Date→Slot field dependencies, slot grid selection,
// submission and edit-mode hydration. The visual surface is behind the View
// interface so the same workflow drives any front end.
package form

// Draft is the in-progress booking state. It is owned by the Controller and
// mutated only through cascade and selection events.
//
// Invariants: Slot is non-empty only while Doctor and Date are both set;
// InsurancePlan is non-empty only while UsesInsurance is true.
type Draft struct {
	Specialty     string
	Doctor        string
	Date          string // YYYY-MM-DD
	Slot          string // catalog label, e.g. "09:30"
	UsesInsurance bool
	InsurancePlan string
	Notes         string
}

// DateTime returns the combined "YYYY-MM-DD HH:MM" value submitted to the
// server, or "" while either part is missing.
func (d Draft) DateTime() string {
	if d.Date == "" || d.Slot == "" {
		return ""
	}
	return d.Date + " " + d.Slot
}

// Submittable reports whether the draft has everything a submission needs.
func (d Draft) Submittable() bool {
	return d.Doctor != "" && d.Date != "" && d.Slot != ""
}

// resetFromSpecialty clears every field downstream of the specialty.
func (d *Draft) resetFromSpecialty() {
	d.Doctor = ""
	d.resetFromDoctor()
}

// resetFromDoctor clears every field downstream of the doctor.
func (d *Draft) resetFromDoctor() {
	d.Date = ""
	d.resetFromDate()
}

// resetFromDate clears the slot selection.
func (d *Draft) resetFromDate() {
	d.Slot = ""
}

// setInsurance flips the insurance flag, dropping the chosen plan when the
// flag goes off.
func (d *Draft) setInsurance(on bool) {
	d.UsesInsurance = on
	if !on {
		d.InsurancePlan = ""
	}
}
