package form

import (
	"context"
	"fmt"

	"github.com/wolfman30/clinic-booking-form/internal/schedule"
)

// Record is a previously saved appointment used to prefill the form in edit
// mode. DoctorName is optional: it labels the stored doctor when the fresh
// doctor list no longer carries them.
type Record struct {
	Specialty     string
	Doctor        string
	DoctorName    string
	Date          string // YYYY-MM-DD
	Slot          string
	UsesInsurance bool
	InsurancePlan string
	Notes         string
}

// Hydrate replays the cascade from a saved record, non-interactively. Each
// step awaits the previous network response before touching dependent fields;
// there are no timers. The stored slot is rendered selected and enabled even
// when the fresh availability no longer reports it free, and the stored date
// is applied below the session floor; both belong to the appointment being
// edited.
//
// On a gateway failure the server banner is shown and the error returned; the
// fields already populated stay as they are.
func (c *Controller) Hydrate(ctx context.Context, rec Record) error {
	c.mu.Lock()
	c.errs.Clear()
	c.invalidateDoctorsLocked()
	c.invalidateSlotsLocked()
	c.draft = Draft{Specialty: rec.Specialty, Notes: rec.Notes}
	c.view.SetSpecialty(rec.Specialty)
	c.view.ShowDoctorPlaceholder(DoctorLoading)
	c.mu.Unlock()

	doctors, err := c.gateway.FetchDoctors(ctx, rec.Specialty)
	if err != nil {
		c.mu.Lock()
		c.errs.ShowServerError()
		c.mu.Unlock()
		return fmt.Errorf("form: hydration doctor fetch: %w", err)
	}

	c.mu.Lock()
	opts := doctorOptions(doctors)
	if !hasOption(opts, rec.Doctor) {
		// The record must stay representable even when the doctor no longer
		// offers this specialty.
		label := rec.DoctorName
		if label == "" {
			label = rec.Doctor
		}
		opts = append(opts, DoctorOption{ID: rec.Doctor, Label: label})
	}
	c.doctorOptions = opts
	c.view.ShowDoctorOptions(opts)
	c.view.SelectDoctor(rec.Doctor)
	c.draft.Doctor = rec.Doctor

	c.view.SetDateEnabled(true)
	c.view.SetDateValue(rec.Date)
	c.draft.Date = rec.Date

	if rec.UsesInsurance {
		c.draft.UsesInsurance = true
		c.draft.InsurancePlan = rec.InsurancePlan
		c.view.SetInsuranceVisible(true)
		c.view.SetInsurancePlan(rec.InsurancePlan)
	}
	c.view.ShowGridMessage(msgLoadingSlots)
	c.mu.Unlock()

	available, err := c.gateway.FetchAvailableSlots(ctx, rec.Doctor, rec.Date)
	if err != nil {
		c.mu.Lock()
		c.errs.ShowServerError()
		c.mu.Unlock()
		return fmt.Errorf("form: hydration slot fetch: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.available = available
	c.draft.Slot = rec.Slot
	c.view.RenderGrid(BuildGrid(schedule.Catalog(), available, rec.Slot))

	if rec.Slot != "" {
		c.view.ShowDraftSummary(c.draftSummaryLocked())
		c.view.SetSubmitEnabled(true)
	}

	c.log.Info("form hydrated from record",
		"specialty_id", rec.Specialty,
		"doctor_id", rec.Doctor,
		"date", rec.Date,
		"slot", rec.Slot,
	)
	return nil
}

func hasOption(opts []DoctorOption, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}
