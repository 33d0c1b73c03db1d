package form

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/wolfman30/clinic-booking-form/internal/clinicapi"
	"github.com/wolfman30/clinic-booking-form/internal/schedule"
	"github.com/wolfman30/clinic-booking-form/pkg/logging"
)

// AvailabilityGateway wraps the two read endpoints of the clinic server.
type AvailabilityGateway interface {
	FetchDoctors(ctx context.Context, specialtyID string) ([]clinicapi.Doctor, error)
	FetchAvailableSlots(ctx context.Context, doctorID, date string) (map[string]bool, error)
}

// Params configures a Controller.
type Params struct {
	Gateway   AvailabilityGateway
	Submitter BookingSubmitter
	View      View
	Logger    *logging.Logger

	// Specialties and InsurancePlans are the statically rendered option
	// lists; the controller only needs them for summary labels.
	Specialties    []Option
	InsurancePlans []Option

	Redirect RedirectPolicy
	Metrics  *Metrics         // optional
	Now      func() time.Time // optional, defaults to time.Now
}

// Controller owns the booking draft and the Specialty→Doctor→Date→Slot
// dependency chain. Every upstream change resets what is downstream of it
// before anything else happens, so stale options are never shown while a
// fetch is in flight.
//
// Fetches for the dependent fields carry a monotonically increasing token;
// a response is applied only when its token is still the latest issued for
// that field, and issuing a new request cancels the previous one.
type Controller struct {
	mu        sync.Mutex
	gateway   AvailabilityGateway
	submitter BookingSubmitter
	view      View
	errs      *ErrorSurface
	presenter *Presenter
	log       *logging.Logger
	metrics   *Metrics

	specialties    []Option
	insurancePlans []Option

	draft   Draft
	minDate string // session lower bound for interactive date picks

	doctorOptions []DoctorOption
	available     map[string]bool

	doctorSeq     uint64
	slotSeq       uint64
	cancelDoctors context.CancelFunc
	cancelSlots   context.CancelFunc

	submitting bool
	booked     bool
}

// New creates a Controller. The view is untouched until Start.
func New(p Params) (*Controller, error) {
	if p.Gateway == nil {
		return nil, fmt.Errorf("form: Gateway is required")
	}
	if p.Submitter == nil {
		return nil, fmt.Errorf("form: Submitter is required")
	}
	if p.View == nil {
		return nil, fmt.Errorf("form: View is required")
	}
	if p.Logger == nil {
		p.Logger = logging.Default()
	}
	now := p.Now
	if now == nil {
		now = time.Now
	}

	return &Controller{
		gateway:        p.Gateway,
		submitter:      p.Submitter,
		view:           p.View,
		errs:           NewErrorSurface(p.View),
		presenter:      NewPresenter(p.View, p.Redirect),
		log:            p.Logger,
		metrics:        p.Metrics,
		specialties:    p.Specialties,
		insurancePlans: p.InsurancePlans,
		minDate:        now().Format("2006-01-02"),
		available:      map[string]bool{},
	}, nil
}

// Start puts the view into its load-time state: empty draft, doctor and date
// disabled, grid placeholder, submission off, date floor pinned to today.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.view.SetDateMin(c.minDate)
	c.view.ShowDoctorPlaceholder(DoctorChoose)
	c.view.SetDateEnabled(false)
	c.view.SetDateValue("")
	c.view.ShowGridMessage(msgSelectDoctorAndDay)
	c.view.SetInsuranceVisible(false)
	c.view.HideDraftSummary()
	c.view.SetSubmitEnabled(false)
}

// SpecialtyChanged handles a specialty (re)selection. Everything downstream
// resets synchronously; with a non-empty id a doctor fetch is then issued.
func (c *Controller) SpecialtyChanged(ctx context.Context, specialtyID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errs.Clear()
	c.draft.Specialty = specialtyID
	c.draft.resetFromSpecialty()
	c.invalidateDoctorsLocked()
	c.invalidateSlotsLocked()

	c.doctorOptions = nil
	c.available = map[string]bool{}
	c.view.SetDateEnabled(false)
	c.view.SetDateValue("")
	c.view.ShowGridMessage(msgSelectDoctorAndDay)
	c.view.HideDraftSummary()
	c.view.SetSubmitEnabled(false)

	if specialtyID == "" {
		c.view.ShowDoctorPlaceholder(DoctorChoose)
		return
	}

	c.view.ShowDoctorPlaceholder(DoctorLoading)

	seq := c.doctorSeq
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancelDoctors = cancel
	go c.fetchDoctors(fetchCtx, seq, specialtyID)
}

// DoctorChanged handles a doctor (re)selection. The date only opens while a
// doctor id is present; the slot grid always resets.
func (c *Controller) DoctorChanged(ctx context.Context, doctorID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errs.Clear()
	c.draft.Doctor = doctorID
	c.draft.resetFromDoctor()
	c.invalidateSlotsLocked()

	c.available = map[string]bool{}
	c.view.SetDateValue("")
	c.view.HideDraftSummary()
	c.view.SetSubmitEnabled(false)

	if doctorID == "" {
		c.view.SetDateEnabled(false)
		c.view.ShowGridMessage(msgSelectDoctorAndDay)
		return
	}

	c.view.SetDateEnabled(true)
	c.view.ShowGridMessage(msgSelectDate)
}

// DateChanged handles a date (re)selection and, when both doctor and date are
// present, issues the slot availability fetch. Dates below the session floor
// are treated as missing.
func (c *Controller) DateChanged(ctx context.Context, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errs.Clear()
	c.invalidateSlotsLocked()

	if date != "" && date < c.minDate {
		c.log.Warn("date below session floor ignored", "date", date, "min", c.minDate)
		date = ""
	}
	c.draft.Date = date
	c.draft.resetFromDate()

	c.available = map[string]bool{}
	c.view.HideDraftSummary()
	c.view.SetSubmitEnabled(false)

	if c.draft.Doctor == "" || c.draft.Date == "" {
		c.view.ShowGridMessage(msgSelectDoctorAndDay)
		return
	}

	c.view.ShowGridMessage(msgLoadingSlots)

	seq := c.slotSeq
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancelSlots = cancel
	go c.fetchSlots(fetchCtx, seq, c.draft.Doctor, c.draft.Date)
}

// SlotPicked handles a click on a grid cell. Picking deselects any previous
// cell, fills the draft's slot and combined date-time, and opens submission.
func (c *Controller) SlotPicked(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.draft.Doctor == "" || c.draft.Date == "" {
		return
	}
	// The draft's own slot stays pickable even when the server holds it:
	// during edit it belongs to the appointment being edited.
	if !c.available[label] && label != c.draft.Slot {
		return
	}

	c.errs.Clear()
	c.draft.Slot = label
	c.view.RenderGrid(BuildGrid(schedule.Catalog(), c.available, label))
	c.view.ShowDraftSummary(c.draftSummaryLocked())
	c.view.SetSubmitEnabled(true)
}

// InsuranceToggled handles the insurance checkbox. Turning it off clears the
// chosen plan.
func (c *Controller) InsuranceToggled(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errs.Clear()
	c.draft.setInsurance(on)
	c.view.SetInsuranceVisible(on)
	if !on {
		c.view.SetInsurancePlan("")
	}
	if c.draft.Slot != "" {
		c.view.ShowDraftSummary(c.draftSummaryLocked())
	}
}

// InsurancePlanChanged records the chosen plan. Ignored while the insurance
// flag is off.
func (c *Controller) InsurancePlanChanged(planID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errs.Clear()
	if !c.draft.UsesInsurance {
		return
	}
	c.draft.InsurancePlan = planID
	if c.draft.Slot != "" {
		c.view.ShowDraftSummary(c.draftSummaryLocked())
	}
}

// NotesChanged records the free-form notes.
func (c *Controller) NotesChanged(notes string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errs.Clear()
	c.draft.Notes = notes
}

// Submit serializes the draft and posts it. A second submission cannot start
// while one is outstanding; a rejection leaves the draft intact.
func (c *Controller) Submit(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.submitting || c.booked || !c.draft.Submittable() {
		return
	}

	c.errs.Clear()
	c.submitting = true
	c.view.SetSubmitEnabled(false)
	c.view.SetSubmitBusy(true)

	go c.doSubmit(ctx, encodePayload(c.draft))
}

// AcknowledgeSuccess is the explicit confirmation on the success view.
func (c *Controller) AcknowledgeSuccess() {
	c.presenter.Acknowledge()
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// invalidateDoctorsLocked supersedes any in-flight doctor fetch.
func (c *Controller) invalidateDoctorsLocked() {
	c.doctorSeq++
	if c.cancelDoctors != nil {
		c.cancelDoctors()
		c.cancelDoctors = nil
	}
}

// invalidateSlotsLocked supersedes any in-flight slot fetch.
func (c *Controller) invalidateSlotsLocked() {
	c.slotSeq++
	if c.cancelSlots != nil {
		c.cancelSlots()
		c.cancelSlots = nil
	}
}

func (c *Controller) fetchDoctors(ctx context.Context, seq uint64, specialtyID string) {
	doctors, err := c.gateway.FetchDoctors(ctx, specialtyID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.doctorSeq {
		c.metrics.ObserveStaleDrop("doctors")
		c.log.Debug("stale doctor list dropped", "specialty_id", specialtyID, "seq", seq)
		return
	}
	c.cancelDoctors = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.metrics.ObserveFetch("doctors", "error")
		c.log.Error("doctor list fetch failed", "specialty_id", specialtyID, "error", err)
		c.view.ShowDoctorPlaceholder(DoctorChoose)
		c.errs.ShowServerError()
		return
	}
	c.metrics.ObserveFetch("doctors", "ok")

	if len(doctors) == 0 {
		c.view.ShowDoctorPlaceholder(DoctorNoneFound)
		return
	}

	c.doctorOptions = doctorOptions(doctors)
	c.view.ShowDoctorOptions(c.doctorOptions)
}

func (c *Controller) fetchSlots(ctx context.Context, seq uint64, doctorID, date string) {
	available, err := c.gateway.FetchAvailableSlots(ctx, doctorID, date)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.slotSeq {
		c.metrics.ObserveStaleDrop("slots")
		c.log.Debug("stale slot list dropped", "doctor_id", doctorID, "date", date, "seq", seq)
		return
	}
	c.cancelSlots = nil

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.metrics.ObserveFetch("slots", "error")
		c.log.Error("slot list fetch failed", "doctor_id", doctorID, "date", date, "error", err)
		// Doctor and day are still selected; re-picking the date retries.
		c.view.ShowGridMessage(msgSelectDate)
		c.errs.ShowServerError()
		return
	}
	c.metrics.ObserveFetch("slots", "ok")

	c.available = available
	c.view.RenderGrid(BuildGrid(schedule.Catalog(), available, c.draft.Slot))
}

func (c *Controller) doSubmit(ctx context.Context, fields url.Values) {
	outcome, err := c.submitter.Submit(ctx, fields)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.submitting = false
	c.view.SetSubmitBusy(false)

	if err != nil {
		c.metrics.ObserveSubmission("unavailable")
		c.log.Error("submission failed", "error", err)
		c.errs.ShowServerError()
		c.view.SetSubmitEnabled(true)
		return
	}

	if !outcome.OK {
		c.metrics.ObserveSubmission("rejected")
		c.log.Info("submission rejected", "fields", len(outcome.Errors))
		c.errs.Show(outcome.Errors)
		c.view.SetSubmitEnabled(true)
		return
	}

	c.metrics.ObserveSubmission("success")
	c.log.Info("booking confirmed",
		"appointment_id", outcome.Confirmation.ID,
		"data", outcome.Confirmation.Data,
		"hora", outcome.Confirmation.Hora,
	)
	c.booked = true
	c.presenter.Present(*outcome.Confirmation)
}

// draftSummaryLocked assembles the preview box contents from the draft.
func (c *Controller) draftSummaryLocked() DraftSummary {
	s := DraftSummary{
		Doctor:    optionLabel(toOptions(c.doctorOptions), c.draft.Doctor),
		Specialty: optionLabel(c.specialties, c.draft.Specialty),
		Date:      formatDateBR(c.draft.Date),
		Time:      c.draft.Slot,
	}
	if c.draft.UsesInsurance && c.draft.InsurancePlan != "" {
		s.Insurance = optionLabel(c.insurancePlans, c.draft.InsurancePlan)
	}
	return s
}

func doctorOptions(doctors []clinicapi.Doctor) []DoctorOption {
	opts := make([]DoctorOption, 0, len(doctors))
	for _, d := range doctors {
		opts = append(opts, DoctorOption{
			ID:    strconv.FormatInt(d.ID, 10),
			Label: d.Nome + " — " + d.Especialidade,
		})
	}
	return opts
}

func toOptions(opts []DoctorOption) []Option {
	out := make([]Option, 0, len(opts))
	for _, o := range opts {
		out = append(out, Option{ID: o.ID, Label: o.Label})
	}
	return out
}

func optionLabel(opts []Option, id string) string {
	for _, o := range opts {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}

// formatDateBR renders an ISO date as dd/mm/yyyy for display.
func formatDateBR(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}
