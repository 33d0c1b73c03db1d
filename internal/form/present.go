package form

import (
	"sync"
	"time"

	"github.com/wolfman30/clinic-booking-form/internal/clinicapi"
)

// RedirectStyle selects how the success view settles into navigation.
type RedirectStyle int

const (
	// RedirectAcknowledge waits for an explicit user acknowledgement.
	RedirectAcknowledge RedirectStyle = iota
	// RedirectCountdown runs an animated, fixed-duration progress bar and
	// navigates when it completes.
	RedirectCountdown
)

// Countdown defaults: 25 steps of 90ms, the 4%-per-tick bar of the product.
const (
	defaultCountdownDuration = 2250 * time.Millisecond
	defaultCountdownSteps    = 25
)

// RedirectPolicy configures the success path. Which style is active is a
// presentation choice; both navigate exactly once.
type RedirectPolicy struct {
	Style             RedirectStyle
	CountdownDuration time.Duration // total bar duration, defaulted when zero
	CountdownSteps    int           // progress granularity, defaulted when zero
}

// Presenter renders the confirmed booking and performs the single navigation
// away from the form.
type Presenter struct {
	view   View
	policy RedirectPolicy

	navigate sync.Once
	tick     func(d time.Duration) <-chan time.Time
}

// NewPresenter creates a presenter bound to a view.
func NewPresenter(view View, policy RedirectPolicy) *Presenter {
	if policy.CountdownDuration <= 0 {
		policy.CountdownDuration = defaultCountdownDuration
	}
	if policy.CountdownSteps <= 0 {
		policy.CountdownSteps = defaultCountdownSteps
	}
	return &Presenter{
		view:   view,
		policy: policy,
		tick: func(d time.Duration) <-chan time.Time {
			return time.After(d)
		},
	}
}

// Present renders the appointment summary and starts the configured redirect
// path. Under RedirectAcknowledge the navigation waits for Acknowledge.
func (p *Presenter) Present(c clinicapi.Confirmation) {
	p.view.ShowSuccess(c)

	if p.policy.Style == RedirectCountdown {
		go p.runCountdown()
	}
}

// Acknowledge is the explicit user confirmation. Safe to call under any
// policy; the navigation still happens at most once.
func (p *Presenter) Acknowledge() {
	p.doNavigate()
}

// runCountdown advances the progress bar on a fixed cadence. The duration is
// deterministic: steps times the per-step interval, never a guess at how long
// some other work takes.
func (p *Presenter) runCountdown() {
	interval := p.policy.CountdownDuration / time.Duration(p.policy.CountdownSteps)
	for step := 1; step <= p.policy.CountdownSteps; step++ {
		<-p.tick(interval)
		p.view.SetRedirectProgress(step * 100 / p.policy.CountdownSteps)
	}
	p.doNavigate()
}

func (p *Presenter) doNavigate() {
	p.navigate.Do(p.view.NavigateToListing)
}
