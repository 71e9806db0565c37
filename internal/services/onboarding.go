// internal/services/onboarding.go
package services

import (
	"sync"
	"time"

	"github.com/javajoker/marketflow-backend/internal/models"
)

const (
	OnboardingStepInterval  = 700 * time.Millisecond
	OnboardingRedirectDelay = 500 * time.Millisecond
	OnboardingRedirectPath  = "/seller/dashboard"
)

// Onboarding simulates connecting a payment account. No external service is
// contacted; progress is derived from the time since Connect.
type Onboarding struct {
	mu        sync.Mutex
	steps     []string
	startedAt time.Time
	now       func() time.Time
}

func NewOnboarding(steps []string) *Onboarding {
	return &Onboarding{steps: steps, now: time.Now}
}

// Connect starts the simulation. Calling it again while it runs keeps the
// original start time.
func (o *Onboarding) Connect() models.OnboardingProgress {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.now()
	if o.startedAt.IsZero() {
		o.startedAt = now
	}
	return OnboardingProgressAt(o.steps, o.startedAt, now)
}

func (o *Onboarding) Progress() models.OnboardingProgress {
	o.mu.Lock()
	defer o.mu.Unlock()
	return OnboardingProgressAt(o.steps, o.startedAt, o.now())
}

// OnboardingProgressAt computes the progress at now for a run started at
// startedAt. A zero startedAt means the run has not started.
func OnboardingProgressAt(steps []string, startedAt, now time.Time) models.OnboardingProgress {
	progress := models.OnboardingProgress{Steps: steps}
	if startedAt.IsZero() {
		return progress
	}

	elapsed := now.Sub(startedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	step := int(elapsed / OnboardingStepInterval)
	if step > len(steps) {
		step = len(steps)
	}

	progress.Connecting = true
	progress.Step = step

	finishedAt := time.Duration(len(steps))*OnboardingStepInterval + OnboardingRedirectDelay
	if elapsed >= finishedAt {
		progress.Connecting = false
		progress.Completed = true
		progress.RedirectTo = OnboardingRedirectPath
	}
	return progress
}
