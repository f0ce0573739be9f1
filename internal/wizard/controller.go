package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"readiness-backend/internal/intake"
	"readiness-backend/internal/scoring"
	"readiness-backend/internal/shared/metrics"
	"readiness-backend/internal/shared/telemetry"
)

// Scorer computes a report from a payload. *scoring.Client satisfies it.
type Scorer interface {
	Calculate(ctx context.Context, payload scoring.Payload) (scoring.Report, error)
}

// Controller owns the intake state and the step cursor for one assessment.
// It is safe for concurrent use.
type Controller struct {
	mu         sync.Mutex
	step       Step
	state      intake.State
	report     *scoring.Report
	submitting bool
	// generation changes on Reset so a submission started before a reset
	// cannot write into the new assessment.
	generation uint64
}

// New returns a controller at the first step with an empty intake.
func New() *Controller {
	return &Controller{}
}

// Snapshot is a read-only copy of the controller.
type Snapshot struct {
	Step       Step
	State      intake.State
	Report     *scoring.Report
	Submitting bool
}

// Snapshot returns the current state. The report pointer refers to a deep
// copy.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := Snapshot{
		Step:       c.step,
		State:      c.state,
		Submitting: c.submitting,
	}
	if c.report != nil {
		r := c.report.Clone()
		snap.Report = &r
	}
	return snap
}

// Step returns the cursor.
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// State returns the current intake.
func (c *Controller) State() intake.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Report returns a deep copy of the stored report, if any.
func (c *Controller) Report() (scoring.Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.report == nil {
		return scoring.Report{}, false
	}
	return c.report.Clone(), true
}

// Advance moves to the next step while not at the last one.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step >= LastStep {
		return false
	}
	c.step++
	return true
}

// Retreat moves to the previous step, stopping at the first.
func (c *Controller) Retreat() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step <= StepSkills {
		return false
	}
	c.step--
	return true
}

// Jump revisits step i. Steps past the cursor cannot be reached this way.
func (c *Controller) Jump(i Step) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < StepSkills || i > c.step {
		return false
	}
	c.step = i
	return true
}

func (c *Controller) ReplaceSkills(s intake.SkillSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Skills = s
}

func (c *Controller) ReplaceCertifications(l intake.List[intake.Certification]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Certifications = l
}

func (c *Controller) ReplaceProjects(l intake.List[intake.Project]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Projects = l
}

func (c *Controller) ReplaceInternships(l intake.List[intake.Internship]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Internships = l
}

func (c *Controller) ReplaceResumeText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ResumeText = text
}

func (c *Controller) ReplaceResumeDocument(doc intake.ResumeDocument) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ResumeDocument = doc
}

// Edit applies fn to the intake atomically. fn must not call back into the
// controller.
func (c *Controller) Edit(fn func(intake.State) intake.State) intake.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = fn(c.state)
	return c.state
}

// Generation identifies the current assessment. It changes on every Reset.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// EditIf applies fn like Edit, but only while gen is still the current
// generation. Work started before a Reset is dropped and EditIf returns false.
func (c *Controller) EditIf(gen uint64, fn func(intake.State) intake.State) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return false
	}
	c.state = fn(c.state)
	return true
}

// Reset discards everything and starts a new assessment.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = StepSkills
	c.state = intake.State{}
	c.report = nil
	c.generation++
}

// Submit sends the intake to the scorer. It is only allowed from the resume
// step and only one submission may run at a time. On success the report
// replaces any previous one and the cursor moves to Results. On failure the
// cursor and intake are left as they were.
func (c *Controller) Submit(ctx context.Context, scorer Scorer) (scoring.Report, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return scoring.Report{}, ErrSubmissionInFlight
	}
	if c.step != StepResume {
		c.mu.Unlock()
		return scoring.Report{}, ErrNotAtResumeStep
	}
	c.submitting = true
	gen := c.generation
	payload := scoring.BuildPayload(c.state)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	metrics.IncSubmissionStarted()
	telemetry.Info("wizard.submit.started", map[string]any{
		"skills":      len(payload.Skills),
		"certs":       len(payload.Certifications),
		"projects":    len(payload.Projects),
		"internships": len(payload.Internships),
	})
	start := time.Now()
	report, err := scorer.Calculate(ctx, payload)
	metrics.ObserveSubmissionDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncSubmissionFailed()
		telemetry.Error("wizard.submit.failed", map[string]any{
			"err":          err.Error(),
			"skills":       len(payload.Skills),
			"certs":        len(payload.Certifications),
			"projects":     len(payload.Projects),
			"internships":  len(payload.Internships),
			"resume_chars": len(payload.ResumeText),
		})
		return scoring.Report{}, fmt.Errorf("submit assessment: %w", err)
	}
	metrics.IncSubmissionCompleted()

	c.mu.Lock()
	if c.generation == gen {
		stored := report
		c.report = &stored
		c.step = StepResults
	}
	c.mu.Unlock()

	telemetry.Info("wizard.submit.completed", map[string]any{
		"final_score": report.Final.FinalScore,
		"grade":       report.Final.OverallGrade.Grade,
	})
	return report, nil
}
