package sessions

import (
	"time"

	"readiness-backend/internal/intake"
	"readiness-backend/internal/wizard"
)

// SessionResponse is the outward-facing representation of a session.
type SessionResponse struct {
	SessionID  string       `json:"sessionId"`
	Step       int          `json:"step"`
	StepName   string       `json:"stepName"`
	Steps      []string     `json:"steps"`
	Intake     intake.State `json:"intake"`
	Submitting bool         `json:"submitting"`
	HasReport  bool         `json:"hasReport"`
	Scanning   ScanStatus   `json:"scanning"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// ScanStatus tells the client which upload forms are busy.
type ScanStatus struct {
	Certificates bool `json:"certificates"`
	Resume       bool `json:"resume"`
}

// EditResponse wraps a session after an add or remove. Changed is false
// when the form rejected the entry or the index was out of range.
type EditResponse struct {
	SessionResponse
	Changed bool `json:"changed"`
}

// MoveResponse wraps a session after a navigation request.
type MoveResponse struct {
	SessionResponse
	Moved bool `json:"moved"`
}

var stepNames = func() []string {
	out := make([]string, 0, int(wizard.LastStep)+1)
	for s := wizard.StepSkills; s <= wizard.LastStep; s++ {
		out = append(out, s.String())
	}
	return out
}()

func toResponse(sess *Session) SessionResponse {
	snap := sess.Wizard.Snapshot()
	return SessionResponse{
		SessionID:  sess.ID,
		Step:       int(snap.Step),
		StepName:   snap.Step.String(),
		Steps:      append([]string(nil), stepNames...),
		Intake:     snap.State,
		Submitting: snap.Submitting,
		HasReport:  snap.Report != nil,
		Scanning: ScanStatus{
			Certificates: sess.Certificates.Busy(),
			Resume:       sess.Resume.Busy(),
		},
		CreatedAt: sess.CreatedAt,
	}
}

type skillRequest struct {
	Name string `json:"name"`
}

type certificationRequest struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   int    `json:"year"`
}

// projectRequest takes the tech stack as the comma-separated form text.
type projectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	TechStack   string `json:"techStack"`
	GithubURL   string `json:"githubUrl"`
}

type internshipRequest struct {
	Company        string `json:"company"`
	Role           string `json:"role"`
	DurationMonths int    `json:"durationMonths"`
	Achievements   string `json:"achievements"`
	HasCertificate bool   `json:"hasCertificate"`
}

type resumeTextRequest struct {
	Text *string `json:"text" binding:"required"`
}

type jumpRequest struct {
	Step *int `json:"step" binding:"required"`
}
