package sessions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"readiness-backend/internal/extract"
	"readiness-backend/internal/intake"
	"readiness-backend/internal/results"
	"readiness-backend/internal/scoring"
	"readiness-backend/internal/shared/telemetry"
	"readiness-backend/internal/uploads"
	"readiness-backend/internal/wizard"
)

// Scoring is the part of the scoring service a session needs.
// *scoring.Client satisfies it.
type Scoring interface {
	wizard.Scorer
	uploads.CertificateScanner
	uploads.ResumeScanner
	ScoreResumeText(ctx context.Context, text string) (scoring.ResumeScan, error)
	Preview(ctx context.Context, component scoring.Component, payload scoring.Payload) (scoring.Preview, error)
}

// Service orchestrates wizard sessions.
type Service struct {
	Repo      Repo
	Scoring   Scoring
	Extractor extract.Extractor
	Renderer  *results.Renderer

	// SubmitExtractedText makes accepted resume uploads submit the file's
	// text instead of the upload marker.
	SubmitExtractedText bool

	now func() time.Time
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Create starts a new session at the first step. Expired sessions are
// swept first.
func (s *Service) Create(ctx context.Context) (*Session, error) {
	now := s.clock()
	s.Repo.Sweep(ctx, now)

	sess := &Session{
		ID:           uuid.NewString(),
		CreatedAt:    now.UTC(),
		Wizard:       wizard.New(),
		Certificates: uploads.NewCertificateFlow(s.Scoring),
		Resume:       uploads.NewResumeFlow(s.Scoring, s.Extractor, s.SubmitExtractedText),
	}
	if err := s.Repo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Get returns a live session.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	return s.Repo.Get(ctx, id)
}

// Delete discards a session.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, strings.TrimSpace(id))
}

// Reset clears a session's intake, report and cursor.
func (s *Service) Reset(ctx context.Context, id string) (*Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.Wizard.Reset()
	return sess, nil
}

// Navigate applies a cursor move and reports whether it moved.
func (s *Service) Navigate(ctx context.Context, id string, move func(*wizard.Controller) bool) (*Session, bool, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return sess, move(sess.Wizard), nil
}

// Edit applies fn to a session's intake atomically. The returned bool is
// whatever fn reported, typically whether the intake changed.
func (s *Service) Edit(ctx context.Context, id string, fn func(intake.State) (intake.State, bool)) (*Session, bool, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	var changed bool
	sess.Wizard.Edit(func(st intake.State) intake.State {
		next, ok := fn(st)
		changed = ok
		return next
	})
	return sess, changed, nil
}

func (s *Service) AddSkill(ctx context.Context, id, name string) (*Session, bool, error) {
	return s.Edit(ctx, id, func(st intake.State) (intake.State, bool) {
		next, ok := st.Skills.Add(name)
		st.Skills = next
		return st, ok
	})
}

func (s *Service) RemoveSkill(ctx context.Context, id, name string) (*Session, bool, error) {
	return s.Edit(ctx, id, func(st intake.State) (intake.State, bool) {
		next, ok := st.Skills.Remove(name)
		st.Skills = next
		return st, ok
	})
}

func (s *Service) ClearSkills(ctx context.Context, id string) (*Session, bool, error) {
	return s.Edit(ctx, id, func(st intake.State) (intake.State, bool) {
		changed := st.Skills.Len() > 0
		st.Skills = st.Skills.Clear()
		return st, changed
	})
}

func (s *Service) AddCertification(ctx context.Context, id string, c intake.Certification) (*Session, bool, error) {
	return s.Edit(ctx, id, func(st intake.State) (intake.State, bool) {
		next, ok := st.Certifications.Add(c)
		st.Certifications = next
		return st, ok
	})
}

func (s *Service) RemoveCertification(ctx context.Context, id string, index int) (*Session, bool, error) {
	return s.Edit(ctx, id, func(st intake.State) (intake.State, bool) {
		next, ok := st.Certifications.RemoveAt(index)
		st.Certifications = next
		return st, ok
	})
}

func (s *Service) AddProject(ctx context.Context, id string, p intake.Project) (*Session, bool, error) {
	return s.Edit(ctx, id, func(st intake.State) (intake.State, bool) {
		next, ok := st.Projects.Add(p)
		st.Projects = next
		return st, ok
	})
}

func (s *Service) RemoveProject(ctx context.Context, id string, index int) (*Session, bool, error) {
	return s.Edit(ctx, id, func(st intake.State) (intake.State, bool) {
		next, ok := st.Projects.RemoveAt(index)
		st.Projects = next
		return st, ok
	})
}

func (s *Service) AddInternship(ctx context.Context, id string, in intake.Internship) (*Session, bool, error) {
	return s.Edit(ctx, id, func(st intake.State) (intake.State, bool) {
		next, ok := st.Internships.Add(in)
		st.Internships = next
		return st, ok
	})
}

func (s *Service) RemoveInternship(ctx context.Context, id string, index int) (*Session, bool, error) {
	return s.Edit(ctx, id, func(st intake.State) (intake.State, bool) {
		next, ok := st.Internships.RemoveAt(index)
		st.Internships = next
		return st, ok
	})
}

// SetResumeText replaces the pasted resume text verbatim.
func (s *Service) SetResumeText(ctx context.Context, id, text string) (*Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.Wizard.ReplaceResumeText(text)
	return sess, nil
}

// ScanCertificates runs the certificate upload flow. Identified
// certificates are appended to the session one by one as their scans return.
// Scans run to completion even if the caller goes away, and results that
// arrive after a Reset are dropped.
func (s *Service) ScanCertificates(ctx context.Context, id string, files []uploads.File) (*Session, []uploads.CertificateOutcome, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	gen := sess.Wizard.Generation()
	outcomes := sess.Certificates.Process(context.WithoutCancel(ctx), files, func(c intake.Certification) {
		applied := sess.Wizard.EditIf(gen, func(st intake.State) intake.State {
			st.Certifications = st.Certifications.Append(c)
			return st
		})
		if !applied {
			telemetry.Warn("sessions.scan.stale", map[string]any{
				"session_id": sess.ID,
				"kind":       "certificate",
			})
		}
	})
	if uploads.Refused(outcomes) {
		return nil, nil, uploads.ErrScanInFlight
	}
	return sess, outcomes, nil
}

// ScanResume runs the resume upload flow. Only an accepted outcome changes
// the intake, and only if the session was not reset meanwhile.
func (s *Service) ScanResume(ctx context.Context, id string, file uploads.File) (*Session, uploads.ResumeOutcome, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, uploads.ResumeOutcome{}, err
	}
	gen := sess.Wizard.Generation()
	outcome := sess.Resume.Process(context.WithoutCancel(ctx), file)
	switch outcome.State {
	case uploads.StateBusy:
		return nil, uploads.ResumeOutcome{}, uploads.ErrScanInFlight
	case uploads.StateAccepted:
		applied := sess.Wizard.EditIf(gen, func(st intake.State) intake.State {
			st.ResumeText = outcome.ResumeText
			st.ResumeDocument = outcome.Document
			return st
		})
		if !applied {
			telemetry.Warn("sessions.scan.stale", map[string]any{
				"session_id": sess.ID,
				"kind":       "resume",
				"file_name":  outcome.FileName,
			})
		}
	}
	return sess, outcome, nil
}

// ScoreResumeText previews the ATS score of the session's current resume
// text without submitting the assessment.
func (s *Service) ScoreResumeText(ctx context.Context, id string) (scoring.ResumeScan, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return scoring.ResumeScan{}, err
	}
	text := sess.Wizard.State().ResumeText
	if strings.TrimSpace(text) == "" {
		return scoring.ResumeScan{}, fmt.Errorf("%w: resume text is empty", ErrInvalidInput)
	}
	scan, err := s.Scoring.ScoreResumeText(context.WithoutCancel(ctx), text)
	if err != nil {
		return scoring.ResumeScan{}, fmt.Errorf("score resume text: %w", err)
	}
	return scan, nil
}

// PreviewComponent scores one component of the session's current intake
// without submitting it. Nothing is stored.
func (s *Service) PreviewComponent(ctx context.Context, id string, component scoring.Component) (scoring.Preview, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return scoring.Preview{}, err
	}
	payload := scoring.BuildPayload(sess.Wizard.State())
	if component == scoring.Resume && strings.TrimSpace(payload.ResumeText) == "" {
		return scoring.Preview{}, fmt.Errorf("%w: resume text is empty", ErrInvalidInput)
	}
	preview, err := s.Scoring.Preview(context.WithoutCancel(ctx), component, payload)
	if err != nil {
		return scoring.Preview{}, fmt.Errorf("preview %s: %w", component, err)
	}
	return preview, nil
}

// Submit sends the session's intake for scoring. The request is not tied to
// the caller's lifetime; only the scoring client's timeout bounds it.
func (s *Service) Submit(ctx context.Context, id string) (*Session, scoring.Report, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, scoring.Report{}, err
	}
	report, err := sess.Wizard.Submit(context.WithoutCancel(ctx), s.Scoring)
	return sess, report, err
}

// Results renders the stored report, or the placeholder when there is none.
func (s *Service) Results(ctx context.Context, id string) (results.View, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return results.View{}, err
	}
	report, ok := sess.Wizard.Report()
	if !ok {
		return s.Renderer.Render(nil), nil
	}
	return s.Renderer.Render(&report), nil
}
