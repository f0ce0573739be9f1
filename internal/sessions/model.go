package sessions

import (
	"sync/atomic"
	"time"

	"readiness-backend/internal/uploads"
	"readiness-backend/internal/wizard"
)

// Session is one candidate's in-progress assessment. It lives only in
// memory and is discarded when it expires or is deleted.
type Session struct {
	ID           string
	CreatedAt    time.Time
	Wizard       *wizard.Controller
	Certificates *uploads.CertificateFlow
	Resume       *uploads.ResumeFlow

	lastSeen atomic.Int64
}

// Touch records activity at now.
func (s *Session) Touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen returns the time of the last recorded activity.
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load()).UTC()
}
