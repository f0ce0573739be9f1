package health

import (
	"context"
	"sort"
)

// Check reports on one dependency.
type Check func(ctx context.Context) error

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report is the health payload. Checks are ordered by name.
type Report struct {
	OK     bool          `json:"ok"`
	Checks []CheckResult `json:"checks,omitempty"`
}

// Service encapsulates health-related checks.
type Service struct {
	checks map[string]Check
}

// NewService constructs a new health service.
func NewService() *Service {
	return &Service{checks: map[string]Check{}}
}

// Register adds a named dependency check.
func (s *Service) Register(name string, check Check) {
	s.checks[name] = check
}

// Status reports liveness plus the outcome of each registered check. The
// service stays ok when a dependency is down; those failures are reported
// per check only.
func (s *Service) Status(ctx context.Context) Report {
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	report := Report{OK: true}
	for _, name := range names {
		result := CheckResult{Name: name, Status: "ok"}
		if err := s.checks[name](ctx); err != nil {
			result.Status = "down"
			result.Error = err.Error()
		}
		report.Checks = append(report.Checks, result)
	}
	return report
}
