package wizard

import "errors"

var (
	// ErrNotAtResumeStep is returned when submit is attempted from any step
	// other than Resume.
	ErrNotAtResumeStep = errors.New("submit is only allowed from the resume step")
	// ErrSubmissionInFlight is returned while another submission is running.
	ErrSubmissionInFlight = errors.New("a scoring submission is already in flight")
)
