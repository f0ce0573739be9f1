package scoring

import (
	"errors"
	"fmt"
)

// ErrTransport marks failures to reach the scoring service at all.
var ErrTransport = errors.New("scoring service unreachable")

// ErrBadResponse marks 2xx responses whose body could not be decoded.
var ErrBadResponse = errors.New("malformed scoring response")

// IsServiceFailure reports whether err originated from talking to the
// scoring service.
func IsServiceFailure(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) || errors.Is(err, ErrTransport) || errors.Is(err, ErrBadResponse)
}

// APIError is returned when the scoring service answers with a non-2xx status.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scoring %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}
