package uploads

import "errors"

// ErrScanInFlight is returned when a form's previous scan has not finished.
var ErrScanInFlight = errors.New("another scan is still running")
