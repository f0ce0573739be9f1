package uploads

import (
	"context"
	"sync/atomic"

	"readiness-backend/internal/intake"
	"readiness-backend/internal/scoring"
	"readiness-backend/internal/shared/metrics"
	"readiness-backend/internal/shared/telemetry"
)

const (
	kindCertificate = "certificate"
	msgUnidentified = "certificate could not be identified"
)

// CertificateScanner identifies a certificate from an uploaded file.
type CertificateScanner interface {
	ScanCertificate(ctx context.Context, fileName string, data []byte) (scoring.CertificateScan, error)
}

// CertificateFlow turns certificate uploads into certification records.
// One flow belongs to one form; it runs at most one batch at a time.
type CertificateFlow struct {
	scanner CertificateScanner
	busy    atomic.Bool
}

// NewCertificateFlow constructs a CertificateFlow.
func NewCertificateFlow(scanner CertificateScanner) *CertificateFlow {
	return &CertificateFlow{scanner: scanner}
}

// Refused reports whether outcomes came from a batch rejected because another
// one was running.
func Refused(outcomes []CertificateOutcome) bool {
	return len(outcomes) > 0 && outcomes[0].State == StateBusy
}

// Busy reports whether a batch is running.
func (f *CertificateFlow) Busy() bool {
	return f.busy.Load()
}

// Process scans files one after another. Each identified certificate is
// handed to add as {cert_name, tier_label, 2024} as soon as its scan returns.
// Failures never escape: they are reported in the outcome of their file and
// the remaining files are still processed.
func (f *CertificateFlow) Process(ctx context.Context, files []File, add func(intake.Certification)) []CertificateOutcome {
	outcomes := make([]CertificateOutcome, 0, len(files))
	if !f.busy.CompareAndSwap(false, true) {
		for _, file := range files {
			metrics.IncScan(kindCertificate, string(StateBusy))
			outcomes = append(outcomes, CertificateOutcome{FileName: file.Name, State: StateBusy, Message: ErrScanInFlight.Error()})
		}
		return outcomes
	}
	defer f.busy.Store(false)

	for _, file := range files {
		outcome := f.scanOne(ctx, file)
		if outcome.Certification != nil && add != nil {
			add(*outcome.Certification)
		}
		metrics.IncScan(kindCertificate, string(outcome.State))
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (f *CertificateFlow) scanOne(ctx context.Context, file File) CertificateOutcome {
	scan, err := f.scanner.ScanCertificate(ctx, file.Name, file.Data)
	if err != nil {
		telemetry.Error("uploads.certificate.scan.failed", map[string]any{
			"file_name": file.Name,
			"size":      len(file.Data),
			"err":       err.Error(),
		})
		return CertificateOutcome{FileName: file.Name, State: StateFailed, Message: err.Error()}
	}

	if !scan.Identified {
		msg := scan.Error
		if msg == "" {
			msg = msgUnidentified
		}
		return CertificateOutcome{
			FileName: file.Name,
			State:    StateUnidentified,
			Preview:  scan.ExtractedTextPreview,
			Message:  msg,
		}
	}

	cert := CertificationFromScan(scan)
	return CertificateOutcome{
		FileName:      file.Name,
		State:         StateAdded,
		Certification: &cert,
		Match:         scan.Match,
		Preview:       scan.ExtractedTextPreview,
	}
}

// CertificationFromScan builds the record for an identified certificate. The
// server's name is used as-is.
func CertificationFromScan(scan scoring.CertificateScan) intake.Certification {
	issuer := ""
	if scan.Match != nil {
		issuer = scan.Match.TierLabel
	}
	return intake.Certification{
		Name:   scan.CertName,
		Issuer: issuer,
		Year:   intake.DefaultCertificationYear,
	}
}
