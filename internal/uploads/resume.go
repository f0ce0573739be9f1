package uploads

import (
	"context"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"readiness-backend/internal/extract"
	"readiness-backend/internal/intake"
	"readiness-backend/internal/scoring"
	"readiness-backend/internal/shared/metrics"
	"readiness-backend/internal/shared/telemetry"
)

const (
	kindResume   = "resume"
	msgNoWords   = "no readable text found in resume"
	markerPrefix = "Resume uploaded: "
)

// ResumeScanner scores an uploaded resume file.
type ResumeScanner interface {
	ScanResume(ctx context.Context, fileName string, data []byte) (scoring.ResumeScan, error)
}

// ResumeFlow scans an uploaded resume and reads its text locally. The two
// run concurrently; the scan result decides whether anything is kept.
type ResumeFlow struct {
	scanner   ResumeScanner
	extractor extract.Extractor

	// submitExtracted makes the accepted resume text the file's own content
	// instead of the upload marker.
	submitExtracted bool
	busy            atomic.Bool
}

// NewResumeFlow constructs a ResumeFlow. A nil extractor disables the local read.
func NewResumeFlow(scanner ResumeScanner, extractor extract.Extractor, submitExtracted bool) *ResumeFlow {
	return &ResumeFlow{
		scanner:         scanner,
		extractor:       extractor,
		submitExtracted: submitExtracted,
	}
}

// Busy reports whether an upload is running.
func (f *ResumeFlow) Busy() bool {
	return f.busy.Load()
}

// Process runs one resume upload. It never returns an error: failures are
// reported through the outcome state and the busy flag is always cleared.
// Only an accepted outcome carries text meant to overwrite the intake.
func (f *ResumeFlow) Process(ctx context.Context, file File) ResumeOutcome {
	if !f.busy.CompareAndSwap(false, true) {
		metrics.IncScan(kindResume, string(StateBusy))
		return ResumeOutcome{FileName: file.Name, State: StateBusy, Message: ErrScanInFlight.Error()}
	}
	defer f.busy.Store(false)

	outcome := f.process(ctx, file)
	metrics.IncScan(kindResume, string(outcome.State))
	return outcome
}

func (f *ResumeFlow) process(ctx context.Context, file File) ResumeOutcome {
	var (
		scan    scoring.ResumeScan
		text    string
		readErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		scan, err = f.scanner.ScanResume(gctx, file.Name, file.Data)
		return err
	})
	if f.extractor != nil {
		g.Go(func() error {
			text, readErr = f.extractor.Text(gctx, file.Name, file.Data)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		telemetry.Error("uploads.resume.scan.failed", map[string]any{
			"file_name": file.Name,
			"size":      len(file.Data),
			"err":       err.Error(),
		})
		return ResumeOutcome{FileName: file.Name, State: StateFailed, Message: err.Error()}
	}

	if scan.TotalWords == 0 {
		msg := scan.Error
		if msg == "" {
			msg = msgNoWords
		}
		return ResumeOutcome{FileName: file.Name, State: StateEmpty, Scan: &scan, Message: msg}
	}

	if readErr != nil {
		telemetry.Warn("uploads.resume.read.failed", map[string]any{
			"file_name": file.Name,
			"err":       readErr.Error(),
		})
		text = ""
	}

	doc := intake.ResumeDocument{
		FileName:  file.Name,
		Text:      text,
		WordCount: scan.TotalWords,
	}
	if text != "" {
		doc.WordCount = extract.WordCount(text)
	}

	resumeText := Marker(file.Name, scan.Suggestions)
	if f.submitExtracted && text != "" {
		resumeText = text
	}

	return ResumeOutcome{
		FileName:   file.Name,
		State:      StateAccepted,
		ResumeText: resumeText,
		Document:   doc,
		Scan:       &scan,
	}
}

// Marker is the resume text recorded for an accepted upload: an
// acknowledgment line followed by one line per returned suggestion.
func Marker(fileName string, suggestions []string) string {
	var b strings.Builder
	b.WriteString(markerPrefix)
	b.WriteString(fileName)
	for _, s := range suggestions {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		b.WriteString("\n- ")
		b.WriteString(s)
	}
	return b.String()
}
