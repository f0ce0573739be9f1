package uploads

import (
	"readiness-backend/internal/intake"
	"readiness-backend/internal/scoring"
)

// File is one uploaded file held in memory.
type File struct {
	Name string
	Data []byte
}

// State is the inline status a form shows after an upload attempt.
type State string

const (
	// StateAdded means a certificate was identified and appended.
	StateAdded State = "added"
	// StateUnidentified means the scan succeeded but named no certificate.
	StateUnidentified State = "unidentified"
	// StateAccepted means the resume scan was accepted into the intake.
	StateAccepted State = "accepted"
	// StateEmpty means the resume scan found no words.
	StateEmpty State = "empty"
	// StateFailed means the scan request failed.
	StateFailed State = "failed"
	// StateBusy means another scan on the same form was still running.
	StateBusy State = "busy"
)

// CertificateOutcome reports what happened to one certificate file.
type CertificateOutcome struct {
	FileName      string                `json:"fileName"`
	State         State                 `json:"state"`
	Certification *intake.Certification `json:"certification,omitempty"`
	Match         *scoring.TierMatch    `json:"match,omitempty"`
	Preview       string                `json:"preview,omitempty"`
	Message       string                `json:"message,omitempty"`
}

// ResumeOutcome reports the result of a resume upload.
type ResumeOutcome struct {
	FileName   string                `json:"fileName"`
	State      State                 `json:"state"`
	ResumeText string                `json:"resumeText,omitempty"`
	Document   intake.ResumeDocument `json:"document"`
	Scan       *scoring.ResumeScan   `json:"scan,omitempty"`
	Message    string                `json:"message,omitempty"`
}
