package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"readiness-backend/internal/extract"
	"readiness-backend/internal/uploads"
)

var scanCertCmd = &cobra.Command{
	Use:   "scan-cert <file>...",
	Short: "Identify certificates from uploaded files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScanCert,
}

var scanResumeCmd = &cobra.Command{
	Use:   "scan-resume <file>",
	Short: "Score a resume file for ATS readiness",
	Args:  cobra.ExactArgs(1),
	RunE:  runScanResume,
}

var scanResumeExtracted bool

func init() {
	scanResumeCmd.Flags().BoolVar(&scanResumeExtracted, "submit-extracted", false, "Print the extracted resume text instead of the upload marker")

	rootCmd.AddCommand(scanCertCmd)
	rootCmd.AddCommand(scanResumeCmd)
}

func readFiles(paths []string) ([]uploads.File, error) {
	files := make([]uploads.File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		files = append(files, uploads.File{Name: filepath.Base(p), Data: data})
	}
	return files, nil
}

func runScanCert(cmd *cobra.Command, args []string) error {
	files, err := readFiles(args)
	if err != nil {
		return err
	}

	identified := 0
	flow := uploads.NewCertificateFlow(newClient())
	outcomes := flow.Process(cmd.Context(), files, nil)

	out := cmd.OutOrStdout()
	for _, o := range outcomes {
		switch o.State {
		case uploads.StateAdded:
			identified++
			fmt.Fprintf(out, "%s: %s [%s]\n", o.FileName, o.Certification.Name, o.Certification.Issuer)
		default:
			fmt.Fprintf(out, "%s: %s %s\n", o.FileName, o.State, o.Message)
		}
	}
	fmt.Fprintf(out, "%d of %d certificates identified\n", identified, len(outcomes))
	return nil
}

func runScanResume(cmd *cobra.Command, args []string) error {
	files, err := readFiles(args)
	if err != nil {
		return err
	}

	flow := uploads.NewResumeFlow(newClient(), extract.Local{}, scanResumeExtracted)
	outcome := flow.Process(cmd.Context(), files[0])

	out := cmd.OutOrStdout()
	if outcome.State != uploads.StateAccepted {
		return fmt.Errorf("resume %s: %s", outcome.State, outcome.Message)
	}
	fmt.Fprintf(out, "ATS score: %.1f (%d words)\n", outcome.Scan.Score, outcome.Scan.TotalWords)
	for _, name := range sortedKeys(outcome.Scan.SectionScores) {
		s := outcome.Scan.SectionScores[name]
		fmt.Fprintf(out, "  %-24s %5.1f  (weight %d)\n", name, s.Score, s.Weight)
	}
	fmt.Fprintf(out, "\n%s\n", outcome.ResumeText)
	return nil
}
