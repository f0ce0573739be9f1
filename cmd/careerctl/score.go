package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"readiness-backend/internal/intake"
	"readiness-backend/internal/results"
	"readiness-backend/internal/scoring"
	"readiness-backend/internal/wizard"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Run a full assessment from an intake file",
	Long:  "Load an intake JSON file, step through the wizard, submit it for scoring and print the results.",
	Args:  cobra.NoArgs,
	RunE:  runScore,
}

var (
	scoreIntakeFile string
	scoreJSON       bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreIntakeFile, "intake", "i", "", "Path to intake JSON file")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the raw report as JSON")
	_ = scoreCmd.MarkFlagRequired("intake")

	rootCmd.AddCommand(scoreCmd)
}

// intakeFile mirrors the session intake JSON. Entries go through the same
// form gates as interactive input.
type intakeFile struct {
	Skills         []string               `json:"skills"`
	Certifications []intake.Certification `json:"certifications"`
	Projects       []intake.Project       `json:"projects"`
	Internships    []intake.Internship    `json:"internships"`
	ResumeText     string                 `json:"resumeText"`
}

func loadIntake(path string) (intake.State, int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return intake.State{}, 0, fmt.Errorf("failed to read intake file: %w", err)
	}
	var f intakeFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return intake.State{}, 0, fmt.Errorf("failed to parse intake file: %w", err)
	}

	var (
		st       intake.State
		rejected int
		ok       bool
	)
	for _, s := range f.Skills {
		if st.Skills, ok = st.Skills.Add(s); !ok {
			rejected++
		}
	}
	for _, c := range f.Certifications {
		if st.Certifications, ok = st.Certifications.Add(c); !ok {
			rejected++
		}
	}
	for _, p := range f.Projects {
		if st.Projects, ok = st.Projects.Add(p); !ok {
			rejected++
		}
	}
	for _, in := range f.Internships {
		if st.Internships, ok = st.Internships.Add(in); !ok {
			rejected++
		}
	}
	st.ResumeText = f.ResumeText
	return st, rejected, nil
}

func runScore(cmd *cobra.Command, _ []string) error {
	st, rejected, err := loadIntake(scoreIntakeFile)
	if err != nil {
		return err
	}
	if rejected > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: skipped %d blank or duplicate entries\n", rejected)
	}

	w := wizard.New()
	w.Edit(func(intake.State) intake.State { return st })
	for w.Step() < wizard.StepResume {
		w.Advance()
	}

	report, err := w.Submit(cmd.Context(), newClient())
	if err != nil {
		return fmt.Errorf("failed to score intake: %w", err)
	}
	if w.Step() != wizard.StepResults {
		return errors.New("assessment did not reach the results step")
	}

	if scoreJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	view := results.NewRenderer(scoring.DefaultWeights()).Render(&report)
	return results.WriteText(cmd.OutOrStdout(), view)
}
