package wizard

// Step is a position in the wizard.
type Step int

const (
	StepSkills Step = iota
	StepCertifications
	StepProjects
	StepInternships
	StepResume
	StepResults
)

// LastStep is the final step index.
const LastStep = StepResults

var stepNames = [...]string{
	StepSkills:         "skills",
	StepCertifications: "certifications",
	StepProjects:       "projects",
	StepInternships:    "internships",
	StepResume:         "resume",
	StepResults:        "results",
}

func (s Step) String() string {
	if s < StepSkills || s > LastStep {
		return "unknown"
	}
	return stepNames[s]
}

// Valid reports whether s is one of the six steps.
func (s Step) Valid() bool {
	return s >= StepSkills && s <= LastStep
}
