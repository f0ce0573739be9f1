package intake

import "strings"

// DefaultCertificationYear is used when a certification has no year.
const DefaultCertificationYear = 2024

// DefaultInternshipMonths is used when an internship has no usable duration.
const DefaultInternshipMonths = 3

// Certification is a credential entered manually or derived from a scan.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   int    `json:"year"`
}

// NewCertification builds a normalized certification from form input.
func NewCertification(name, issuer string, year int) Certification {
	return Certification{Name: name, Issuer: issuer, Year: year}.Normalize()
}

// Normalize trims text fields and applies the default year.
func (c Certification) Normalize() Certification {
	c.Name = strings.TrimSpace(c.Name)
	c.Issuer = strings.TrimSpace(c.Issuer)
	if c.Year <= 0 {
		c.Year = DefaultCertificationYear
	}
	return c
}

// Valid reports whether the required name is present.
func (c Certification) Valid() bool {
	return c.Name != ""
}

// Project is a portfolio entry.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	GithubURL   string   `json:"githubUrl"`
}

// NewProject builds a project from form input where techStack is a
// comma-separated string.
func NewProject(title, description, techStack, githubURL string) Project {
	return Project{
		Title:       title,
		Description: description,
		TechStack:   SplitList(techStack),
		GithubURL:   githubURL,
	}.Normalize()
}

// Normalize trims text fields and drops blank tech stack entries.
func (p Project) Normalize() Project {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.GithubURL = strings.TrimSpace(p.GithubURL)
	stack := make([]string, 0, len(p.TechStack))
	for _, t := range p.TechStack {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			stack = append(stack, trimmed)
		}
	}
	p.TechStack = stack
	return p
}

// Valid reports whether the required title is present.
func (p Project) Valid() bool {
	return p.Title != ""
}

// Internship is a work-experience entry.
type Internship struct {
	Company        string `json:"company"`
	Role           string `json:"role"`
	DurationMonths int    `json:"durationMonths"`
	Achievements   string `json:"achievements"`
	HasCertificate bool   `json:"hasCertificate"`
}

// NewInternship builds a normalized internship from form input.
func NewInternship(company, role string, durationMonths int, achievements string, hasCertificate bool) Internship {
	return Internship{
		Company:        company,
		Role:           role,
		DurationMonths: durationMonths,
		Achievements:   achievements,
		HasCertificate: hasCertificate,
	}.Normalize()
}

// Normalize trims text fields and clamps the duration to the default when
// it is below one month.
func (i Internship) Normalize() Internship {
	i.Company = strings.TrimSpace(i.Company)
	i.Role = strings.TrimSpace(i.Role)
	i.Achievements = strings.TrimSpace(i.Achievements)
	if i.DurationMonths < 1 {
		i.DurationMonths = DefaultInternshipMonths
	}
	return i
}

// Valid reports whether the required company is present.
func (i Internship) Valid() bool {
	return i.Company != ""
}

// ResumeDocument is the content of an uploaded resume file. It is kept apart
// from the resume text that gets submitted for scoring.
type ResumeDocument struct {
	FileName  string `json:"fileName"`
	Text      string `json:"text"`
	WordCount int    `json:"wordCount"`
}

// Empty reports whether no document has been uploaded.
func (d ResumeDocument) Empty() bool {
	return d.FileName == "" && d.Text == ""
}

// State aggregates everything the candidate entered before submission.
// The zero value is an empty intake.
type State struct {
	Skills         SkillSet            `json:"skills"`
	Certifications List[Certification] `json:"certifications"`
	Projects       List[Project]       `json:"projects"`
	Internships    List[Internship]    `json:"internships"`
	ResumeText     string              `json:"resumeText"`
	ResumeDocument ResumeDocument      `json:"resumeDocument"`
}

// SplitList splits comma-separated free text, trimming each segment and
// discarding empty ones. Order is preserved.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
