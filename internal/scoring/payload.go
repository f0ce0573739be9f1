package scoring

import "readiness-backend/internal/intake"

// Payload is the request body of POST /api/score/calculate.
type Payload struct {
	Skills         []string            `json:"skills"`
	Certifications []CertificationItem `json:"certifications"`
	Projects       []ProjectItem       `json:"projects"`
	Internships    []InternshipItem    `json:"internships"`
	ResumeText     string              `json:"resume_text"`
}

type CertificationItem struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Year   int    `json:"year"`
}

type ProjectItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
	GithubURL   string   `json:"github_url"`
}

type InternshipItem struct {
	Company        string `json:"company"`
	Role           string `json:"role"`
	DurationMonths int    `json:"duration_months"`
	Achievements   string `json:"achievements"`
	HasCertificate bool   `json:"has_certificate"`
}

// BuildPayload projects an intake into the scoring request. The projection is
// deterministic: the same state always yields the same payload. Optional
// fields get their defaults and slices are never nil.
func BuildPayload(state intake.State) Payload {
	p := Payload{
		Skills:         state.Skills.Values(),
		Certifications: make([]CertificationItem, 0, state.Certifications.Len()),
		Projects:       make([]ProjectItem, 0, state.Projects.Len()),
		Internships:    make([]InternshipItem, 0, state.Internships.Len()),
		ResumeText:     state.ResumeText,
	}

	for _, c := range state.Certifications.Items() {
		year := c.Year
		if year <= 0 {
			year = intake.DefaultCertificationYear
		}
		p.Certifications = append(p.Certifications, CertificationItem{
			Name:   c.Name,
			Issuer: c.Issuer,
			Year:   year,
		})
	}

	for _, pr := range state.Projects.Items() {
		stack := pr.TechStack
		if stack == nil {
			stack = []string{}
		}
		p.Projects = append(p.Projects, ProjectItem{
			Title:       pr.Title,
			Description: pr.Description,
			TechStack:   stack,
			GithubURL:   pr.GithubURL,
		})
	}

	for _, in := range state.Internships.Items() {
		months := in.DurationMonths
		if months < 1 {
			months = intake.DefaultInternshipMonths
		}
		p.Internships = append(p.Internships, InternshipItem{
			Company:        in.Company,
			Role:           in.Role,
			DurationMonths: months,
			Achievements:   in.Achievements,
			HasCertificate: in.HasCertificate,
		})
	}

	return p
}
