package scoring

import "fmt"

// Component is one of the five scored categories.
type Component string

const (
	Skills         Component = "skills"
	Certifications Component = "certifications"
	Projects       Component = "projects"
	Internships    Component = "internships"
	Resume         Component = "resume"
)

type componentMeta struct {
	label  string
	icon   string
	accent string
}

// meta is the only place component kinds are described. Adding a kind means
// adding a constant, a row here and a weight in DefaultWeights.
var meta = map[Component]componentMeta{
	Skills:         {label: "Skills", icon: "code", accent: "#6366f1"},
	Certifications: {label: "Certifications", icon: "award", accent: "#0ea5e9"},
	Projects:       {label: "Projects", icon: "folder", accent: "#8b5cf6"},
	Internships:    {label: "Internships", icon: "briefcase", accent: "#14b8a6"},
	Resume:         {label: "Resume", icon: "file-text", accent: "#f59e0b"},
}

var order = []Component{Skills, Certifications, Projects, Internships, Resume}

// Components returns every component in wizard order.
func Components() []Component {
	out := make([]Component, len(order))
	copy(out, order)
	return out
}

// ParseComponent validates a component key.
func ParseComponent(raw string) (Component, error) {
	c := Component(raw)
	if _, ok := meta[c]; !ok {
		return "", fmt.Errorf("unknown component %q", raw)
	}
	return c, nil
}

// Label returns the display name. Unknown components echo their key.
func (c Component) Label() string {
	if m, ok := meta[c]; ok {
		return m.label
	}
	return string(c)
}

// Icon returns the display icon name.
func (c Component) Icon() string {
	return meta[c].icon
}

// Accent returns the component's fixed accent color.
func (c Component) Accent() string {
	return meta[c].accent
}
