package scoring

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	pathPreviewSkills         = "/api/score/skills"
	pathPreviewCertifications = "/api/score/certifications"
	pathPreviewProjects       = "/api/score/projects"
	pathPreviewInternships    = "/api/score/internships"
)

// Preview is one component scored on its own. Detail is the service's full
// response for that component; only the score is interpreted here.
type Preview struct {
	Component Component       `json:"component"`
	Score     float64         `json:"score"`
	Detail    json.RawMessage `json:"detail"`
}

// Preview scores a single component of payload without a full calculation.
// The resume component is scored from payload's resume text.
func (c *Client) Preview(ctx context.Context, component Component, payload Payload) (Preview, error) {
	path, body, err := previewRequest(component, payload)
	if err != nil {
		return Preview{}, err
	}
	var raw json.RawMessage
	if err := c.postJSON(ctx, path, body, &raw); err != nil {
		return Preview{}, err
	}
	var head struct {
		Score *float64 `json:"score"`
	}
	if err := json.Unmarshal(raw, &head); err != nil || head.Score == nil {
		return Preview{}, fmt.Errorf("%w: %s response has no score", ErrBadResponse, path)
	}
	return Preview{Component: component, Score: *head.Score, Detail: raw}, nil
}

func previewRequest(component Component, p Payload) (string, any, error) {
	switch component {
	case Skills:
		return pathPreviewSkills, map[string]any{"skills": nonNilSlice(p.Skills)}, nil
	case Certifications:
		return pathPreviewCertifications, map[string]any{"certifications": nonNilSlice(p.Certifications)}, nil
	case Projects:
		return pathPreviewProjects, map[string]any{"projects": nonNilSlice(p.Projects)}, nil
	case Internships:
		return pathPreviewInternships, map[string]any{"internships": nonNilSlice(p.Internships)}, nil
	case Resume:
		return pathResumeText, map[string]any{"resume_text": p.ResumeText}, nil
	default:
		return "", nil, fmt.Errorf("preview: unknown component %q", component)
	}
}

func nonNilSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
