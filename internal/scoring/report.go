package scoring

import (
	"encoding/json"
	"fmt"
)

// Report is the scoring service's response to a calculate request. It is
// treated as read-only.
type Report struct {
	Final       Final       `json:"final"`
	Components  Details     `json:"components"`
	Suggestions Suggestions `json:"suggestions"`
}

type Final struct {
	FinalScore         float64                 `json:"final_score"`
	MaxScore           float64                 `json:"max_score,omitempty"`
	OverallGrade       Grade                   `json:"overall_grade"`
	Weights            Weights                 `json:"weights,omitempty"`
	ComponentBreakdown map[Component]Breakdown `json:"component_breakdown"`
	StrongestAreas     []Area                  `json:"strongest_areas"`
	WeakestAreas       []Area                  `json:"weakest_areas"`
}

type Grade struct {
	Grade string `json:"grade"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type Breakdown struct {
	RawScore      float64 `json:"raw_score"`
	Weight        int     `json:"weight"`
	WeightedScore float64 `json:"weighted_score"`
	Grade         Grade   `json:"grade"`
}

// Area names a component in the strongest/weakest rankings.
type Area struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Details keeps each component's detail block as raw JSON; only the
// documented pieces are decoded on demand.
type Details map[Component]json.RawMessage

// ResumeDetail is the documented part of the resume component block.
type ResumeDetail struct {
	Score         float64                 `json:"score"`
	SectionScores map[string]SectionScore `json:"section_scores"`
	TotalWords    int                     `json:"total_words,omitempty"`
	Suggestions   []string                `json:"suggestions,omitempty"`
}

type SectionScore struct {
	Score  float64 `json:"score"`
	Weight int     `json:"weight"`
}

// Clone returns a deep copy of r.
func (r Report) Clone() Report {
	out := r
	out.Final.Weights = cloneMap(r.Final.Weights)
	out.Final.ComponentBreakdown = cloneMap(r.Final.ComponentBreakdown)
	out.Final.StrongestAreas = cloneSlice(r.Final.StrongestAreas)
	out.Final.WeakestAreas = cloneSlice(r.Final.WeakestAreas)
	if r.Components != nil {
		out.Components = make(Details, len(r.Components))
		for k, raw := range r.Components {
			out.Components[k] = cloneSlice(raw)
		}
	}
	out.Suggestions.TopPriorityActions = cloneSlice(r.Suggestions.TopPriorityActions)
	out.Suggestions.AllSuggestions = cloneSlice(r.Suggestions.AllSuggestions)
	out.Suggestions.PriorityOrder = cloneSlice(r.Suggestions.PriorityOrder)
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	return append(make([]T, 0, len(in)), in...)
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	if in == nil {
		return nil
	}
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Resume decodes the resume detail block. A missing block yields ok=false.
func (d Details) Resume() (ResumeDetail, bool, error) {
	raw, ok := d[Resume]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return ResumeDetail{}, false, nil
	}
	var detail ResumeDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return ResumeDetail{}, false, fmt.Errorf("decode resume detail: %w", err)
	}
	return detail, true, nil
}

type Suggestions struct {
	TopPriorityActions []Suggestion `json:"top_priority_actions"`
	AllSuggestions     []Suggestion `json:"all_suggestions"`
	PriorityOrder      []Priority   `json:"priority_order,omitempty"`
	TotalSuggestions   int          `json:"total_suggestions"`
}

type Suggestion struct {
	Text      string    `json:"text"`
	Component Component `json:"component"`
	Score     float64   `json:"score,omitempty"`
	Level     string    `json:"level,omitempty"`
	Impact    string    `json:"impact,omitempty"`
}

type Priority struct {
	Component Component `json:"component"`
	Score     float64   `json:"score"`
	Level     string    `json:"level"`
}

// CatalogCategory is one group of the skill catalog.
type CatalogCategory struct {
	Icon   string   `json:"icon"`
	Skills []string `json:"skills"`
}

// Catalog maps category names to their skills.
type Catalog map[string]CatalogCategory

// CertificationTier is one tier of the certification catalog.
type CertificationTier struct {
	Label          string   `json:"label"`
	Value          float64  `json:"value"`
	Certifications []string `json:"certifications"`
}

// CertificationCatalog maps tier keys to their certifications.
type CertificationCatalog map[string]CertificationTier

// CertificateScan is the response of the certificate scan endpoint.
type CertificateScan struct {
	Identified           bool       `json:"identified"`
	CertName             string     `json:"cert_name,omitempty"`
	Match                *TierMatch `json:"match,omitempty"`
	ExtractedTextPreview string     `json:"extracted_text_preview,omitempty"`
	AutoDetected         bool       `json:"auto_detected,omitempty"`
	Error                string     `json:"error,omitempty"`
}

type TierMatch struct {
	CertName   string  `json:"cert_name,omitempty"`
	Tier       string  `json:"tier"`
	TierLabel  string  `json:"tier_label"`
	TierValue  float64 `json:"tier_value,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// ResumeScan is the response of the resume scan endpoints.
type ResumeScan struct {
	Score         float64                 `json:"score"`
	SectionScores map[string]SectionScore `json:"section_scores"`
	TotalWords    int                     `json:"total_words"`
	Suggestions   []string                `json:"suggestions"`
	Error         string                  `json:"error,omitempty"`
}
