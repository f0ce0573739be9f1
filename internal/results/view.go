package results

import (
	"math"
	"sort"

	"readiness-backend/internal/scoring"
)

// PlaceholderPrompt is shown when no report exists yet.
const PlaceholderPrompt = "Complete the assessment to see your career readiness score."

const gaugeRadius = 70.0

// View is everything the results page draws.
type View struct {
	Ready            bool                 `json:"ready"`
	Prompt           string               `json:"prompt,omitempty"`
	Gauge            Gauge                `json:"gauge"`
	Grade            scoring.Grade        `json:"grade"`
	Cards            []Card               `json:"cards"`
	Bars             []Bar                `json:"bars"`
	Strengths        []Area               `json:"strengths"`
	Weaknesses       []Area               `json:"weaknesses"`
	ResumeSections   []Section            `json:"resumeSections,omitempty"`
	TopActions       []scoring.Suggestion `json:"topActions"`
	AllSuggestions   []scoring.Suggestion `json:"allSuggestions"`
	TotalSuggestions int                  `json:"totalSuggestions"`
	WeightMismatch   bool                 `json:"weightMismatch,omitempty"`
}

// Gauge describes the circular progress indicator.
type Gauge struct {
	Score         float64      `json:"score"`
	Max           float64      `json:"max"`
	Radius        float64      `json:"radius"`
	Circumference float64      `json:"circumference"`
	DashOffset    float64      `json:"dashOffset"`
	Band          scoring.Band `json:"band"`
}

// Card summarizes one component.
type Card struct {
	Component     scoring.Component `json:"component"`
	Label         string            `json:"label"`
	Icon          string            `json:"icon"`
	RawScore      float64           `json:"rawScore"`
	Weight        int               `json:"weight"`
	WeightedScore float64           `json:"weightedScore"`
	Grade         scoring.Grade     `json:"grade"`
	Band          scoring.Band      `json:"band"`
}

// Bar is one row of the category bar chart.
type Bar struct {
	Label   string       `json:"label"`
	Score   float64      `json:"score"`
	Percent float64      `json:"percent"`
	Band    scoring.Band `json:"band"`
}

// Area is an entry of the strengths or weaknesses panel.
type Area struct {
	Component scoring.Component `json:"component"`
	Label     string            `json:"label"`
	Score     float64           `json:"score"`
	Band      scoring.Band      `json:"band"`
}

// Section is one row of the resume section breakdown.
type Section struct {
	Name   string       `json:"name"`
	Score  float64      `json:"score"`
	Weight int          `json:"weight"`
	Band   scoring.Band `json:"band"`
}

// Renderer projects reports into views using the shared weights table.
type Renderer struct {
	weights scoring.Weights
}

// NewRenderer constructs a Renderer.
func NewRenderer(weights scoring.Weights) *Renderer {
	return &Renderer{weights: weights}
}

// Placeholder returns the view shown before any report exists.
func Placeholder() View {
	return View{
		Prompt:         PlaceholderPrompt,
		Cards:          []Card{},
		Bars:           []Bar{},
		Strengths:      []Area{},
		Weaknesses:     []Area{},
		TopActions:     []scoring.Suggestion{},
		AllSuggestions: []scoring.Suggestion{},
	}
}

// Render builds the view for report without modifying it. A nil report
// yields the placeholder.
func (r *Renderer) Render(report *scoring.Report) View {
	if report == nil {
		return Placeholder()
	}

	final := report.Final
	maxScore := final.MaxScore
	if maxScore <= 0 {
		maxScore = scoring.TotalWeight
	}

	v := View{
		Ready:            true,
		Gauge:            gauge(final.FinalScore, maxScore),
		Grade:            final.OverallGrade,
		Cards:            make([]Card, 0, len(scoring.Components())),
		Bars:             make([]Bar, 0, len(scoring.Components())),
		Strengths:        areas(final.StrongestAreas),
		Weaknesses:       areas(final.WeakestAreas),
		TopActions:       nonNil(report.Suggestions.TopPriorityActions),
		AllSuggestions:   nonNil(report.Suggestions.AllSuggestions),
		TotalSuggestions: report.Suggestions.TotalSuggestions,
	}
	if len(final.Weights) > 0 && !r.weights.Equal(final.Weights) {
		v.WeightMismatch = true
	}

	for _, c := range scoring.Components() {
		b, ok := final.ComponentBreakdown[c]
		weight := b.Weight
		if !ok {
			weight = r.weights.Of(c)
		}
		band := scoring.GradeBand(b.RawScore)
		v.Cards = append(v.Cards, Card{
			Component:     c,
			Label:         c.Label(),
			Icon:          c.Icon(),
			RawScore:      b.RawScore,
			Weight:        weight,
			WeightedScore: b.WeightedScore,
			Grade:         b.Grade,
			Band:          band,
		})
		v.Bars = append(v.Bars, Bar{
			Label:   c.Label(),
			Score:   b.RawScore,
			Percent: clampPercent(b.RawScore),
			Band:    band,
		})
	}

	if detail, ok, err := report.Components.Resume(); err == nil && ok {
		v.ResumeSections = sections(detail.SectionScores)
	}
	return v
}

func gauge(score, maxScore float64) Gauge {
	circumference := 2 * math.Pi * gaugeRadius
	fraction := score / maxScore
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	return Gauge{
		Score:         score,
		Max:           maxScore,
		Radius:        gaugeRadius,
		Circumference: round2(circumference),
		DashOffset:    round2(circumference * (1 - fraction)),
		Band:          scoring.GradeBand(score / maxScore * 100),
	}
}

func areas(in []scoring.Area) []Area {
	out := make([]Area, 0, len(in))
	for _, a := range in {
		c := scoring.Component(a.Name)
		out = append(out, Area{
			Component: c,
			Label:     c.Label(),
			Score:     a.Score,
			Band:      scoring.GradeBand(a.Score),
		})
	}
	return out
}

func sections(in map[string]scoring.SectionScore) []Section {
	if len(in) == 0 {
		return nil
	}
	out := make([]Section, 0, len(in))
	for name, s := range in {
		out = append(out, Section{
			Name:   name,
			Score:  s.Score,
			Weight: s.Weight,
			Band:   scoring.GradeBand(s.Score),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func nonNil(in []scoring.Suggestion) []scoring.Suggestion {
	if in == nil {
		return []scoring.Suggestion{}
	}
	return in
}

func clampPercent(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
