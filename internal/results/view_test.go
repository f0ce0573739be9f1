package results

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness-backend/internal/scoring"
)

const sampleReport = `{
	"final": {
		"final_score": 58.5,
		"max_score": 100,
		"overall_grade": {"grade": "C+", "label": "Average", "color": "#f97316"},
		"weights": {"skills": 30, "certifications": 15, "projects": 25, "internships": 20, "resume": 10},
		"component_breakdown": {
			"skills": {"raw_score": 85, "weight": 30, "weighted_score": 25.5, "grade": {"grade": "A", "label": "Excellent", "color": "#22c55e"}},
			"certifications": {"raw_score": 60, "weight": 15, "weighted_score": 9, "grade": {"grade": "B", "label": "Good", "color": "#eab308"}},
			"projects": {"raw_score": 48, "weight": 25, "weighted_score": 12, "grade": {"grade": "C", "label": "Below Average", "color": "#ef4444"}},
			"internships": {"raw_score": 35, "weight": 20, "weighted_score": 7, "grade": {"grade": "D", "label": "Needs Work", "color": "#dc2626"}},
			"resume": {"raw_score": 50, "weight": 10, "weighted_score": 5, "grade": {"grade": "C+", "label": "Average", "color": "#f97316"}}
		},
		"strongest_areas": [{"name": "skills", "score": 85}, {"name": "certifications", "score": 60}],
		"weakest_areas": [{"name": "internships", "score": 35}, {"name": "projects", "score": 48}]
	},
	"components": {
		"resume": {"score": 50, "section_scores": {
			"Education": {"score": 90, "weight": 15},
			"Work Experience": {"score": 30, "weight": 25},
			"Skills": {"score": 70, "weight": 15}
		}}
	},
	"suggestions": {
		"top_priority_actions": [{"text": "Apply widely to internships", "component": "internships", "score": 35, "impact": "high"}],
		"all_suggestions": [{"text": "Apply widely to internships", "component": "internships", "score": 35, "impact": "high"}],
		"total_suggestions": 1
	}
}`

func decodeReport(t *testing.T) scoring.Report {
	t.Helper()
	var r scoring.Report
	require.NoError(t, json.Unmarshal([]byte(sampleReport), &r))
	return r
}

func TestRenderNilIsPlaceholder(t *testing.T) {
	v := NewRenderer(scoring.DefaultWeights()).Render(nil)
	assert.False(t, v.Ready)
	assert.Equal(t, PlaceholderPrompt, v.Prompt)
	assert.Empty(t, v.Cards)
}

func TestRenderProjectsReport(t *testing.T) {
	report := decodeReport(t)
	v := NewRenderer(scoring.DefaultWeights()).Render(&report)

	require.True(t, v.Ready)
	assert.False(t, v.WeightMismatch)
	assert.Equal(t, 58.5, v.Gauge.Score)
	assert.InDelta(t, 439.82, v.Gauge.Circumference, 0.01)
	assert.InDelta(t, 439.82*(1-0.585), v.Gauge.DashOffset, 0.02)
	assert.Equal(t, scoring.BandFair, v.Gauge.Band)
	assert.Equal(t, "C+", v.Grade.Grade)

	require.Len(t, v.Cards, 5)
	wantBands := []scoring.Band{scoring.BandExcellent, scoring.BandGood, scoring.BandFair, scoring.BandPoor, scoring.BandFair}
	for i, c := range scoring.Components() {
		assert.Equal(t, c, v.Cards[i].Component)
		assert.Equal(t, wantBands[i], v.Cards[i].Band, "card %s", c)
		assert.Equal(t, wantBands[i], v.Bars[i].Band, "bar %s", c)
	}
	assert.Equal(t, 30, v.Cards[0].Weight)
	assert.Equal(t, 25.5, v.Cards[0].WeightedScore)

	require.Len(t, v.Strengths, 2)
	assert.Equal(t, "Skills", v.Strengths[0].Label)
	require.Len(t, v.Weaknesses, 2)
	assert.Equal(t, scoring.Internships, v.Weaknesses[0].Component)

	require.Len(t, v.ResumeSections, 3)
	assert.Equal(t, "Work Experience", v.ResumeSections[0].Name)
	assert.Equal(t, "Education", v.ResumeSections[1].Name)
	assert.Equal(t, "Skills", v.ResumeSections[2].Name)

	assert.Len(t, v.TopActions, 1)
	assert.Equal(t, 1, v.TotalSuggestions)
}

func TestRenderDoesNotMutateReport(t *testing.T) {
	report := decodeReport(t)
	before := decodeReport(t)
	_ = NewRenderer(scoring.DefaultWeights()).Render(&report)
	assert.True(t, reflect.DeepEqual(before, report))
}

func TestRenderFlagsWeightMismatch(t *testing.T) {
	report := decodeReport(t)
	report.Final.Weights = scoring.Weights{scoring.Skills: 50, scoring.Certifications: 10, scoring.Projects: 20, scoring.Internships: 10, scoring.Resume: 10}
	v := NewRenderer(scoring.DefaultWeights()).Render(&report)
	assert.True(t, v.WeightMismatch)
}

func TestRenderMinimalReport(t *testing.T) {
	report := scoring.Report{Final: scoring.Final{FinalScore: 42, OverallGrade: scoring.Grade{Grade: "D"}}}
	v := NewRenderer(scoring.DefaultWeights()).Render(&report)
	require.True(t, v.Ready)
	assert.Equal(t, 100.0, v.Gauge.Max)
	assert.Nil(t, v.ResumeSections)
	require.Len(t, v.Cards, 5)
	assert.Equal(t, 10, v.Cards[4].Weight, "falls back to the shared weights table")
	assert.NotNil(t, v.TopActions)
}

func TestWriteText(t *testing.T) {
	report := decodeReport(t)
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, NewRenderer(scoring.DefaultWeights()).Render(&report)))
	out := buf.String()
	for _, want := range []string{"Career readiness: 58.5 / 100", "Internships", "Work Experience", "1. [Internships] Apply widely"} {
		assert.True(t, strings.Contains(out, want), "expected %q in:\n%s", want, out)
	}

	buf.Reset()
	require.NoError(t, WriteText(&buf, Placeholder()))
	assert.Equal(t, PlaceholderPrompt+"\n", buf.String())
}
