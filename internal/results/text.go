package results

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 30

// WriteText renders a view as plain text for terminals.
func WriteText(w io.Writer, v View) error {
	if !v.Ready {
		_, err := fmt.Fprintln(w, v.Prompt)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Career readiness: %.1f / %.0f  %s (%s)\n", v.Gauge.Score, v.Gauge.Max, v.Grade.Grade, v.Grade.Label)
	if v.WeightMismatch {
		b.WriteString("warning: scoring service reported different component weights\n")
	}

	b.WriteString("\nComponents\n")
	for _, c := range v.Cards {
		fmt.Fprintf(&b, "  %-15s %5.1f  x%3d%% = %5.1f  %-3s %s\n",
			c.Label, c.RawScore, c.Weight, c.WeightedScore, c.Grade.Grade, bar(c.RawScore))
	}

	writeAreas(&b, "Strongest areas", v.Strengths)
	writeAreas(&b, "Weakest areas", v.Weaknesses)

	if len(v.ResumeSections) > 0 {
		b.WriteString("\nResume sections\n")
		for _, s := range v.ResumeSections {
			fmt.Fprintf(&b, "  %-24s %5.1f  (weight %d)\n", s.Name, s.Score, s.Weight)
		}
	}

	if len(v.TopActions) > 0 {
		b.WriteString("\nTop priority actions\n")
		for i, s := range v.TopActions {
			fmt.Fprintf(&b, "  %d. [%s] %s\n", i+1, s.Component.Label(), s.Text)
		}
	}
	if v.TotalSuggestions > 0 {
		fmt.Fprintf(&b, "\n%d suggestions in total\n", v.TotalSuggestions)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeAreas(b *strings.Builder, title string, areas []Area) {
	if len(areas) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, a := range areas {
		fmt.Fprintf(b, "  %-15s %5.1f  %s\n", a.Label, a.Score, a.Band.Name)
	}
}

func bar(score float64) string {
	filled := int(clampPercent(score) / 100 * barWidth)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}
