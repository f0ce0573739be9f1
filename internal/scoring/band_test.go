package scoring

import "testing"

func TestGradeBand(t *testing.T) {
	tests := []struct {
		score float64
		want  Band
	}{
		{score: 100, want: BandExcellent},
		{score: 80, want: BandExcellent},
		{score: 79.9, want: BandGood},
		{score: 60, want: BandGood},
		{score: 59.99, want: BandFair},
		{score: 40, want: BandFair},
		{score: 39.5, want: BandPoor},
		{score: 0, want: BandPoor},
		{score: -5, want: BandPoor},
	}

	for _, tt := range tests {
		if got := GradeBand(tt.score); got != tt.want {
			t.Fatalf("GradeBand(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}
