package scoring

// Band is the color-coded bucket a score falls into.
type Band struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

var (
	BandExcellent = Band{Name: "excellent", Color: "#22c55e"}
	BandGood      = Band{Name: "good", Color: "#eab308"}
	BandFair      = Band{Name: "fair", Color: "#f97316"}
	BandPoor      = Band{Name: "poor", Color: "#ef4444"}
)

// GradeBand maps a 0-100 score to its display band. Every rendered score goes
// through here so the thresholds live in one place.
func GradeBand(score float64) Band {
	switch {
	case score >= 80:
		return BandExcellent
	case score >= 60:
		return BandGood
	case score >= 40:
		return BandFair
	default:
		return BandPoor
	}
}
