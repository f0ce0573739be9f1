package scoring

import (
	"errors"
	"fmt"
)

// TotalWeight is the sum every weights table must reach.
const TotalWeight = 100

// ErrInvalidWeights is returned when a weights table is incomplete or does
// not sum to TotalWeight.
var ErrInvalidWeights = errors.New("invalid component weights")

// Weights maps each component to its share of the final score.
type Weights map[Component]int

// DefaultWeights returns the weights the scoring service applies.
func DefaultWeights() Weights {
	return Weights{
		Skills:         30,
		Certifications: 15,
		Projects:       25,
		Internships:    20,
		Resume:         10,
	}
}

// Validate checks that every component has a weight and the total is 100.
func (w Weights) Validate() error {
	sum := 0
	for _, c := range order {
		v, ok := w[c]
		if !ok {
			return fmt.Errorf("%w: missing %s", ErrInvalidWeights, c)
		}
		if v < 0 {
			return fmt.Errorf("%w: negative weight for %s", ErrInvalidWeights, c)
		}
		sum += v
	}
	if len(w) != len(order) {
		return fmt.Errorf("%w: unexpected components", ErrInvalidWeights)
	}
	if sum != TotalWeight {
		return fmt.Errorf("%w: sum is %d, want %d", ErrInvalidWeights, sum, TotalWeight)
	}
	return nil
}

// Of returns the weight for c, or zero when absent.
func (w Weights) Of(c Component) int {
	return w[c]
}

// Equal reports whether both tables hold the same weights.
func (w Weights) Equal(other Weights) bool {
	if len(w) != len(other) {
		return false
	}
	for c, v := range w {
		if ov, ok := other[c]; !ok || ov != v {
			return false
		}
	}
	return true
}
