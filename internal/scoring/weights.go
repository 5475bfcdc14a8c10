package scoring

import (
	"fmt"
	"math"
)

// WeightSet defines the relative importance of each comparison attribute.
// All weights must sum to 1.0 (±0.001 tolerance).
type WeightSet struct {
	Mileage        float64
	Performance    float64
	PriceAdvantage float64
}

// DefaultWeights returns the standard weight distribution.
func DefaultWeights() WeightSet {
	return WeightSet{
		Mileage:        0.40,
		Performance:    0.40,
		PriceAdvantage: 0.20,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.Mileage + w.Performance + w.PriceAdvantage
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range []float64{w.Mileage, w.Performance, w.PriceAdvantage} {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}
