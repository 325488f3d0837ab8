package scoring

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidWeights is returned when a WeightConfig fails validation.
var ErrInvalidWeights = errors.New("invalid weights")

// WeightTolerance is the floating-point slack allowed on the sum-to-1 invariant.
const WeightTolerance = 0.01

// WeightConfig defines the relative importance of the three sub-scores.
// All weights must be non-negative and sum to 1.0 (±WeightTolerance).
type WeightConfig struct {
	Brand     float64 `json:"brand_weight" yaml:"brand"`
	Sentiment float64 `json:"sentiment_weight" yaml:"sentiment"`
	ROI       float64 `json:"roi_weight" yaml:"roi"`
}

// DefaultWeights returns the product-default weight distribution.
func DefaultWeights() WeightConfig {
	return WeightConfig{
		Brand:     0.3,
		Sentiment: 0.3,
		ROI:       0.4,
	}
}

// Sum returns the total of all weights.
func (w WeightConfig) Sum() float64 {
	return w.Brand + w.Sentiment + w.ROI
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightConfig) Validate() error {
	for _, v := range []float64{w.Brand, w.Sentiment, w.ROI} {
		if v < 0 {
			return fmt.Errorf("%w: negative weight %f", ErrInvalidWeights, v)
		}
	}
	if math.Abs(w.Sum()-1.0) > WeightTolerance {
		return fmt.Errorf("%w: weights sum to %.4f, must sum to 1.0", ErrInvalidWeights, w.Sum())
	}
	return nil
}
