package scoring

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()
	if err := w.Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}
	if math.Abs(w.Sum()-1.0) > WeightTolerance {
		t.Errorf("default weights sum to %f, expected 1.0", w.Sum())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		weights WeightConfig
		wantErr bool
	}{
		{"exact", WeightConfig{Brand: 0.3, Sentiment: 0.3, ROI: 0.4}, false},
		{"within tolerance low", WeightConfig{Brand: 0.33, Sentiment: 0.33, ROI: 0.333}, false},
		{"within tolerance high", WeightConfig{Brand: 0.34, Sentiment: 0.33, ROI: 0.34}, false},
		{"all in one", WeightConfig{Brand: 1.0}, false},
		{"sum too low", WeightConfig{Brand: 0.3, Sentiment: 0.3, ROI: 0.3}, true},
		{"sum too high", WeightConfig{Brand: 0.5, Sentiment: 0.5, ROI: 0.5}, true},
		{"zero", WeightConfig{}, true},
		{"negative weight", WeightConfig{Brand: -0.2, Sentiment: 0.6, ROI: 0.6}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("expected error for sum %.4f", tt.weights.Sum())
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err != nil && !errors.Is(err, ErrInvalidWeights) {
				t.Errorf("error does not wrap ErrInvalidWeights: %v", err)
			}
		})
	}
}
