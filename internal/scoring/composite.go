package scoring

import "fmt"

// Dimension identifies one of the three sub-scores in a composite breakdown.
type Dimension string

const (
	DimensionBrand     Dimension = "brand"
	DimensionSentiment Dimension = "sentiment"
	DimensionROI       Dimension = "roi"
)

// Breakdown carries the three sub-scores that feed the composite score.
type Breakdown struct {
	Brand     float64 `json:"brand"`
	Sentiment float64 `json:"sentiment"`
	ROI       float64 `json:"roi"`
}

// Combine computes the weighted composite score, rounded to 2 decimals.
// The weights must already be validated; Combine does not re-check them.
func Combine(b Breakdown, w WeightConfig) float64 {
	total := b.Brand*w.Brand + b.Sentiment*w.Sentiment + b.ROI*w.ROI
	return round2(total)
}

// AssignGrade maps a composite score to a letter grade, top band first.
func AssignGrade(total float64) string {
	switch {
	case total >= 90:
		return "S"
	case total >= 80:
		return "A"
	case total >= 70:
		return "B"
	case total >= 60:
		return "C"
	default:
		return "D"
	}
}

var dimensionLabels = map[Dimension]string{
	DimensionBrand:     "brand compatibility",
	DimensionSentiment: "audience sentiment",
	DimensionROI:       "projected ROI",
}

// Recommendation generates the human-readable verdict for a composite score.
// Below the lowest band it names the weakest dimension; ties break on the
// fixed order brand, sentiment, roi so the output is deterministic.
func Recommendation(total float64, b Breakdown) string {
	switch {
	case total >= 90:
		return "Strong match: exceptional campaign performance expected."
	case total >= 80:
		return "Recommended: strong campaign performance expected."
	case total >= 70:
		return "Conditional: a workable fit if the weaker metrics improve."
	case total >= 60:
		return "Caution: marginal fit, consider a smaller test campaign first."
	}

	weakest, score := WeakestDimension(b)
	return fmt.Sprintf("Not recommended: %s is the weakest dimension (%.1f).",
		dimensionLabels[weakest], score)
}

// WeakestDimension returns the lowest-scoring dimension of a breakdown.
// The comparison walks a fixed enumeration, never a map, so equal minima
// always resolve to the earliest dimension.
func WeakestDimension(b Breakdown) (Dimension, float64) {
	ordered := []struct {
		dim   Dimension
		score float64
	}{
		{DimensionBrand, b.Brand},
		{DimensionSentiment, b.Sentiment},
		{DimensionROI, b.ROI},
	}

	weakest := ordered[0]
	for _, d := range ordered[1:] {
		if d.score < weakest.score {
			weakest = d
		}
	}
	return weakest.dim, weakest.score
}

// SentimentScoreFromRatios derives the 0–100 sentiment score from the
// positive and negative comment percentages: all-positive scores 100,
// all-negative scores 0, and a balanced sample scores 50.
func SentimentScoreFromRatios(positiveRatio, negativeRatio float64) float64 {
	score := (positiveRatio - negativeRatio + 100) / 2
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return round2(score)
}
