package scoring

import (
	"errors"
	"math"
)

// ErrMissingInput is returned when the ROI estimator lacks engagement rate
// or subscriber count for a channel.
var ErrMissingInput = errors.New("missing roi input")

// Price brackets map a channel's estimated sponsorship tier to a flat cost in
// currency units. Unrecognized labels fall back to DefaultCostEstimate.
const (
	BracketBudget   = "budget"
	BracketStandard = "standard"
	BracketPremium  = "premium"
	BracketTop      = "top"
	BracketQuote    = "quote"

	DefaultCostEstimate int64 = 2_000_000
)

var costByBracket = map[string]int64{
	BracketBudget:   1_000_000,
	BracketStandard: 2_000_000,
	BracketPremium:  3_000_000,
	BracketTop:      5_000_000,
	BracketQuote:    5_000_000,
}

// EstimatedCostFor resolves a price bracket label to a sponsorship cost,
// defaulting to the mid-tier price for unknown labels.
func EstimatedCostFor(bracket string) int64 {
	if cost, ok := costByBracket[bracket]; ok {
		return cost
	}
	return DefaultCostEstimate
}

// ROIEstimate is the full output of the ROI estimator. CPE and CPV are nil
// when the projected engagement or views are zero (the cost-per ratios are
// unbounded there and cannot be carried over JSON).
type ROIEstimate struct {
	EstimatedViews      int64    `json:"estimated_views"`
	EstimatedEngagement int64    `json:"estimated_engagement"`
	CostEstimate        int64    `json:"cost_estimate"`
	ROIScore            float64  `json:"roi_score"`
	EngagementRate      float64  `json:"engagement_rate"`
	CPE                 *float64 `json:"cpe,omitempty"`
	CPV                 *float64 `json:"cpv,omitempty"`
}

// EstimateROI derives projected views, engagement and a 0–100 cost-efficiency
// score from channel-level engagement rate, subscriber count and an estimated
// sponsorship cost.
//
//	estimated_views      = floor(subscribers * (rate/100) * 10)
//	estimated_engagement = floor(views * (rate/100))
//	cpe = cost / engagement   (+Inf when engagement is 0)
//	roi_score: cpe < 100 -> 100, cpe > 1000 -> 0, else linear in between
//
// A zero engagement rate folds into the zero-score branch via the +Inf
// comparison rather than a division error.
func EstimateROI(engagementRate float64, subscriberCount int64, estimatedCost int64) (ROIEstimate, error) {
	if engagementRate == 0 || subscriberCount == 0 {
		return ROIEstimate{}, ErrMissingInput
	}

	views := int64(float64(subscriberCount) * (engagementRate / 100) * 10)
	engagement := int64(float64(views) * (engagementRate / 100))

	cpe := math.Inf(1)
	if engagement > 0 {
		cpe = float64(estimatedCost) / float64(engagement)
	}
	cpv := math.Inf(1)
	if views > 0 {
		cpv = float64(estimatedCost) / float64(views)
	}

	var score float64
	switch {
	case cpe < 100:
		score = 100.0
	case cpe > 1000:
		score = 0.0
	default:
		score = 100.0 - ((cpe - 100) / 900 * 100)
	}

	est := ROIEstimate{
		EstimatedViews:      views,
		EstimatedEngagement: engagement,
		CostEstimate:        estimatedCost,
		ROIScore:            round2(score),
		EngagementRate:      engagementRate,
	}
	if !math.IsInf(cpe, 1) {
		v := round2(cpe)
		est.CPE = &v
	}
	if !math.IsInf(cpv, 1) {
		v := roundN(cpv, 4)
		est.CPV = &v
	}
	return est, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundN(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
