package simulator

import (
	"context"
	"fmt"
	"time"

	"github.com/sponsorscope/sponsorscope/internal/bus"
	"github.com/sponsorscope/sponsorscope/internal/scoring"
)

// CompareWeights runs the analysis pipeline once, under the first weight
// configuration, then recombines the cached sub-scores for every
// configuration. The first configuration must be valid since it drives the
// base run; later invalid entries fail individually.
func (s *Simulator) CompareWeights(ctx context.Context, req CompareRequest) (*CompareResult, error) {
	start := time.Now()
	if len(req.WeightConfigs) == 0 {
		return nil, fmt.Errorf("%w: no weight configurations given", scoring.ErrInvalidWeights)
	}
	base := req.WeightConfigs[0]
	if err := base.Validate(); err != nil {
		return nil, err
	}

	runReq := req.Request
	runReq.Weights = &base
	run, err := s.Run(ctx, runReq)
	if err != nil {
		return nil, err
	}

	breakdown := scoring.Breakdown{
		Brand:     run.Brand.CompatibilityScore,
		Sentiment: run.Sentiment.Score,
		ROI:       run.ROI.ROIScore,
	}
	comparisons := make([]Comparison, 0, len(req.WeightConfigs))
	for _, w := range req.WeightConfigs {
		if err := w.Validate(); err != nil {
			comparisons = append(comparisons, Comparison{Weights: w, Error: err.Error()})
			continue
		}
		total := scoring.Combine(breakdown, w)
		comparisons = append(comparisons, Comparison{
			Weights:        w,
			TotalScore:     total,
			Grade:          scoring.AssignGrade(total),
			Recommendation: scoring.Recommendation(total, breakdown),
		})
	}

	comparisonEntriesTotal.Add(float64(len(comparisons)))

	out := &CompareResult{
		RunID:          run.RunID,
		ChannelID:      run.ChannelID,
		ChannelTitle:   run.ChannelTitle,
		BrandName:      run.BrandName,
		Brand:          run.Brand,
		Sentiment:      run.Sentiment,
		ROI:            run.ROI,
		Comparisons:    comparisons,
		Degraded:       run.Degraded,
		Errors:         run.Errors,
		ElapsedSeconds: roundSeconds(time.Since(start)),
	}
	if s.bus != nil {
		event := bus.ComparisonCompletedEvent{
			RunID:       out.RunID,
			ChannelID:   out.ChannelID,
			BrandName:   out.BrandName,
			Comparisons: len(out.Comparisons),
		}
		if err := bus.PublishComparison(ctx, s.bus, event); err != nil {
			s.logger.Warn("failed to publish comparison event", "run_id", out.RunID, "error", err)
		}
	}
	return out, nil
}
