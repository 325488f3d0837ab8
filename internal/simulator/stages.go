package simulator

import (
	"context"
	"fmt"
	"strings"

	"github.com/sponsorscope/sponsorscope/internal/keywords"
	"github.com/sponsorscope/sponsorscope/internal/scoring"
)

// AnalyzeBrand runs only the brand-fit stage, without fallbacks.
func (s *Simulator) AnalyzeBrand(ctx context.Context, req Request) (*BrandScore, error) {
	req.normalize()
	ch, err := s.store.GetChannel(ctx, req.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("load channel: %w", err)
	}
	if ch == nil {
		return nil, ErrChannelNotFound
	}
	score, err := s.brandStage(ctx, req, ch)
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// AnalyzeSentiment runs only the audience-sentiment stage, without fallbacks.
func (s *Simulator) AnalyzeSentiment(ctx context.Context, req Request) (*SentimentScore, error) {
	req.normalize()
	ch, err := s.store.GetChannel(ctx, req.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("load channel: %w", err)
	}
	if ch == nil {
		return nil, ErrChannelNotFound
	}
	score, err := s.sentimentStage(ctx, req, ch)
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// CommentSummary pairs classifier ratios with the most frequent comment keywords.
type CommentSummary struct {
	Sentiment SentimentScore `json:"sentiment"`
	Keywords  []string       `json:"keywords"`
}

// SummarizeComments scores a caller-supplied comment batch directly.
func (s *Simulator) SummarizeComments(ctx context.Context, comments []string) (*CommentSummary, error) {
	if len(comments) == 0 {
		return nil, ErrNoComments
	}
	ratios, err := s.sentiment.ClassifyComments(ctx, comments)
	if err != nil {
		return nil, err
	}
	return &CommentSummary{
		Sentiment: SentimentScore{
			Score:         scoring.SentimentScoreFromRatios(ratios.PositiveRatio, ratios.NegativeRatio),
			PositiveRatio: ratios.PositiveRatio,
			NegativeRatio: ratios.NegativeRatio,
			NeutralRatio:  ratios.NeutralRatio,
			SampleCount:   len(comments),
		},
		Keywords: keywords.Extract(strings.Join(comments, " "), 10),
	}, nil
}
