package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sponsorscope/sponsorscope/internal/brandai"
	"github.com/sponsorscope/sponsorscope/internal/bus"
	"github.com/sponsorscope/sponsorscope/internal/keywords"
	"github.com/sponsorscope/sponsorscope/internal/scoring"
	"github.com/sponsorscope/sponsorscope/internal/sentiment"
	"github.com/sponsorscope/sponsorscope/internal/store"
	"github.com/sponsorscope/sponsorscope/internal/youtube"
)

const fallbackScore = 50.0

type Simulator struct {
	store     store.Store
	youtube   youtube.Client
	brand     brandai.Client
	sentiment sentiment.Client
	bus       bus.Client
	defaults  scoring.WeightConfig
	logger    *slog.Logger
}

// New wires the simulation pipeline. The bus client may be nil when event
// publishing is disabled.
func New(s store.Store, yt youtube.Client, brand brandai.Client, sent sentiment.Client, b bus.Client, defaults scoring.WeightConfig, logger *slog.Logger) *Simulator {
	return &Simulator{
		store:     s,
		youtube:   yt,
		brand:     brand,
		sentiment: sent,
		bus:       b,
		defaults:  defaults,
		logger:    logger,
	}
}

// Run executes one full simulation. An unknown channel or an invalid weight
// configuration fails the run; an analysis stage failure substitutes that
// stage's neutral fallback and records the error instead.
func (s *Simulator) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	req.normalize()

	weights := s.defaults
	if req.Weights != nil {
		weights = *req.Weights
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	ch, err := s.store.GetChannel(ctx, req.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("load channel: %w", err)
	}
	if ch == nil {
		return nil, ErrChannelNotFound
	}

	var (
		brandScore        BrandScore
		sentScore         SentimentScore
		brandErr, sentErr error
	)
	// Brand and sentiment stages have no shared inputs, run them together.
	// Stage errors are collected, never returned, so one stage failing does
	// not cancel the other.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		brandScore, brandErr = s.brandStage(gctx, req, ch)
		return nil
	})
	g.Go(func() error {
		sentScore, sentErr = s.sentimentStage(gctx, req, ch)
		return nil
	})
	_ = g.Wait()

	roiScore, roiErr := s.roiStage(ctx, ch)

	var errs []string
	if brandErr != nil {
		brandScore = fallbackBrandScore()
		errs = append(errs, "brand: "+brandErr.Error())
		stageFallbacksTotal.WithLabelValues("brand").Inc()
	}
	if sentErr != nil {
		sentScore = fallbackSentimentScore()
		errs = append(errs, "sentiment: "+sentErr.Error())
		stageFallbacksTotal.WithLabelValues("sentiment").Inc()
	}
	if roiErr != nil {
		roiScore = fallbackROIEstimate()
		errs = append(errs, "roi: "+roiErr.Error())
		stageFallbacksTotal.WithLabelValues("roi").Inc()
	}

	breakdown := scoring.Breakdown{
		Brand:     brandScore.CompatibilityScore,
		Sentiment: sentScore.Score,
		ROI:       roiScore.ROIScore,
	}
	total := scoring.Combine(breakdown, weights)

	res := &Result{
		RunID:           uuid.NewString(),
		ChannelID:       ch.ID,
		ChannelTitle:    ch.Title,
		ThumbnailURL:    ch.ThumbnailURL,
		SubscriberCount: ch.SubscriberCount,
		BrandName:       req.BrandName,
		Weights:         weights,
		Brand:           brandScore,
		Sentiment:       sentScore,
		ROI:             roiScore,
		TotalScore:      total,
		Grade:           scoring.AssignGrade(total),
		Recommendation:  scoring.Recommendation(total, breakdown),
		Degraded:        len(errs) > 0,
		Errors:          errs,
		ElapsedSeconds:  roundSeconds(time.Since(start)),
		CreatedAt:       time.Now().UTC(),
	}

	outcome := "ok"
	if res.Degraded {
		outcome = "degraded"
	}
	simulationsTotal.WithLabelValues(outcome).Inc()
	simulationDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("simulation complete",
		"run_id", res.RunID,
		"channel_id", res.ChannelID,
		"brand", res.BrandName,
		"total_score", res.TotalScore,
		"grade", res.Grade,
		"degraded", res.Degraded,
	)
	s.publishRun(ctx, res)
	return res, nil
}

func (s *Simulator) brandStage(ctx context.Context, req Request, ch *store.Channel) (BrandScore, error) {
	profile := brandai.ChannelProfile{
		ChannelID:    ch.ID,
		Title:        ch.Title,
		Description:  ch.Description,
		Category:     ch.Category,
		Keywords:     keywords.Extract(ch.Title+" "+ch.Description, 10),
		ThumbnailURL: ch.ThumbnailURL,
	}
	comp, err := s.brand.AnalyzeCompatibility(ctx, req.BrandName, req.BrandCategory, profile)
	if err != nil {
		return BrandScore{}, err
	}
	method := comp.AnalysisMethod
	if method == "" {
		method = "service"
	}
	return BrandScore{
		CompatibilityScore: comp.CompatibilityScore,
		ImageSimilarity:    comp.ImageSimilarity,
		TextSimilarity:     comp.TextSimilarity,
		ToneMatch:          comp.ToneMatch,
		CategoryMatch:      comp.CategoryMatch,
		Detail:             comp.Detail,
		AnalysisMethod:     method,
	}, nil
}

func (s *Simulator) sentimentStage(ctx context.Context, req Request, ch *store.Channel) (SentimentScore, error) {
	playlistID, err := s.youtube.UploadsPlaylistID(ctx, ch.ID)
	if err != nil {
		return SentimentScore{}, err
	}
	if playlistID == "" {
		return SentimentScore{}, fmt.Errorf("channel %s: %w", ch.ID, ErrNoUploads)
	}
	videoIDs, err := s.youtube.RecentVideoIDs(ctx, playlistID, req.NumVideos)
	if err != nil {
		return SentimentScore{}, err
	}

	// MaxComments caps each video individually, so a run can analyze up to
	// NumVideos*MaxComments comments in total.
	var comments []string
	for _, videoID := range videoIDs {
		batch, err := s.youtube.CommentsForVideo(ctx, videoID, false, req.MaxComments)
		if err != nil {
			// A single comment-disabled video should not sink the stage.
			s.logger.Warn("comment fetch failed", "video_id", videoID, "error", err)
			continue
		}
		comments = append(comments, batch...)
	}
	if len(comments) == 0 {
		return SentimentScore{}, fmt.Errorf("channel %s: %w", ch.ID, ErrNoComments)
	}

	ratios, err := s.sentiment.ClassifyComments(ctx, comments)
	if err != nil {
		return SentimentScore{}, err
	}
	return SentimentScore{
		Score:         scoring.SentimentScoreFromRatios(ratios.PositiveRatio, ratios.NegativeRatio),
		PositiveRatio: ratios.PositiveRatio,
		NegativeRatio: ratios.NegativeRatio,
		NeutralRatio:  ratios.NeutralRatio,
		SampleCount:   len(comments),
	}, nil
}

func (s *Simulator) roiStage(ctx context.Context, ch *store.Channel) (scoring.ROIEstimate, error) {
	var subs int64
	if ch.SubscriberCount != nil {
		subs = *ch.SubscriberCount
	}

	rate := ch.EngagementRate
	if rate == nil && subs > 0 {
		live, err := s.liveEngagementRate(ctx, ch.ID, subs)
		if err != nil {
			return scoring.ROIEstimate{}, err
		}
		rate = live
	}
	if rate == nil {
		return scoring.ROIEstimate{}, scoring.ErrMissingInput
	}

	return scoring.EstimateROI(*rate, subs, scoring.EstimatedCostFor(ch.EstimatedPrice))
}

func (s *Simulator) liveEngagementRate(ctx context.Context, channelID string, subs int64) (*float64, error) {
	playlistID, err := s.youtube.UploadsPlaylistID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if playlistID == "" {
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrNoUploads)
	}
	videoIDs, err := s.youtube.RecentVideoIDs(ctx, playlistID, 5)
	if err != nil {
		return nil, err
	}
	stats, err := s.youtube.VideoStats(ctx, videoIDs)
	if err != nil {
		return nil, err
	}
	return youtube.EngagementRateFromStats(stats, subs), nil
}

func (s *Simulator) publishRun(ctx context.Context, res *Result) {
	if s.bus == nil {
		return
	}
	event := bus.SimulationCompletedEvent{
		RunID:          res.RunID,
		ChannelID:      res.ChannelID,
		BrandName:      res.BrandName,
		TotalScore:     res.TotalScore,
		Grade:          res.Grade,
		Degraded:       res.Degraded,
		FailedStages:   res.Errors,
		ElapsedSeconds: res.ElapsedSeconds,
	}
	if err := bus.PublishSimulationResult(ctx, s.bus, event); err != nil {
		s.logger.Warn("failed to publish simulation event", "run_id", res.RunID, "error", err)
	}
}

func fallbackBrandScore() BrandScore {
	return BrandScore{
		CompatibilityScore: fallbackScore,
		ImageSimilarity:    fallbackScore,
		TextSimilarity:     fallbackScore,
		ToneMatch:          fallbackScore,
		CategoryMatch:      fallbackScore,
		AnalysisMethod:     "fallback",
	}
}

func fallbackSentimentScore() SentimentScore {
	return SentimentScore{
		Score:         fallbackScore,
		PositiveRatio: 50,
		NegativeRatio: 25,
		NeutralRatio:  25,
		SampleCount:   0,
	}
}

func fallbackROIEstimate() scoring.ROIEstimate {
	return scoring.ROIEstimate{
		ROIScore:     fallbackScore,
		CostEstimate: scoring.DefaultCostEstimate,
	}
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
