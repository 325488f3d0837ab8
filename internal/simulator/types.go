package simulator

import (
	"errors"
	"time"

	"github.com/sponsorscope/sponsorscope/internal/scoring"
)

var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrNoUploads       = errors.New("channel has no uploads playlist")
	ErrNoComments      = errors.New("no comments available")
)

const (
	DefaultNumVideos   = 3
	MinNumVideos       = 1
	MaxNumVideos       = 10
	DefaultMaxComments = 200
	MinMaxComments     = 50
	MaxMaxComments     = 500
)

// Request describes one simulation. Weights defaults to the configured
// weights when nil; NumVideos and MaxComments are clamped to their bounds.
type Request struct {
	ChannelID     string                `json:"channel_id"`
	BrandName     string                `json:"brand_name"`
	BrandCategory string                `json:"brand_category,omitempty"`
	Weights       *scoring.WeightConfig `json:"weights,omitempty"`
	NumVideos     int                   `json:"num_videos,omitempty"`
	MaxComments   int                   `json:"max_comments,omitempty"`
}

func (r *Request) normalize() {
	if r.NumVideos == 0 {
		r.NumVideos = DefaultNumVideos
	}
	if r.NumVideos < MinNumVideos {
		r.NumVideos = MinNumVideos
	}
	if r.NumVideos > MaxNumVideos {
		r.NumVideos = MaxNumVideos
	}
	if r.MaxComments == 0 {
		r.MaxComments = DefaultMaxComments
	}
	if r.MaxComments < MinMaxComments {
		r.MaxComments = MinMaxComments
	}
	if r.MaxComments > MaxMaxComments {
		r.MaxComments = MaxMaxComments
	}
}

// BrandScore is the brand-fit stage output.
type BrandScore struct {
	CompatibilityScore float64 `json:"compatibility_score"`
	ImageSimilarity    float64 `json:"image_similarity"`
	TextSimilarity     float64 `json:"text_similarity"`
	ToneMatch          float64 `json:"tone_match"`
	CategoryMatch      float64 `json:"category_match"`
	Detail             string  `json:"detail,omitempty"`
	AnalysisMethod     string  `json:"analysis_method"`
}

// SentimentScore is the audience-sentiment stage output.
type SentimentScore struct {
	Score         float64 `json:"score"`
	PositiveRatio float64 `json:"positive_ratio"`
	NegativeRatio float64 `json:"negative_ratio"`
	NeutralRatio  float64 `json:"neutral_ratio"`
	SampleCount   int     `json:"sample_count"`
}

// Result is a completed simulation run. Channel display fields are
// denormalized from the store record at run time.
type Result struct {
	RunID           string               `json:"run_id"`
	ChannelID       string               `json:"channel_id"`
	ChannelTitle    string               `json:"channel_title,omitempty"`
	ThumbnailURL    string               `json:"thumbnail_url,omitempty"`
	SubscriberCount *int64               `json:"subscriber_count,omitempty"`
	BrandName       string               `json:"brand_name"`
	Weights         scoring.WeightConfig `json:"weights"`
	Brand           BrandScore           `json:"brand"`
	Sentiment       SentimentScore       `json:"sentiment"`
	ROI             scoring.ROIEstimate  `json:"roi"`
	TotalScore      float64              `json:"total_score"`
	Grade           string               `json:"grade"`
	Recommendation  string               `json:"recommendation"`
	Degraded        bool                 `json:"degraded"`
	Errors          []string             `json:"errors,omitempty"`
	ElapsedSeconds  float64              `json:"elapsed_seconds"`
	CreatedAt       time.Time            `json:"created_at"`
}

// CompareRequest runs one simulation and recombines its sub-scores under
// each weight configuration. The first configuration drives the base run.
type CompareRequest struct {
	Request
	WeightConfigs []scoring.WeightConfig `json:"weight_configs"`
}

// Comparison is one weight configuration's recombined outcome.
type Comparison struct {
	Weights        scoring.WeightConfig `json:"weights"`
	TotalScore     float64              `json:"total_score"`
	Grade          string               `json:"grade"`
	Recommendation string               `json:"recommendation"`
	Error          string               `json:"error,omitempty"`
}

// CompareResult is a weight comparison over a single analysis pass.
type CompareResult struct {
	RunID          string              `json:"run_id"`
	ChannelID      string              `json:"channel_id"`
	ChannelTitle   string              `json:"channel_title,omitempty"`
	BrandName      string              `json:"brand_name"`
	Brand          BrandScore          `json:"brand"`
	Sentiment      SentimentScore      `json:"sentiment"`
	ROI            scoring.ROIEstimate `json:"roi"`
	Comparisons    []Comparison        `json:"comparisons"`
	Degraded       bool                `json:"degraded"`
	Errors         []string            `json:"errors,omitempty"`
	ElapsedSeconds float64             `json:"elapsed_seconds"`
}
