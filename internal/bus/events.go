package bus

import (
	"context"
	"time"
)

type SimulationCompletedEvent struct {
	RunID          string   `json:"run_id"`
	ChannelID      string   `json:"channel_id"`
	BrandName      string   `json:"brand_name"`
	TotalScore     float64  `json:"total_score"`
	Grade          string   `json:"grade"`
	Degraded       bool     `json:"degraded"`
	FailedStages   []string `json:"failed_stages,omitempty"`
	ElapsedSeconds float64  `json:"elapsed_seconds"`
}

type ComparisonCompletedEvent struct {
	RunID       string `json:"run_id"`
	ChannelID   string `json:"channel_id"`
	BrandName   string `json:"brand_name"`
	Comparisons int    `json:"comparisons"`
}

type ChannelRefreshedEvent struct {
	ChannelID       string   `json:"channel_id"`
	SubscriberCount *int64   `json:"subscriber_count,omitempty"`
	EngagementRate  *float64 `json:"engagement_rate,omitempty"`
	Source          string   `json:"source,omitempty"`
}

type RefreshRequestEvent struct {
	ChannelID string `json:"channel_id"`
	Reason    string `json:"reason,omitempty"`
}

type CrawlStatsEvent struct {
	Discovered int       `json:"discovered"`
	Updated    int       `json:"updated"`
	Skipped    int       `json:"skipped"`
	Categories int       `json:"categories"`
	Timestamp  time.Time `json:"timestamp"`
}

// PublishSimulationResult routes a finished run to the completed or degraded
// subject depending on its outcome.
func PublishSimulationResult(ctx context.Context, c Client, e SimulationCompletedEvent) error {
	subject := SubjectSimulationCompleted(e.RunID)
	if e.Degraded {
		subject = SubjectSimulationDegraded(e.RunID)
	}
	return c.Publish(ctx, subject, e)
}

// PublishComparison announces a finished compare-weights run.
func PublishComparison(ctx context.Context, c Client, e ComparisonCompletedEvent) error {
	return c.Publish(ctx, SubjectComparisonCompleted(e.RunID), e)
}

// PublishChannelUpdate routes new channels to the discovered subject and
// known ones to the refreshed subject.
func PublishChannelUpdate(ctx context.Context, c Client, e ChannelRefreshedEvent, discovered bool) error {
	subject := SubjectChannelRefreshed(e.ChannelID)
	if discovered {
		subject = SubjectChannelDiscovered(e.ChannelID)
	}
	return c.Publish(ctx, subject, e)
}
