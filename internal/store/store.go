package store

import (
	"context"
	"time"
)

// Channel is the persisted metadata record for a creator channel. Numeric
// statistics are pointers because the platform API omits them for channels
// that hide their counters.
type Channel struct {
	ID          string `json:"channel_id"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	SubscriberCount *int64 `json:"subscriber_count,omitempty"`
	ViewCount       *int64 `json:"view_count,omitempty"`
	VideoCount      *int64 `json:"video_count,omitempty"`

	ThumbnailURL string     `json:"thumbnail_url,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	Country      string     `json:"country,omitempty"`

	// Enrichment maintained by the refresher
	Category       string     `json:"category,omitempty"`
	EstimatedPrice string     `json:"estimated_price,omitempty"`
	EngagementRate *float64   `json:"engagement_rate,omitempty"`
	LastUpdated    *time.Time `json:"last_updated,omitempty"`
}

type ChannelFilter struct {
	Category       string
	MinSubscribers int64
	MaxSubscribers int64
	Limit          int
	Offset         int
}

type ChannelStats struct {
	TotalChannels     int            `json:"total_channels"`
	ByCategory        map[string]int `json:"by_category"`
	AvgEngagementRate float64        `json:"avg_engagement_rate"`
}

// Store persists channel metadata. GetChannel returns (nil, nil) when the
// channel is unknown.
type Store interface {
	GetChannel(ctx context.Context, id string) (*Channel, error)
	ListChannels(ctx context.Context, filter ChannelFilter) ([]*Channel, error)
	UpsertChannel(ctx context.Context, ch *Channel) error
	DeleteChannel(ctx context.Context, id string) error

	GetStats(ctx context.Context) (*ChannelStats, error)

	Close() error
}
