// Package export renders channel catalog snapshots for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/sponsorscope/sponsorscope/internal/store"
)

var csvHeader = []string{
	"channel_id", "title", "category", "country",
	"subscriber_count", "view_count", "video_count",
	"engagement_rate", "estimated_price", "published_at", "last_updated",
}

// WriteChannelsCSV streams the given channels as CSV. Missing numeric fields
// render as empty cells.
func WriteChannelsCSV(w io.Writer, channels []*store.Channel) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, ch := range channels {
		row := []string{
			ch.ID,
			ch.Title,
			ch.Category,
			ch.Country,
			formatInt(ch.SubscriberCount),
			formatInt(ch.ViewCount),
			formatInt(ch.VideoCount),
			formatFloat(ch.EngagementRate),
			ch.EstimatedPrice,
			formatTime(ch.PublishedAt),
			formatTime(ch.LastUpdated),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatInt(v *int64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%d", *v)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
