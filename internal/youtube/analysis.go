package youtube

import "math"

// EngagementRateFromStats derives the average per-video reaction rate against
// the subscriber base, as a percentage rounded to two decimals. Returns nil
// when the subscriber count is zero or unknown.
func EngagementRateFromStats(stats []VideoStats, subscriberCount int64) *float64 {
	if subscriberCount <= 0 {
		return nil
	}
	if len(stats) == 0 {
		zero := 0.0
		return &zero
	}
	var total int64
	for _, s := range stats {
		if s.LikeCount != nil {
			total += *s.LikeCount
		}
		if s.CommentCount != nil {
			total += *s.CommentCount
		}
	}
	avg := float64(total) / float64(len(stats))
	rate := math.Round(avg/float64(subscriberCount)*100*100) / 100
	return &rate
}
