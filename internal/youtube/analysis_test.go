package youtube

import "testing"

func ptrI64(v int64) *int64 { return &v }

func TestEngagementRateFromStats(t *testing.T) {
	stats := []VideoStats{
		{LikeCount: ptrI64(900), CommentCount: ptrI64(100)},
		{LikeCount: ptrI64(1800), CommentCount: ptrI64(200)},
	}
	// avg reactions = 1500, subs = 100000 -> 1.5%
	got := EngagementRateFromStats(stats, 100_000)
	if got == nil {
		t.Fatal("expected a rate, got nil")
	}
	if *got != 1.5 {
		t.Errorf("rate = %v, want 1.5", *got)
	}
}

func TestEngagementRateRounding(t *testing.T) {
	stats := []VideoStats{{LikeCount: ptrI64(1), CommentCount: ptrI64(0)}}
	got := EngagementRateFromStats(stats, 3000)
	if got == nil || *got != 0.03 {
		t.Errorf("rate = %v, want 0.03", got)
	}
}

func TestEngagementRateZeroSubscribers(t *testing.T) {
	if got := EngagementRateFromStats([]VideoStats{{LikeCount: ptrI64(10)}}, 0); got != nil {
		t.Errorf("expected nil for zero subscribers, got %v", *got)
	}
}

func TestEngagementRateNoVideos(t *testing.T) {
	got := EngagementRateFromStats(nil, 50_000)
	if got == nil || *got != 0.0 {
		t.Errorf("rate = %v, want 0.0", got)
	}
}

func TestEngagementRateMissingCounters(t *testing.T) {
	stats := []VideoStats{{ViewCount: ptrI64(5000)}}
	got := EngagementRateFromStats(stats, 10_000)
	if got == nil || *got != 0.0 {
		t.Errorf("rate = %v, want 0.0 when like/comment counts are absent", got)
	}
}
