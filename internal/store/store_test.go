package store

import (
	"testing"
)

func TestChannelFilterDefaults(t *testing.T) {
	f := ChannelFilter{}
	if f.Limit != 0 {
		t.Errorf("expected 0 default limit, got %d", f.Limit)
	}
	if f.Category != "" {
		t.Error("expected empty category filter")
	}
	if f.MinSubscribers != 0 || f.MaxSubscribers != 0 {
		t.Error("expected no subscriber band by default")
	}
}

func TestChannelOptionalFields(t *testing.T) {
	ch := Channel{ID: "UC123", Title: "cooking daily"}
	if ch.SubscriberCount != nil {
		t.Error("expected nil subscriber count when unset")
	}
	if ch.EngagementRate != nil {
		t.Error("expected nil engagement rate when unset")
	}
	if ch.LastUpdated != nil {
		t.Error("expected nil last_updated when unset")
	}
}
