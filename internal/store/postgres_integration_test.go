//go:build integration

package store

import (
	"context"
	"os"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *PostgresStore {
	t.Helper()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	s, err := NewPostgresStore(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	t.Cleanup(func() {
		_, _ = s.pool.Exec(ctx, "TRUNCATE channels")
		s.Close()
	})
	return s
}

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

func TestUpsertAndGetChannel(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	ch := &Channel{
		ID:              "UCintegration",
		Title:           "Integration Test",
		Description:     "test channel",
		SubscriberCount: i64(250_000),
		Category:        "tech",
		EstimatedPrice:  "standard",
		EngagementRate:  f64(1.75),
	}
	if err := s.UpsertChannel(ctx, ch); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := s.GetChannel(ctx, "UCintegration")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("channel not found after upsert")
	}
	if got.Title != "Integration Test" || got.Category != "tech" {
		t.Errorf("unexpected channel: %+v", got)
	}
	if got.SubscriberCount == nil || *got.SubscriberCount != 250_000 {
		t.Errorf("subscriber count = %v", got.SubscriberCount)
	}
	if got.LastUpdated == nil || time.Since(*got.LastUpdated) > time.Minute {
		t.Errorf("last_updated not maintained: %v", got.LastUpdated)
	}

	// Second upsert updates in place.
	ch.Title = "Renamed"
	if err := s.UpsertChannel(ctx, ch); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, err = s.GetChannel(ctx, "UCintegration")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Title != "Renamed" {
		t.Errorf("title = %q, want Renamed", got.Title)
	}
}

func TestGetChannelMissing(t *testing.T) {
	s := setupTestDB(t)

	got, err := s.GetChannel(context.Background(), "UCnope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown channel, got %+v", got)
	}
}

func TestListChannelsFiltered(t *testing.T) {
	s := setupTestDB(t)
	ctx := context.Background()

	seed := []*Channel{
		{ID: "UCa", Category: "tech", SubscriberCount: i64(900_000)},
		{ID: "UCb", Category: "tech", SubscriberCount: i64(150_000)},
		{ID: "UCc", Category: "gaming", SubscriberCount: i64(400_000)},
	}
	for _, ch := range seed {
		if err := s.UpsertChannel(ctx, ch); err != nil {
			t.Fatalf("seed upsert: %v", err)
		}
	}

	got, err := s.ListChannels(ctx, ChannelFilter{Category: "tech", MinSubscribers: 200_000, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "UCa" {
		t.Errorf("filtered list = %+v", got)
	}
}
