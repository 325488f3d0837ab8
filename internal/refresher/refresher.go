package refresher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sponsorscope/sponsorscope/internal/bus"
	"github.com/sponsorscope/sponsorscope/internal/config"
	"github.com/sponsorscope/sponsorscope/internal/scoring"
	"github.com/sponsorscope/sponsorscope/internal/store"
	"github.com/sponsorscope/sponsorscope/internal/youtube"
)

// Refresher crawls the platform API on an interval, keeping the channel
// catalog fresh. Discovery walks configured category keywords plus the
// platform's most-popular feed and keeps channels inside the configured
// subscriber band.
type Refresher struct {
	store   store.Store
	youtube youtube.Client
	bus     bus.Client
	cfg     *config.Config
	logger  *slog.Logger

	stopOnce sync.Once
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func New(s store.Store, yt youtube.Client, b bus.Client, cfg *config.Config, logger *slog.Logger) *Refresher {
	return &Refresher{
		store:   s,
		youtube: yt,
		bus:     b,
		cfg:     cfg,
		logger:  logger,
		stopCh:  make(chan struct{}),
	}
}

func (r *Refresher) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.crawlLoop(ctx)
}

func (r *Refresher) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}

// SetupSubscriptions wires on-demand refresh requests off the bus.
func (r *Refresher) SetupSubscriptions(ctx context.Context) error {
	if r.bus == nil {
		return nil
	}
	return r.bus.Subscribe(bus.SubjectRefreshRequest, func(_ string, data []byte) {
		var event bus.RefreshRequestEvent
		if err := json.Unmarshal(data, &event); err != nil {
			r.logger.Warn("bad refresh request payload", "error", err)
			return
		}
		if event.ChannelID == "" {
			return
		}
		if err := r.RefreshChannel(ctx, event.ChannelID); err != nil {
			r.logger.Error("on-demand refresh failed", "channel_id", event.ChannelID, "error", err)
		}
	})
}

func (r *Refresher) crawlLoop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.cfg.Refresher.Interval())
	defer ticker.Stop()

	// First crawl happens on startup, not one interval in.
	r.crawlOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			r.crawlOnce(ctx)
		}
	}
}

func (r *Refresher) crawlOnce(ctx context.Context) {
	started := time.Now()
	var discovered, updated, skipped int

	for category, keyword := range r.cfg.Refresher.Categories {
		ids, err := r.youtube.SearchChannels(ctx, keyword, r.cfg.Refresher.ChannelsPerCategory)
		if err != nil {
			r.logger.Error("category search failed", "category", category, "error", err)
			continue
		}
		details, err := r.youtube.ChannelDetails(ctx, ids, "search:"+category)
		if err != nil {
			r.logger.Error("channel lookup failed", "category", category, "error", err)
			continue
		}
		d, u, sk := r.ingestDetails(ctx, details, category)
		discovered += d
		updated += u
		skipped += sk
	}

	// Popularity pass: catches band-eligible channels the keyword set misses.
	// Discoveries from here stay uncategorized until a keyword crawl or an
	// operator classifies them.
	pages := (r.cfg.Refresher.ChannelsPerCategory + 49) / 50
	if ids, err := r.youtube.MostPopularChannels(ctx, pages); err != nil {
		r.logger.Error("popular channel lookup failed", "error", err)
	} else if len(ids) > 0 {
		details, err := r.youtube.ChannelDetails(ctx, ids, "popular")
		if err != nil {
			r.logger.Error("popular channel details failed", "error", err)
		} else {
			d, u, sk := r.ingestDetails(ctx, details, "")
			discovered += d
			updated += u
			skipped += sk
		}
	}

	r.logger.Info("crawl complete",
		"discovered", discovered,
		"updated", updated,
		"skipped", skipped,
		"elapsed", time.Since(started).Round(time.Second).String(),
	)
	if r.bus != nil {
		_ = r.bus.Publish(ctx, bus.SubjectCrawlStats, bus.CrawlStatsEvent{
			Discovered: discovered,
			Updated:    updated,
			Skipped:    skipped,
			Categories: len(r.cfg.Refresher.Categories),
			Timestamp:  time.Now().UTC(),
		})
	}
}

func (r *Refresher) ingestDetails(ctx context.Context, details []youtube.ChannelDetails, category string) (discovered, updated, skipped int) {
	for _, d := range details {
		if !r.inSubscriberBand(d.SubscriberCount) {
			skipped++
			continue
		}
		isNew, err := r.upsertFromDetails(ctx, d, category)
		if err != nil {
			r.logger.Error("channel upsert failed", "channel_id", d.ID, "error", err)
			continue
		}
		if isNew {
			discovered++
		} else {
			updated++
		}
	}
	return discovered, updated, skipped
}

// RefreshChannel re-fetches one channel's statistics and engagement rate,
// keeping its stored category.
func (r *Refresher) RefreshChannel(ctx context.Context, channelID string) error {
	existing, err := r.store.GetChannel(ctx, channelID)
	if err != nil {
		return err
	}
	category := ""
	if existing != nil {
		category = existing.Category
	}

	details, err := r.youtube.ChannelDetails(ctx, []string{channelID}, "refresh")
	if err != nil {
		return err
	}
	if len(details) == 0 {
		return fmt.Errorf("channel %s not found upstream", channelID)
	}
	_, err = r.upsertFromDetails(ctx, details[0], category)
	return err
}

func (r *Refresher) inSubscriberBand(subs *int64) bool {
	if subs == nil {
		return false
	}
	if min := r.cfg.Refresher.MinSubscribers; min > 0 && *subs < min {
		return false
	}
	if max := r.cfg.Refresher.MaxSubscribers; max > 0 && *subs > max {
		return false
	}
	return true
}

func (r *Refresher) upsertFromDetails(ctx context.Context, d youtube.ChannelDetails, category string) (isNew bool, err error) {
	existing, err := r.store.GetChannel(ctx, d.ID)
	if err != nil {
		return false, err
	}
	isNew = existing == nil

	ch := &store.Channel{
		ID:              d.ID,
		Title:           d.Title,
		Description:     d.Description,
		SubscriberCount: d.SubscriberCount,
		ViewCount:       d.ViewCount,
		VideoCount:      d.VideoCount,
		ThumbnailURL:    d.ThumbnailURL,
		PublishedAt:     d.PublishedAt,
		Country:         d.Country,
		Category:        category,
	}
	if existing != nil {
		if category == "" {
			ch.Category = existing.Category
		}
		ch.EstimatedPrice = existing.EstimatedPrice
	}
	if ch.EstimatedPrice == "" {
		// Unpriced channels stay quote-only until an operator sets a bracket.
		ch.EstimatedPrice = scoring.BracketQuote
	}
	ch.EngagementRate = r.measureEngagement(ctx, d)

	if err := r.store.UpsertChannel(ctx, ch); err != nil {
		return false, err
	}

	if r.bus != nil {
		event := bus.ChannelRefreshedEvent{
			ChannelID:       ch.ID,
			SubscriberCount: ch.SubscriberCount,
			EngagementRate:  ch.EngagementRate,
			Source:          d.Source,
		}
		_ = bus.PublishChannelUpdate(ctx, r.bus, event, isNew)
	}
	return isNew, nil
}

func (r *Refresher) measureEngagement(ctx context.Context, d youtube.ChannelDetails) *float64 {
	if d.SubscriberCount == nil || *d.SubscriberCount <= 0 {
		return nil
	}
	playlistID, err := r.youtube.UploadsPlaylistID(ctx, d.ID)
	if err != nil || playlistID == "" {
		return nil
	}
	videoIDs, err := r.youtube.RecentVideoIDs(ctx, playlistID, r.cfg.Refresher.VideosPerChannel)
	if err != nil || len(videoIDs) == 0 {
		return nil
	}
	stats, err := r.youtube.VideoStats(ctx, videoIDs)
	if err != nil {
		return nil
	}
	return youtube.EngagementRateFromStats(stats, *d.SubscriberCount)
}
