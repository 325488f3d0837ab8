package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const channelColumns = `channel_id, title, description,
	subscriber_count, view_count, video_count,
	thumbnail_url, published_at, country,
	category, estimated_price, engagement_rate, last_updated`

func (s *PostgresStore) GetChannel(ctx context.Context, id string) (*Channel, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+channelColumns+`
		FROM channels WHERE channel_id = $1`, id)
	ch, err := scanChannel(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func (s *PostgresStore) ListChannels(ctx context.Context, filter ChannelFilter) ([]*Channel, error) {
	query := `SELECT ` + channelColumns + ` FROM channels WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Category != "" {
		n++
		query += fmt.Sprintf(" AND category = $%d", n)
		args = append(args, filter.Category)
	}
	if filter.MinSubscribers > 0 {
		n++
		query += fmt.Sprintf(" AND subscriber_count >= $%d", n)
		args = append(args, filter.MinSubscribers)
	}
	if filter.MaxSubscribers > 0 {
		n++
		query += fmt.Sprintf(" AND subscriber_count <= $%d", n)
		args = append(args, filter.MaxSubscribers)
	}

	query += " ORDER BY subscriber_count DESC NULLS LAST, channel_id ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []*Channel
	for rows.Next() {
		ch, err := scanChannel(rows)
		if err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

func (s *PostgresStore) UpsertChannel(ctx context.Context, ch *Channel) error {
	now := time.Now()
	ch.LastUpdated = &now

	_, err := s.pool.Exec(ctx, `
		INSERT INTO channels (channel_id, title, description,
			subscriber_count, view_count, video_count,
			thumbnail_url, published_at, country,
			category, estimated_price, engagement_rate, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (channel_id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			subscriber_count = EXCLUDED.subscriber_count,
			view_count = EXCLUDED.view_count,
			video_count = EXCLUDED.video_count,
			thumbnail_url = EXCLUDED.thumbnail_url,
			published_at = COALESCE(EXCLUDED.published_at, channels.published_at),
			country = EXCLUDED.country,
			category = EXCLUDED.category,
			estimated_price = COALESCE(NULLIF(EXCLUDED.estimated_price, ''), channels.estimated_price),
			engagement_rate = EXCLUDED.engagement_rate,
			last_updated = EXCLUDED.last_updated`,
		ch.ID, ch.Title, ch.Description,
		ch.SubscriberCount, ch.ViewCount, ch.VideoCount,
		ch.ThumbnailURL, ch.PublishedAt, ch.Country,
		ch.Category, ch.EstimatedPrice, ch.EngagementRate, ch.LastUpdated,
	)
	return err
}

func (s *PostgresStore) DeleteChannel(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM channels WHERE channel_id = $1`, id)
	return err
}

func (s *PostgresStore) GetStats(ctx context.Context) (*ChannelStats, error) {
	stats := &ChannelStats{ByCategory: make(map[string]int)}
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(engagement_rate), 0)
		FROM channels`,
	).Scan(&stats.TotalChannels, &stats.AvgEngagementRate)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT category, COUNT(*)
		FROM channels WHERE category <> ''
		GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		stats.ByCategory[category] = count
	}
	return stats, rows.Err()
}

func scanChannel(row pgx.Row) (*Channel, error) {
	ch := &Channel{}
	err := row.Scan(
		&ch.ID, &ch.Title, &ch.Description,
		&ch.SubscriberCount, &ch.ViewCount, &ch.VideoCount,
		&ch.ThumbnailURL, &ch.PublishedAt, &ch.Country,
		&ch.Category, &ch.EstimatedPrice, &ch.EngagementRate, &ch.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return ch, nil
}
