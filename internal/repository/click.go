package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/linkfolio/linkfolio/internal/model"
)

const clickColumns = `id, link_name, link_url, COALESCE(user_agent, ''),
	COALESCE(ip_address, ''), COALESCE(referrer, ''), occurred_at`

// InsertClick appends one click event.
func (r *EventRepository) InsertClick(ctx context.Context, click *model.Click) error {
	query := `
		INSERT INTO link_clicks (
			id, link_name, link_url, user_agent, ip_address, referrer, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.repo.pool.Exec(ctx, query,
		click.ID,
		click.LinkName,
		click.LinkURL,
		nullableString(click.UserAgent),
		nullableString(click.IPAddress),
		nullableString(click.Referrer),
		click.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert click: %w", err)
	}

	return nil
}

// ClicksSince returns all clicks with occurred_at >= since, oldest first.
func (r *EventRepository) ClicksSince(ctx context.Context, since time.Time) ([]model.Click, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM link_clicks
		WHERE occurred_at >= $1
		ORDER BY occurred_at ASC
	`, clickColumns)

	rows, err := r.repo.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("query clicks: %w", err)
	}
	defer rows.Close()

	return scanClicks(rows)
}

// RecentClicks returns the newest clicks with occurred_at >= since,
// newest first, capped at limit.
func (r *EventRepository) RecentClicks(ctx context.Context, since time.Time, limit int) ([]model.Click, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM link_clicks
		WHERE occurred_at >= $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`, clickColumns)

	rows, err := r.repo.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent clicks: %w", err)
	}
	defer rows.Close()

	return scanClicks(rows)
}

func scanClicks(rows pgx.Rows) ([]model.Click, error) {
	var clicks []model.Click
	for rows.Next() {
		var c model.Click
		if err := rows.Scan(
			&c.ID,
			&c.LinkName,
			&c.LinkURL,
			&c.UserAgent,
			&c.IPAddress,
			&c.Referrer,
			&c.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("scan click: %w", err)
		}
		clicks = append(clicks, c)
	}
	return clicks, rows.Err()
}
