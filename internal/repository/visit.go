package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/linkfolio/linkfolio/internal/model"
)

const visitColumns = `id, COALESCE(user_agent, ''), COALESCE(ip_address, ''),
	COALESCE(referrer, ''), COALESCE(referrer_platform, ''), occurred_at`

// InsertVisit appends one visit event.
func (r *EventRepository) InsertVisit(ctx context.Context, visit *model.Visit) error {
	query := `
		INSERT INTO page_visits (
			id, user_agent, ip_address, referrer, referrer_platform, occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.repo.pool.Exec(ctx, query,
		visit.ID,
		nullableString(visit.UserAgent),
		nullableString(visit.IPAddress),
		nullableString(visit.Referrer),
		nullableString(visit.ReferrerPlatform),
		visit.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}

	return nil
}

// VisitsSince returns all visits with occurred_at >= since, oldest first.
func (r *EventRepository) VisitsSince(ctx context.Context, since time.Time) ([]model.Visit, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM page_visits
		WHERE occurred_at >= $1
		ORDER BY occurred_at ASC
	`, visitColumns)

	rows, err := r.repo.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("query visits: %w", err)
	}
	defer rows.Close()

	return scanVisits(rows)
}

// RecentVisits returns the newest visits with occurred_at >= since,
// newest first, capped at limit.
func (r *EventRepository) RecentVisits(ctx context.Context, since time.Time, limit int) ([]model.Visit, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM page_visits
		WHERE occurred_at >= $1
		ORDER BY occurred_at DESC
		LIMIT $2
	`, visitColumns)

	rows, err := r.repo.pool.Query(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent visits: %w", err)
	}
	defer rows.Close()

	return scanVisits(rows)
}

func scanVisits(rows pgx.Rows) ([]model.Visit, error) {
	var visits []model.Visit
	for rows.Next() {
		var v model.Visit
		if err := rows.Scan(
			&v.ID,
			&v.UserAgent,
			&v.IPAddress,
			&v.Referrer,
			&v.ReferrerPlatform,
			&v.OccurredAt,
		); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
