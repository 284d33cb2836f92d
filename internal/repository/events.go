package repository

import (
	"github.com/linkfolio/linkfolio/internal/analytics"
	"github.com/linkfolio/linkfolio/internal/ingest"
)

// EventRepository provides database access for click and visit events.
// The two tables are append-only; no update or delete path exists.
//
// It implements ingest.EventWriter (the write side) and
// analytics.EventStore (the read side).
type EventRepository struct {
	repo *Repository
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(repo *Repository) *EventRepository {
	return &EventRepository{repo: repo}
}

var (
	_ ingest.EventWriter   = (*EventRepository)(nil)
	_ analytics.EventStore = (*EventRepository)(nil)
)
