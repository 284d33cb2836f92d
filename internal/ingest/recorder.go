// Package ingest provides best-effort capture of visit and click events.
package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/linkfolio/linkfolio/internal/clientip"
	"github.com/linkfolio/linkfolio/internal/metrics"
	"github.com/linkfolio/linkfolio/internal/model"
	"github.com/linkfolio/linkfolio/internal/platform"
)

const (
	// maxMetaLength bounds stored user agent and referrer values.
	maxMetaLength = 500

	// writeTimeout bounds the store write so a slow database never holds
	// up the caller's primary action.
	writeTimeout = 2 * time.Second
)

// EventWriter appends events to the durable store.
type EventWriter interface {
	InsertClick(ctx context.Context, click *model.Click) error
	InsertVisit(ctx context.Context, visit *model.Visit) error
}

// VisitInput carries the client-supplied fields of a page visit.
type VisitInput struct {
	UserAgent    string
	Referrer     string
	ForwardedFor string
	RealIP       string
}

// ClickInput carries the client-supplied fields of a link click.
type ClickInput struct {
	LinkName     string
	LinkURL      string
	UserAgent    string
	Referrer     string
	ForwardedFor string
	RealIP       string
}

// Recorder builds and appends events. Persistence failures are logged and
// swallowed: tracking must never break the user-facing action it
// instruments, so the recorder stays out of that action's critical path.
type Recorder struct {
	store   EventWriter
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewRecorder creates a new event Recorder.
func NewRecorder(store EventWriter, logger *slog.Logger, recorder metrics.Recorder) *Recorder {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Recorder{
		store:   store,
		logger:  logger.With("component", "ingest.recorder"),
		metrics: recorder,
	}
}

// RecordVisit appends one visit event. It never returns an error.
func (r *Recorder) RecordVisit(ctx context.Context, in VisitInput) {
	visit := &model.Visit{
		ID:               ulid.Make().String(),
		UserAgent:        truncateMeta(in.UserAgent),
		IPAddress:        clientip.FromHeaders(in.ForwardedFor, in.RealIP),
		Referrer:         truncateMeta(in.Referrer),
		ReferrerPlatform: platform.Classify(in.Referrer),
		OccurredAt:       time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := r.store.InsertVisit(ctx, visit); err != nil {
		r.logger.Warn("visit event dropped", "error", err)
		r.metrics.IncEventIngested("visit", "dropped")
		return
	}
	r.metrics.IncEventIngested("visit", "recorded")
}

// RecordClick appends one click event. It never returns an error.
func (r *Recorder) RecordClick(ctx context.Context, in ClickInput) {
	click := &model.Click{
		ID:         ulid.Make().String(),
		LinkName:   in.LinkName,
		LinkURL:    in.LinkURL,
		UserAgent:  truncateMeta(in.UserAgent),
		IPAddress:  clientip.FromHeaders(in.ForwardedFor, in.RealIP),
		Referrer:   truncateMeta(in.Referrer),
		OccurredAt: time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if err := r.store.InsertClick(ctx, click); err != nil {
		r.logger.Warn("click event dropped", "link_name", in.LinkName, "error", err)
		r.metrics.IncEventIngested("click", "dropped")
		return
	}
	r.metrics.IncEventIngested("click", "recorded")
}

// truncateMeta caps free-form metadata at maxMetaLength bytes.
func truncateMeta(s string) string {
	if len(s) > maxMetaLength {
		return s[:maxMetaLength]
	}
	return s
}
