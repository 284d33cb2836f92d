// Package analytics computes time-windowed summaries from the event store.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/linkfolio/linkfolio/internal/metrics"
	"github.com/linkfolio/linkfolio/internal/model"
)

// RecentLimit caps the recent-activity lists in a summary.
const RecentLimit = 50

// EventStore is the read side of the durable event store.
type EventStore interface {
	// ClicksSince returns all click events with OccurredAt >= since,
	// ascending by OccurredAt.
	ClicksSince(ctx context.Context, since time.Time) ([]model.Click, error)

	// VisitsSince returns all visit events with OccurredAt >= since,
	// ascending by OccurredAt.
	VisitsSince(ctx context.Context, since time.Time) ([]model.Visit, error)

	// RecentClicks returns up to limit click events with OccurredAt >= since,
	// descending by OccurredAt.
	RecentClicks(ctx context.Context, since time.Time, limit int) ([]model.Click, error)

	// RecentVisits returns up to limit visit events with OccurredAt >= since,
	// descending by OccurredAt.
	RecentVisits(ctx context.Context, since time.Time, limit int) ([]model.Visit, error)
}

// Aggregator recomputes the full analytics view on demand. It holds no
// incremental state; every summary is derived from a fresh store scan.
type Aggregator struct {
	store   EventStore
	logger  *slog.Logger
	metrics metrics.Recorder
}

// New creates a new Aggregator.
func New(store EventStore, logger *slog.Logger, recorder metrics.Recorder) *Aggregator {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &Aggregator{
		store:   store,
		logger:  logger.With("component", "analytics.aggregator"),
		metrics: recorder,
	}
}

// Summary computes the analytics summary for the given time filter.
// Any store failure aborts the whole computation; no partial summaries.
func (a *Aggregator) Summary(ctx context.Context, filter string) (*model.AnalyticsSummary, error) {
	started := time.Now()
	since := WindowStart(filter, time.Now().UTC())

	clicks, err := a.store.ClicksSince(ctx, since)
	if err != nil {
		a.metrics.IncSummaryComputed("failed")
		return nil, fmt.Errorf("fetch clicks: %w", err)
	}

	visits, err := a.store.VisitsSince(ctx, since)
	if err != nil {
		a.metrics.IncSummaryComputed("failed")
		return nil, fmt.Errorf("fetch visits: %w", err)
	}

	recentClicks, err := a.store.RecentClicks(ctx, since, RecentLimit)
	if err != nil {
		a.metrics.IncSummaryComputed("failed")
		return nil, fmt.Errorf("fetch recent clicks: %w", err)
	}

	recentVisits, err := a.store.RecentVisits(ctx, since, RecentLimit)
	if err != nil {
		a.metrics.IncSummaryComputed("failed")
		return nil, fmt.Errorf("fetch recent visits: %w", err)
	}

	summary := buildSummary(clicks, visits, recentClicks, recentVisits)

	duration := time.Since(started)
	a.metrics.IncSummaryComputed("success")
	a.metrics.ObserveSummaryDuration(duration)
	a.logger.Debug("summary computed",
		"filter", filter,
		"clicks", summary.TotalClicks,
		"visits", summary.TotalVisits,
		"duration_ms", float64(duration.Microseconds())/1000,
	)

	return summary, nil
}

// buildSummary derives all aggregates from the in-window event sets.
func buildSummary(clicks []model.Click, visits []model.Visit, recentClicks []model.Click, recentVisits []model.Visit) *model.AnalyticsSummary {
	uniqueIPs := make(map[string]struct{})
	linkCounts := make(map[string]int64)
	dayCounts := make(map[string]int64)
	platformCounts := make(map[string]int64)

	for _, c := range clicks {
		if c.IPAddress != "" {
			uniqueIPs[c.IPAddress] = struct{}{}
		}
		linkCounts[c.LinkName]++
		dayCounts[c.OccurredAt.UTC().Format("2006-01-02")]++
	}

	for _, v := range visits {
		if v.IPAddress != "" {
			uniqueIPs[v.IPAddress] = struct{}{}
		}
		if v.ReferrerPlatform != "" {
			platformCounts[v.ReferrerPlatform]++
		}
	}

	topLinks := make([]model.LinkCount, 0, len(linkCounts))
	for name, count := range linkCounts {
		topLinks = append(topLinks, model.LinkCount{Name: name, Clicks: count})
	}
	sort.Slice(topLinks, func(i, j int) bool {
		return topLinks[i].Clicks > topLinks[j].Clicks
	})

	topPlatforms := make([]model.PlatformCount, 0, len(platformCounts))
	for name, count := range platformCounts {
		topPlatforms = append(topPlatforms, model.PlatformCount{Platform: name, Visits: count})
	}
	sort.Slice(topPlatforms, func(i, j int) bool {
		return topPlatforms[i].Visits > topPlatforms[j].Visits
	})

	clicksByDay := make([]model.DayCount, 0, len(dayCounts))
	for date, count := range dayCounts {
		clicksByDay = append(clicksByDay, model.DayCount{Date: date, Clicks: count})
	}
	sort.Slice(clicksByDay, func(i, j int) bool {
		return clicksByDay[i].Date < clicksByDay[j].Date
	})

	if recentClicks == nil {
		recentClicks = []model.Click{}
	}
	if recentVisits == nil {
		recentVisits = []model.Visit{}
	}

	return &model.AnalyticsSummary{
		TotalClicks:    int64(len(clicks)),
		TotalVisits:    int64(len(visits)),
		UniqueVisitors: int64(len(uniqueIPs)),
		TopLinks:       topLinks,
		TopPlatforms:   topPlatforms,
		ClicksByDay:    clicksByDay,
		RecentClicks:   recentClicks,
		RecentVisits:   recentVisits,
	}
}
