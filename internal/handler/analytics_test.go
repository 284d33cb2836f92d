package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linkfolio/linkfolio/internal/analytics"
	"github.com/linkfolio/linkfolio/internal/metrics"
	"github.com/linkfolio/linkfolio/internal/model"
)

type stubStore struct {
	clicks []model.Click
	visits []model.Visit
	err    error

	lastSince time.Time
}

func (s *stubStore) ClicksSince(ctx context.Context, since time.Time) ([]model.Click, error) {
	s.lastSince = since
	return s.clicks, s.err
}

func (s *stubStore) VisitsSince(ctx context.Context, since time.Time) ([]model.Visit, error) {
	return s.visits, s.err
}

func (s *stubStore) RecentClicks(ctx context.Context, since time.Time, limit int) ([]model.Click, error) {
	return s.clicks, s.err
}

func (s *stubStore) RecentVisits(ctx context.Context, since time.Time, limit int) ([]model.Visit, error) {
	return s.visits, s.err
}

func newAnalyticsHandler(store *stubStore) *AnalyticsHandler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	agg := analytics.New(store, logger, metrics.NewNoop())
	return NewAnalyticsHandler(agg, logger)
}

func TestGetAnalytics_ReturnsSummary(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	store := &stubStore{
		clicks: []model.Click{
			{ID: "c1", LinkName: "Portfolio", OccurredAt: now},
		},
		visits: []model.Visit{
			{ID: "v1", IPAddress: "1.2.3.4", OccurredAt: now},
		},
	}
	h := newAnalyticsHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/analytics?timeFilter=30d", nil)
	rec := httptest.NewRecorder()

	h.GetAnalytics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var summary model.AnalyticsSummary
	if err := json.NewDecoder(rec.Body).Decode(&summary); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if summary.TotalClicks != 1 {
		t.Errorf("TotalClicks = %d, want 1", summary.TotalClicks)
	}
	if summary.TotalVisits != 1 {
		t.Errorf("TotalVisits = %d, want 1", summary.TotalVisits)
	}
	if summary.UniqueVisitors != 1 {
		t.Errorf("UniqueVisitors = %d, want 1", summary.UniqueVisitors)
	}
}

func TestGetAnalytics_DefaultsToSevenDays(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	h := newAnalyticsHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/analytics", nil)
	rec := httptest.NewRecorder()

	h.GetAnalytics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	age := time.Since(store.lastSince)
	if age < 6*24*time.Hour || age > 8*24*time.Hour {
		t.Errorf("window start is %v old, want roughly 7 days", age)
	}
}

func TestGetAnalytics_StoreFailureReturns500(t *testing.T) {
	t.Parallel()

	store := &stubStore{err: errors.New("connection refused")}
	h := newAnalyticsHandler(store)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/analytics?timeFilter=7d", nil)
	rec := httptest.NewRecorder()

	h.GetAnalytics(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["error"] != "failed to fetch analytics" {
		t.Errorf("error = %q, want generic message", body["error"])
	}
}
