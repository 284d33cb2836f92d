package analytics

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/linkfolio/linkfolio/internal/model"
)

// memStore is an in-memory EventStore for tests.
type memStore struct {
	clicks []model.Click
	visits []model.Visit
	err    error
}

func (s *memStore) ClicksSince(ctx context.Context, since time.Time) ([]model.Click, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []model.Click
	for _, c := range s.clicks {
		if !c.OccurredAt.Before(since) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

func (s *memStore) VisitsSince(ctx context.Context, since time.Time) ([]model.Visit, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []model.Visit
	for _, v := range s.visits {
		if !v.OccurredAt.Before(since) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

func (s *memStore) RecentClicks(ctx context.Context, since time.Time, limit int) ([]model.Click, error) {
	out, err := s.ClicksSince(ctx, since)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) RecentVisits(ctx context.Context, since time.Time, limit int) ([]model.Visit, error) {
	out, err := s.VisitsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newAggregator(store EventStore) *Aggregator {
	return New(store, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}

func click(name, ip string, at time.Time) model.Click {
	return model.Click{ID: name + at.String(), LinkName: name, IPAddress: ip, OccurredAt: at}
}

func visit(platform, ip string, at time.Time) model.Visit {
	return model.Visit{ID: platform + ip + at.String(), ReferrerPlatform: platform, IPAddress: ip, OccurredAt: at}
}

func TestSummary_Totals(t *testing.T) {
	now := time.Now().UTC()
	store := &memStore{
		clicks: []model.Click{
			click("Portfolio", "1.1.1.1", now.Add(-time.Hour)),
			click("Portfolio", "2.2.2.2", now.Add(-2*time.Hour)),
			click("Blog", "1.1.1.1", now.Add(-72*time.Hour)),
		},
		visits: []model.Visit{
			visit("Twitter/X", "1.1.1.1", now.Add(-time.Hour)),
			visit("", "3.3.3.3", now.Add(-40*24*time.Hour)),
		},
	}

	summary, err := newAggregator(store).Summary(context.Background(), FilterAllTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalClicks != 3 {
		t.Errorf("expected 3 clicks, got %d", summary.TotalClicks)
	}
	if summary.TotalVisits != 2 {
		t.Errorf("expected 2 visits, got %d", summary.TotalVisits)
	}
	if summary.UniqueVisitors != 3 {
		t.Errorf("expected 3 unique visitors, got %d", summary.UniqueVisitors)
	}
}

func TestSummary_WindowShrinkNeverIncreasesCounts(t *testing.T) {
	now := time.Now().UTC()
	store := &memStore{
		clicks: []model.Click{
			click("Portfolio", "1.1.1.1", now.Add(-time.Hour)),
			click("Blog", "2.2.2.2", now.Add(-3*24*time.Hour)),
			click("Blog", "3.3.3.3", now.Add(-20*24*time.Hour)),
		},
		visits: []model.Visit{
			visit("GitHub", "4.4.4.4", now.Add(-2*24*time.Hour)),
			visit("Reddit", "5.5.5.5", now.Add(-10*24*time.Hour)),
		},
	}

	agg := newAggregator(store)
	filters := []string{FilterAllTime, FilterMonth, FilterWeek, FilterDay}

	var prev *model.AnalyticsSummary
	for _, f := range filters {
		summary, err := agg.Summary(context.Background(), f)
		if err != nil {
			t.Fatalf("Summary(%q): %v", f, err)
		}
		if prev != nil {
			if summary.TotalClicks > prev.TotalClicks {
				t.Errorf("%s: totalClicks grew on window shrink", f)
			}
			if summary.TotalVisits > prev.TotalVisits {
				t.Errorf("%s: totalVisits grew on window shrink", f)
			}
			if summary.UniqueVisitors > prev.UniqueVisitors {
				t.Errorf("%s: uniqueVisitors grew on window shrink", f)
			}
		}
		prev = summary
	}
}

func TestSummary_UniqueVisitors(t *testing.T) {
	now := time.Now().UTC()
	store := &memStore{
		clicks: []model.Click{
			click("Portfolio", "1.1.1.1", now),
			click("Portfolio", "", now), // missing IP never counts
		},
		visits: []model.Visit{
			visit("GitHub", "1.1.1.1", now), // duplicate across kinds
			visit("GitHub", "2.2.2.2", now),
			visit("", "", now),
		},
	}

	summary, err := newAggregator(store).Summary(context.Background(), FilterAllTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.UniqueVisitors != 2 {
		t.Errorf("expected 2 unique visitors, got %d", summary.UniqueVisitors)
	}

	// Inserting another event with a known IP must not change the count.
	store.clicks = append(store.clicks, click("Blog", "2.2.2.2", now))
	summary, err = newAggregator(store).Summary(context.Background(), FilterAllTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.UniqueVisitors != 2 {
		t.Errorf("expected duplicate IP to keep 2 unique visitors, got %d", summary.UniqueVisitors)
	}
}

func TestSummary_TopLinksRanking(t *testing.T) {
	now := time.Now().UTC()
	store := &memStore{
		clicks: []model.Click{
			click("Blog", "1.1.1.1", now),
			click("Portfolio", "1.1.1.1", now),
			click("Portfolio", "1.1.1.1", now),
			click("Portfolio", "1.1.1.1", now),
			click("Contact", "1.1.1.1", now),
			click("Blog", "1.1.1.1", now),
		},
	}

	summary, err := newAggregator(store).Summary(context.Background(), FilterAllTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.TopLinks) != 3 {
		t.Fatalf("expected 3 ranked links, got %d", len(summary.TopLinks))
	}
	if summary.TopLinks[0].Name != "Portfolio" || summary.TopLinks[0].Clicks != 3 {
		t.Errorf("unexpected top link: %+v", summary.TopLinks[0])
	}

	var sum int64
	for i, entry := range summary.TopLinks {
		sum += entry.Clicks
		if i > 0 && entry.Clicks > summary.TopLinks[i-1].Clicks {
			t.Errorf("topLinks not sorted descending at %d", i)
		}
	}
	if sum != summary.TotalClicks {
		t.Errorf("topLinks sum %d != totalClicks %d", sum, summary.TotalClicks)
	}
}

func TestSummary_TopPlatforms(t *testing.T) {
	now := time.Now().UTC()
	store := &memStore{
		visits: []model.Visit{
			visit("GitHub", "1.1.1.1", now),
			visit("Twitter/X", "1.1.1.1", now),
			visit("Twitter/X", "1.1.1.1", now),
			visit("", "1.1.1.1", now), // direct visits are excluded
		},
	}

	summary, err := newAggregator(store).Summary(context.Background(), FilterAllTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.TopPlatforms) != 2 {
		t.Fatalf("expected 2 platforms, got %d", len(summary.TopPlatforms))
	}
	if summary.TopPlatforms[0].Platform != "Twitter/X" || summary.TopPlatforms[0].Visits != 2 {
		t.Errorf("unexpected top platform: %+v", summary.TopPlatforms[0])
	}
}

func TestSummary_ClicksByDay(t *testing.T) {
	day1 := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 6, 3, 23, 59, 0, 0, time.UTC)
	store := &memStore{
		clicks: []model.Click{
			click("A", "1.1.1.1", day2),
			click("A", "1.1.1.1", day1),
			click("B", "1.1.1.1", day1),
		},
	}

	summary, err := newAggregator(store).Summary(context.Background(), FilterAllTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Sparse series: the empty 2024-06-02 is omitted.
	if len(summary.ClicksByDay) != 2 {
		t.Fatalf("expected 2 day entries, got %d", len(summary.ClicksByDay))
	}
	if summary.ClicksByDay[0].Date != "2024-06-01" || summary.ClicksByDay[0].Clicks != 2 {
		t.Errorf("unexpected first day: %+v", summary.ClicksByDay[0])
	}
	if summary.ClicksByDay[1].Date != "2024-06-03" || summary.ClicksByDay[1].Clicks != 1 {
		t.Errorf("unexpected second day: %+v", summary.ClicksByDay[1])
	}

	var sum int64
	for i, entry := range summary.ClicksByDay {
		sum += entry.Clicks
		if i > 0 && entry.Date <= summary.ClicksByDay[i-1].Date {
			t.Errorf("clicksByDay not strictly ascending at %d", i)
		}
	}
	if sum != summary.TotalClicks {
		t.Errorf("clicksByDay sum %d != totalClicks %d", sum, summary.TotalClicks)
	}
}

func TestSummary_RecentLists(t *testing.T) {
	now := time.Now().UTC()
	store := &memStore{}
	for i := 0; i < RecentLimit+10; i++ {
		store.clicks = append(store.clicks, click("A", "1.1.1.1", now.Add(-time.Duration(i)*time.Minute)))
	}
	store.visits = append(store.visits, visit("GitHub", "1.1.1.1", now))

	summary, err := newAggregator(store).Summary(context.Background(), FilterAllTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.RecentClicks) != RecentLimit {
		t.Errorf("expected %d recent clicks, got %d", RecentLimit, len(summary.RecentClicks))
	}
	for i := 1; i < len(summary.RecentClicks); i++ {
		if summary.RecentClicks[i].OccurredAt.After(summary.RecentClicks[i-1].OccurredAt) {
			t.Fatalf("recentClicks not newest-first at %d", i)
		}
	}
	if len(summary.RecentVisits) != 1 {
		t.Errorf("expected 1 recent visit, got %d", len(summary.RecentVisits))
	}
}

func TestSummary_EmptyStore(t *testing.T) {
	summary, err := newAggregator(&memStore{}).Summary(context.Background(), FilterWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalClicks != 0 || summary.TotalVisits != 0 || summary.UniqueVisitors != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
	// Slices must be present (serialize as [] rather than null).
	if summary.TopLinks == nil || summary.TopPlatforms == nil || summary.ClicksByDay == nil ||
		summary.RecentClicks == nil || summary.RecentVisits == nil {
		t.Error("expected non-nil slices in empty summary")
	}
}

func TestSummary_StoreFailureAborts(t *testing.T) {
	store := &memStore{err: errors.New("connection refused")}
	summary, err := newAggregator(store).Summary(context.Background(), FilterWeek)
	if err == nil {
		t.Fatal("expected error")
	}
	if summary != nil {
		t.Error("expected no partial summary on failure")
	}
}

func TestSummary_EndToEndScenario(t *testing.T) {
	now := time.Now().UTC()
	store := &memStore{
		visits: []model.Visit{
			{ID: "v1", Referrer: "https://t.co/abc", ReferrerPlatform: "Twitter/X", OccurredAt: now},
		},
		clicks: []model.Click{
			{ID: "c1", LinkName: "Portfolio", OccurredAt: now},
		},
	}

	summary, err := newAggregator(store).Summary(context.Background(), FilterAllTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalVisits != 1 || summary.TotalClicks != 1 {
		t.Errorf("expected 1 visit and 1 click, got %d / %d", summary.TotalVisits, summary.TotalClicks)
	}
	if len(summary.TopPlatforms) != 1 || summary.TopPlatforms[0] != (model.PlatformCount{Platform: "Twitter/X", Visits: 1}) {
		t.Errorf("unexpected topPlatforms: %+v", summary.TopPlatforms)
	}
	if len(summary.TopLinks) != 1 || summary.TopLinks[0] != (model.LinkCount{Name: "Portfolio", Clicks: 1}) {
		t.Errorf("unexpected topLinks: %+v", summary.TopLinks)
	}
}
