package model

// AnalyticsSummary is the aggregated analytics view for API responses.
// It is recomputed from the event store on every request and never persisted.
// JSON field names follow the dashboard contract.
type AnalyticsSummary struct {
	TotalClicks    int64 `json:"totalClicks"`
	TotalVisits    int64 `json:"totalVisits"`
	UniqueVisitors int64 `json:"uniqueVisitors"`

	// Rankings, sorted descending by count. No fixed cutoff; the dashboard
	// slices for display.
	TopLinks     []LinkCount     `json:"topLinks"`
	TopPlatforms []PlatformCount `json:"topPlatforms"`

	// Sparse daily series: one entry per UTC date with at least one click,
	// ascending by date.
	ClicksByDay []DayCount `json:"clicksByDay"`

	// The most recent events in-window, newest first, capped at 50 each.
	RecentClicks []Click `json:"recentClicks"`
	RecentVisits []Visit `json:"recentVisits"`
}

// LinkCount represents clicks for a single link.
type LinkCount struct {
	Name   string `json:"name"`
	Clicks int64  `json:"clicks"`
}

// PlatformCount represents visits from a referrer platform.
type PlatformCount struct {
	Platform string `json:"platform"`
	Visits   int64  `json:"visits"`
}

// DayCount represents clicks on a single UTC calendar date.
type DayCount struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Clicks int64  `json:"clicks"`
}
