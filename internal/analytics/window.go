package analytics

import "time"

// Time filter values accepted by the analytics endpoint.
const (
	FilterDay     = "1d"
	FilterWeek    = "7d"
	FilterMonth   = "30d"
	FilterAllTime = "all"
)

// DefaultFilter is applied when the caller supplies no time filter.
const DefaultFilter = FilterWeek

// WindowStart resolves a time filter to the inclusive lower bound of the
// aggregation window. Unrecognized filters resolve to all time.
func WindowStart(filter string, now time.Time) time.Time {
	switch filter {
	case FilterDay:
		return now.Add(-24 * time.Hour)
	case FilterWeek:
		return now.Add(-7 * 24 * time.Hour)
	case FilterMonth:
		return now.Add(-30 * 24 * time.Hour)
	default:
		return time.Unix(0, 0).UTC()
	}
}
