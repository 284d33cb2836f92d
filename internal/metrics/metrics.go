// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Ingestion metrics. kind is "click" or "visit";
	// status is "recorded" or "dropped".
	IncEventIngested(kind, status string)

	// Aggregation metrics. status is "success" or "failed".
	IncSummaryComputed(status string)
	ObserveSummaryDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
