package metrics

import "time"

// NoopRecorder discards all metrics.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (*NoopRecorder) IncEventIngested(kind, status string)          {}
func (*NoopRecorder) IncSummaryComputed(status string)              {}
func (*NoopRecorder) ObserveSummaryDuration(duration time.Duration) {}
