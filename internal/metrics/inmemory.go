package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	ClicksRecorded          uint64 `json:"clicks_recorded"`
	ClicksDropped           uint64 `json:"clicks_dropped"`
	VisitsRecorded          uint64 `json:"visits_recorded"`
	VisitsDropped           uint64 `json:"visits_dropped"`
	SummariesComputed       uint64 `json:"summaries_computed"`
	SummariesFailed         uint64 `json:"summaries_failed"`
	SummaryDurationCount    uint64 `json:"summary_duration_count"`
	SummaryDurationTotalNs  int64  `json:"summary_duration_total_ns"`
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	clicksRecorded         uint64
	clicksDropped          uint64
	visitsRecorded         uint64
	visitsDropped          uint64
	summariesComputed      uint64
	summariesFailed        uint64
	summaryDurationCount   uint64
	summaryDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		ClicksRecorded:         atomic.LoadUint64(&m.clicksRecorded),
		ClicksDropped:          atomic.LoadUint64(&m.clicksDropped),
		VisitsRecorded:         atomic.LoadUint64(&m.visitsRecorded),
		VisitsDropped:          atomic.LoadUint64(&m.visitsDropped),
		SummariesComputed:      atomic.LoadUint64(&m.summariesComputed),
		SummariesFailed:        atomic.LoadUint64(&m.summariesFailed),
		SummaryDurationCount:   atomic.LoadUint64(&m.summaryDurationCount),
		SummaryDurationTotalNs: atomic.LoadInt64(&m.summaryDurationTotalNs),
	}
}

// IncEventIngested increments the ingestion counter for kind/status.
func (m *InMemoryRecorder) IncEventIngested(kind, status string) {
	switch {
	case kind == "click" && status == "recorded":
		atomic.AddUint64(&m.clicksRecorded, 1)
	case kind == "click" && status == "dropped":
		atomic.AddUint64(&m.clicksDropped, 1)
	case kind == "visit" && status == "recorded":
		atomic.AddUint64(&m.visitsRecorded, 1)
	case kind == "visit" && status == "dropped":
		atomic.AddUint64(&m.visitsDropped, 1)
	}
}

// IncSummaryComputed increments the aggregation outcome counter.
func (m *InMemoryRecorder) IncSummaryComputed(status string) {
	if status == "success" {
		atomic.AddUint64(&m.summariesComputed, 1)
		return
	}
	atomic.AddUint64(&m.summariesFailed, 1)
}

// ObserveSummaryDuration records one aggregation duration.
func (m *InMemoryRecorder) ObserveSummaryDuration(duration time.Duration) {
	atomic.AddUint64(&m.summaryDurationCount, 1)
	atomic.AddInt64(&m.summaryDurationTotalNs, duration.Nanoseconds())
}
