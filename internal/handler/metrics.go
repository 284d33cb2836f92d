package handler

import (
	"fmt"
	"net/http"

	"github.com/linkfolio/linkfolio/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "linkfolio_events_ingested_total{kind=\"click\",status=\"recorded\"} %d\n", snap.ClicksRecorded)
	writeMetric(w, "linkfolio_events_ingested_total{kind=\"click\",status=\"dropped\"} %d\n", snap.ClicksDropped)
	writeMetric(w, "linkfolio_events_ingested_total{kind=\"visit\",status=\"recorded\"} %d\n", snap.VisitsRecorded)
	writeMetric(w, "linkfolio_events_ingested_total{kind=\"visit\",status=\"dropped\"} %d\n", snap.VisitsDropped)

	writeMetric(w, "linkfolio_summaries_computed_total{status=\"success\"} %d\n", snap.SummariesComputed)
	writeMetric(w, "linkfolio_summaries_computed_total{status=\"failed\"} %d\n", snap.SummariesFailed)
	writeMetric(w, "linkfolio_summary_duration_seconds_count %d\n", snap.SummaryDurationCount)
	writeMetric(w, "linkfolio_summary_duration_seconds_sum %.6f\n", float64(snap.SummaryDurationTotalNs)/1e9)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
