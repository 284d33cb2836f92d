package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/linkfolio/linkfolio/internal/analytics"
)

// summaryTimeout bounds a full aggregation pass across event tables.
const summaryTimeout = 10 * time.Second

// AnalyticsHandler handles admin analytics requests.
type AnalyticsHandler struct {
	aggregator *analytics.Aggregator
	logger     *slog.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(aggregator *analytics.Aggregator, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		aggregator: aggregator,
		logger:     logger.With("component", "handler.analytics"),
	}
}

// GetAnalytics handles GET /api/admin/analytics?timeFilter={1d|7d|30d|all}.
// A missing filter defaults to the last seven days; an unrecognized
// value widens to the full history rather than failing the request.
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("timeFilter")
	if filter == "" {
		filter = analytics.DefaultFilter
	}

	ctx, cancel := context.WithTimeout(r.Context(), summaryTimeout)
	defer cancel()

	summary, err := h.aggregator.Summary(ctx, filter)
	if err != nil {
		h.logger.Error("failed to build analytics summary", "filter", filter, "error", err)
		writeErrorJSON(w, http.StatusInternalServerError, "failed to fetch analytics")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
