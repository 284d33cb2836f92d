package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/linkfolio/linkfolio/internal/clientip"
	"github.com/linkfolio/linkfolio/internal/ingest"
)

// maxTrackBodySize bounds tracking request bodies. Payloads carry at
// most a link name, a URL, a user agent, and a referrer.
const maxTrackBodySize = 16 * 1024

// TrackHandler handles public event tracking requests.
type TrackHandler struct {
	recorder *ingest.Recorder
	logger   *slog.Logger
}

// NewTrackHandler creates a new TrackHandler.
func NewTrackHandler(recorder *ingest.Recorder, logger *slog.Logger) *TrackHandler {
	return &TrackHandler{
		recorder: recorder,
		logger:   logger.With("component", "handler.track"),
	}
}

// visitRequest is the body of a page view event.
type visitRequest struct {
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer"`
}

// clickRequest is the body of a link click event.
type clickRequest struct {
	LinkName  string `json:"linkName"`
	LinkURL   string `json:"url"`
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer"`
}

// TrackVisit handles POST /api/track/visit.
// It always responds with success so a broken tracker can never take
// down page rendering on the client.
func (h *TrackHandler) TrackVisit(w http.ResponseWriter, r *http.Request) {
	var req visitRequest
	if err := decodeTrackBody(r, &req); err != nil {
		h.logger.Warn("malformed visit payload", "error", err, "ip", clientip.FromRequest(r))
	} else {
		h.recorder.RecordVisit(r.Context(), ingest.VisitInput{
			UserAgent:    req.UserAgent,
			Referrer:     req.Referrer,
			ForwardedFor: r.Header.Get(clientip.ForwardedForHeader),
			RealIP:       r.Header.Get(clientip.RealIPHeader),
		})
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// TrackClick handles POST /api/track/click.
func (h *TrackHandler) TrackClick(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := decodeTrackBody(r, &req); err != nil {
		h.logger.Warn("malformed click payload", "error", err, "ip", clientip.FromRequest(r))
	} else {
		h.recorder.RecordClick(r.Context(), ingest.ClickInput{
			LinkName:     req.LinkName,
			LinkURL:      req.LinkURL,
			UserAgent:    req.UserAgent,
			Referrer:     req.Referrer,
			ForwardedFor: r.Header.Get(clientip.ForwardedForHeader),
			RealIP:       r.Header.Get(clientip.RealIPHeader),
		})
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// decodeTrackBody parses a tracking payload. An empty body decodes to
// the zero value so beacons without a payload still get recorded.
func decodeTrackBody(r *http.Request, dst any) error {
	body := io.LimitReader(r.Body, maxTrackBodySize)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}
