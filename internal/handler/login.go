package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/linkfolio/linkfolio/internal/auth"
	"github.com/linkfolio/linkfolio/internal/clientip"
)

// SessionStore manages admin session tokens.
type SessionStore interface {
	CreateSession(ctx context.Context, token string) error
	DeleteSession(ctx context.Context, token string) error
}

// AuthHandler handles admin authentication requests.
type AuthHandler struct {
	verifier *auth.Verifier
	sessions SessionStore
	logger   *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(verifier *auth.Verifier, sessions SessionStore, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		sessions: sessions,
		logger:   logger.With("component", "handler.auth"),
	}
}

// loginRequest is the body of an admin login attempt.
type loginRequest struct {
	Password string `json:"password"`
}

// loginResponse carries the session token issued on success.
type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Login handles POST /api/admin/login.
// A wrong password and a malformed body both produce the same 401 so
// the response does not leak which part of the attempt failed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	body := io.LimitReader(r.Body, 4*1024)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		h.rejectLogin(w, r, "malformed login payload")
		return
	}

	if !h.verifier.Verify(req.Password) {
		h.rejectLogin(w, r, "wrong password")
		return
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		h.logger.Error("failed to generate session token", "error", err)
		writeErrorJSON(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	if err := h.sessions.CreateSession(r.Context(), token); err != nil {
		h.logger.Error("failed to store session", "error", err)
		writeErrorJSON(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	h.logger.Info("admin login succeeded", "ip", clientip.FromRequest(r))
	writeJSON(w, http.StatusOK, loginResponse{Success: true, Token: token})
}

// Logout handles POST /api/admin/logout.
// The route sits behind session auth, so the bearer token is present
// and valid by the time this runs.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token != "" {
		if err := h.sessions.DeleteSession(r.Context(), token); err != nil {
			h.logger.Warn("failed to delete session", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) rejectLogin(w http.ResponseWriter, r *http.Request, reason string) {
	h.logger.Warn("admin login rejected",
		"reason", reason,
		"ip", clientip.FromRequest(r),
	)
	writeErrorJSON(w, http.StatusUnauthorized, "invalid credentials")
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimPrefix(header, prefix)
}
