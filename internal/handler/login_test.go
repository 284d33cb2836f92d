package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/linkfolio/linkfolio/internal/auth"
)

type fakeSessionStore struct {
	created   []string
	deleted   []string
	createErr error
}

func (f *fakeSessionStore) CreateSession(ctx context.Context, token string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	return nil
}

func (f *fakeSessionStore) DeleteSession(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return nil
}

func newAuthHandler(t *testing.T, sessions SessionStore) *AuthHandler {
	t.Helper()
	hash, err := auth.HashSecret("correct horse battery")
	if err != nil {
		t.Fatalf("hashing secret: %v", err)
	}
	verifier, err := auth.NewVerifier(hash, "")
	if err != nil {
		t.Fatalf("building verifier: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthHandler(verifier, sessions, logger)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	sessions := &fakeSessionStore{}
	h := newAuthHandler(t, sessions)

	body := `{"password":"correct horse battery"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp loginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.Token == "" {
		t.Fatal("expected a session token")
	}
	if len(sessions.created) != 1 || sessions.created[0] != resp.Token {
		t.Errorf("stored sessions = %v, want [%s]", sessions.created, resp.Token)
	}
}

func TestLogin_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "wrong password", body: `{"password":"guess"}`},
		{name: "empty password", body: `{"password":""}`},
		{name: "malformed body", body: `{"password":`},
		{name: "empty body", body: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sessions := &fakeSessionStore{}
			h := newAuthHandler(t, sessions)

			req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Login(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if body["error"] != "invalid credentials" {
				t.Errorf("error = %q, want invalid credentials", body["error"])
			}
			if len(sessions.created) != 0 {
				t.Errorf("sessions created = %d, want 0", len(sessions.created))
			}
		})
	}
}

func TestLogin_SessionStoreFailureReturns500(t *testing.T) {
	t.Parallel()

	sessions := &fakeSessionStore{createErr: errors.New("redis down")}
	h := newAuthHandler(t, sessions)

	body := `{"password":"correct horse battery"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

func TestLogout_DeletesSession(t *testing.T) {
	t.Parallel()

	sessions := &fakeSessionStore{}
	h := newAuthHandler(t, sessions)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.Header.Set("Authorization", "Bearer tok_123")
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(sessions.deleted) != 1 || sessions.deleted[0] != "tok_123" {
		t.Errorf("deleted sessions = %v, want [tok_123]", sessions.deleted)
	}
}
