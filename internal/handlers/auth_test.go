package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"virtual-museum/internal/auth"
	"virtual-museum/internal/database"
)

// fakeSessions is an in-memory auth.Sessions for middleware tests.
type fakeSessions struct {
	tokens   map[string]bool
	issueErr error
	extended int
}

func newFakeSessions(tokens ...string) *fakeSessions {
	m := make(map[string]bool)
	for _, tok := range tokens {
		m[tok] = true
	}
	return &fakeSessions{tokens: m}
}

func (f *fakeSessions) Issue(_ context.Context) (*database.Session, error) {
	if f.issueErr != nil {
		return nil, f.issueErr
	}
	f.tokens["issued-token"] = true
	return &database.Session{
		Token:     "issued-token",
		ExpiresAt: time.Now().Add(database.SessionDuration),
	}, nil
}

func (f *fakeSessions) Verify(_ context.Context, token string) error {
	if !f.tokens[token] {
		return errors.New("no such session")
	}
	return nil
}

func (f *fakeSessions) Extend(_ context.Context, token string) error {
	if !f.tokens[token] {
		return errors.New("no such session")
	}
	f.extended++
	return nil
}

func (f *fakeSessions) Revoke(_ context.Context, token string) error {
	delete(f.tokens, token)
	return nil
}

func newAuthHandlers(t *testing.T, sessions auth.Sessions) *Handlers {
	t.Helper()
	verifier, err := auth.NewPasswordVerifier(testPassword, "")
	if err != nil {
		t.Fatal(err)
	}
	return &Handlers{sessions: sessions, verifier: verifier}
}

func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{Name: SessionCookieName, Value: value}
}

func TestLoginSuccessSetsCookie(t *testing.T) {
	h := newAuthHandlers(t, newFakeSessions())

	w := doJSON(t, h.Login, http.MethodPost, "/api/auth/login", LoginRequest{Password: testPassword})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp AuthResponse
	decodeJSON(t, w, &resp)
	if !resp.Success {
		t.Error("expected success response")
	}
	if resp.ExpiresIn != int(database.SessionDuration.Seconds()) {
		t.Errorf("ExpiresIn = %d", resp.ExpiresIn)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
	if cookies[0].Value != "issued-token" {
		t.Errorf("cookie value = %q", cookies[0].Value)
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
	if cookies[0].SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", cookies[0].SameSite)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	sessions := newFakeSessions()
	h := newAuthHandlers(t, sessions)

	w := doJSON(t, h.Login, http.MethodPost, "/api/auth/login", LoginRequest{Password: "wrong"})

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("no cookie should be set on failed login")
	}
	if len(sessions.tokens) != 0 {
		t.Error("no session should be issued on failed login")
	}
}

func TestLoginBadBody(t *testing.T) {
	h := newAuthHandlers(t, newFakeSessions())

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	w := httptest.NewRecorder()
	h.Login(w, r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLoginIssueFailure(t *testing.T) {
	sessions := newFakeSessions()
	sessions.issueErr = errors.New("store down")
	h := newAuthHandlers(t, sessions)

	w := doJSON(t, h.Login, http.MethodPost, "/api/auth/login", LoginRequest{Password: testPassword})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestCheckAuth(t *testing.T) {
	h := newAuthHandlers(t, newFakeSessions("live-token"))

	tests := []struct {
		name   string
		cookie *http.Cookie
		want   bool
	}{
		{"no cookie", nil, false},
		{"stale token", sessionCookie("stale"), false},
		{"live token", sessionCookie("live-token"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
			if tt.cookie != nil {
				r.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()
			h.CheckAuth(w, r)

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			var resp map[string]bool
			decodeJSON(t, w, &resp)
			if resp["authenticated"] != tt.want {
				t.Errorf("authenticated = %v, want %v", resp["authenticated"], tt.want)
			}
		})
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	sessions := newFakeSessions("live-token")
	h := newAuthHandlers(t, sessions)

	r := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	r.AddCookie(sessionCookie("live-token"))
	w := httptest.NewRecorder()
	h.Logout(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if sessions.tokens["live-token"] {
		t.Error("session should be revoked")
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != "" {
		t.Error("expected cleared session cookie")
	}
}

func TestAuthMiddleware(t *testing.T) {
	sessions := newFakeSessions("live-token")
	h := newAuthHandlers(t, sessions)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	protected := h.AuthMiddleware(next)

	tests := []struct {
		name       string
		path       string
		cookie     *http.Cookie
		wantStatus int
	}{
		{"login endpoint is public", "/api/auth/login", nil, http.StatusNoContent},
		{"health is public", "/healthz", nil, http.StatusNoContent},
		{"login shell is public", "/", nil, http.StatusNoContent},
		{"api without session", "/api/rooms", nil, http.StatusUnauthorized},
		{"api with stale session", "/api/rooms", sessionCookie("stale"), http.StatusUnauthorized},
		{"api with live session", "/api/rooms", sessionCookie("live-token"), http.StatusNoContent},
		{"page without session redirects", "/rooms/our-first-date", nil, http.StatusFound},
		{"media without session redirects", "/media/trip/a.jpg", nil, http.StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != nil {
				r.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()
			protected.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}

	if sessions.extended == 0 {
		t.Error("live session should have been extended")
	}
}

func TestAuthMiddlewareSlidesCookie(t *testing.T) {
	h := newAuthHandlers(t, newFakeSessions("live-token"))

	protected := h.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	r := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	r.AddCookie(sessionCookie("live-token"))
	w := httptest.NewRecorder()
	protected.ServeHTTP(w, r)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected refreshed cookie, got %d cookies", len(cookies))
	}
	if cookies[0].Value != "live-token" {
		t.Errorf("cookie value = %q", cookies[0].Value)
	}
	if !cookies[0].Expires.After(time.Now().Add(29 * 24 * time.Hour)) {
		t.Error("cookie expiry was not pushed out")
	}
}
