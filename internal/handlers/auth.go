package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"virtual-museum/internal/database"
	"virtual-museum/internal/logging"
	"virtual-museum/internal/metrics"
)

// LoginRequest represents a login request with password only
type LoginRequest struct {
	Password string `json:"password"`
}

// AuthResponse represents the response from authentication endpoints
type AuthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	ExpiresIn int    `json:"expiresIn,omitempty"` // Seconds until session expires
}

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "museum_session"
)

// Login authenticates with the shared password
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !h.verifier.Verify(req.Password) {
		logging.Warn("Failed login attempt")
		metrics.AuthAttemptsTotal.WithLabelValues("failure").Inc()
		writeJSONError(w, "Invalid password", http.StatusUnauthorized)
		return
	}

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()

	session, err := h.sessions.Issue(ctx)
	if err != nil {
		logging.Error("Failed to create session: %v", err)
		writeJSONError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	logging.Info("Visitor logged in, session expires in %v", database.SessionDuration)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, AuthResponse{
		Success:   true,
		ExpiresIn: int(database.SessionDuration.Seconds()),
	})
}

// Logout ends the current session
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(SessionCookieName)
	if err == nil && cookie.Value != "" {
		// Best-effort session cleanup - don't fail logout if this errors
		if err := h.sessions.Revoke(ctx, cookie.Value); err != nil {
			logging.Error("failed to delete session during logout: %v", err)
		}
	}

	clearSessionCookie(w)

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, AuthResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

// CheckAuth reports whether the request carries a live session. It
// always answers 200 so the login shell can probe without tripping
// error handling.
func (h *Handlers) CheckAuth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	authenticated := false
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Verify(ctx, cookie.Value); err == nil {
			authenticated = true
		} else {
			clearSessionCookie(w)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]bool{"authenticated": authenticated})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// publicPath reports whether path is reachable without a session: the
// auth endpoints themselves, health probes, and the login shell with
// its assets.
func publicPath(path string) bool {
	if strings.HasPrefix(path, "/api/auth/") {
		return true
	}
	switch path {
	case "/", "/index.html", "/health", "/healthz", "/livez", "/readyz",
		"/version", "/favicon.ico", "/manifest.json":
		return true
	}
	return strings.HasSuffix(path, ".css") || strings.HasSuffix(path, ".js")
}

// AuthMiddleware protects routes that require authentication
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if publicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			rejectUnauthenticated(w, r)
			return
		}

		if err := h.sessions.Verify(ctx, cookie.Value); err != nil {
			clearSessionCookie(w)
			rejectUnauthenticated(w, r)
			return
		}

		// Sliding expiration
		if err := h.sessions.Extend(ctx, cookie.Value); err != nil {
			logging.Debug("Failed to extend session: %v", err)
		} else {
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    cookie.Value,
				Path:     "/",
				Expires:  time.Now().Add(database.SessionDuration),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r)
	})
}

// rejectUnauthenticated returns 401 for API requests and redirects
// page requests to the login shell.
func rejectUnauthenticated(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSONError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
