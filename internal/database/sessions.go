package database

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"virtual-museum/internal/logging"
	"virtual-museum/internal/metrics"
)

// Session represents an authenticated visitor session.
type Session struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionDuration is the length of time a session remains valid.
const SessionDuration = 30 * 24 * time.Hour

// CreateSession creates a new session and returns it with the unhashed
// token. Only the sha256 of the token is stored.
func (d *Database) CreateSession(ctx context.Context) (*Session, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("create_session", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tokenBytes := make([]byte, 32)
	if _, err = rand.Read(tokenBytes); err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	token := hex.EncodeToString(tokenBytes)
	expiresAt := time.Now().Add(SessionDuration)

	result, err := d.db.ExecContext(ctx,
		"INSERT INTO sessions (token, expires_at) VALUES (?, ?)",
		hashToken(tokenBytes), expiresAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	id, _ := result.LastInsertId()
	metrics.ActiveSessions.Inc()

	return &Session{
		ID:        id,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}, nil
}

// ValidateSession checks that a session token exists and has not
// expired. Expired sessions are removed in the background.
func (d *Database) ValidateSession(ctx context.Context, token string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("validate_session", start, err) }()

	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tokenHash, err := decodeAndHash(token)
	if err != nil {
		return err
	}

	var expiresAt int64
	err = d.db.QueryRowContext(ctx,
		"SELECT expires_at FROM sessions WHERE token = ?", tokenHash,
	).Scan(&expiresAt)
	if err != nil {
		err = fmt.Errorf("invalid session")
		return err
	}

	if time.Now().Unix() > expiresAt {
		// Clean up without blocking validation
		go func() {
			if delErr := d.deleteSessionByHash(tokenHash); delErr != nil {
				logging.Error("failed to delete expired session: %v", delErr)
			}
		}()
		err = fmt.Errorf("session expired")
		return err
	}

	return nil
}

// ExtendSession pushes a session's expiry out by the full session
// duration (sliding expiration).
func (d *Database) ExtendSession(ctx context.Context, token string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("extend_session", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tokenHash, err := decodeAndHash(token)
	if err != nil {
		return err
	}

	_, err = d.db.ExecContext(ctx,
		"UPDATE sessions SET expires_at = ? WHERE token = ?",
		time.Now().Add(SessionDuration).Unix(), tokenHash,
	)
	return err
}

// DeleteSession removes a session by its unhashed token.
func (d *Database) DeleteSession(ctx context.Context, token string) error {
	tokenHash, err := decodeAndHash(token)
	if err != nil {
		return err
	}

	if err := d.deleteSessionByHash(tokenHash); err != nil {
		return err
	}
	metrics.ActiveSessions.Dec()
	return nil
}

func (d *Database) deleteSessionByHash(tokenHash string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	_, err := d.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", tokenHash)
	return err
}

// CleanExpiredSessions removes all expired sessions.
func (d *Database) CleanExpiredSessions() error {
	start := time.Now()
	var err error
	defer func() { recordQuery("clean_expired_sessions", start, err) }()

	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE expires_at < ?", time.Now().Unix(),
	)
	if err != nil {
		return err
	}

	if removed, raErr := result.RowsAffected(); raErr == nil && removed > 0 {
		logging.Debug("Removed %d expired sessions", removed)
		metrics.ActiveSessions.Sub(float64(removed))
	}
	return nil
}

func hashToken(tokenBytes []byte) string {
	hash := sha256.Sum256(tokenBytes)
	return hex.EncodeToString(hash[:])
}

func decodeAndHash(token string) (string, error) {
	tokenBytes, err := hex.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("invalid token format")
	}
	return hashToken(tokenBytes), nil
}
