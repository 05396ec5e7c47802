package auth

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"virtual-museum/internal/database"
)

// ErrNoCredential is returned when neither a plain password nor a
// bcrypt hash has been configured.
var ErrNoCredential = errors.New("no admin credential configured")

// PasswordVerifier checks a submitted password against the configured
// admin credential. Exactly one of the two forms is active: a bcrypt
// hash (preferred, produced by cmd/hashpw) or a plain shared secret
// compared in constant time.
type PasswordVerifier struct {
	hash  []byte
	plain []byte
}

// NewPasswordVerifier builds a verifier from the configured credential
// strings. The hash wins when both are set.
func NewPasswordVerifier(plain, bcryptHash string) (*PasswordVerifier, error) {
	if bcryptHash != "" {
		// Validate the hash shape up front so a typo fails at startup
		// instead of on the first login.
		if _, err := bcrypt.Cost([]byte(bcryptHash)); err != nil {
			return nil, errors.New("ADMIN_PASSWORD_HASH is not a valid bcrypt hash")
		}
		return &PasswordVerifier{hash: []byte(bcryptHash)}, nil
	}
	if plain != "" {
		return &PasswordVerifier{plain: []byte(plain)}, nil
	}
	return nil, ErrNoCredential
}

// Verify reports whether the submitted password matches the configured
// credential.
func (v *PasswordVerifier) Verify(password string) bool {
	if v.hash != nil {
		return bcrypt.CompareHashAndPassword(v.hash, []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare(v.plain, []byte(password)) == 1
}

// Sessions is the capability through which handlers issue and check
// visitor sessions, decoupled from the credential comparison itself.
type Sessions interface {
	// Issue creates a new session and returns its bearer token.
	Issue(ctx context.Context) (*database.Session, error)
	// Verify reports whether token names a live session.
	Verify(ctx context.Context, token string) error
	// Extend pushes a live session's expiry out (sliding expiration).
	Extend(ctx context.Context, token string) error
	// Revoke invalidates a session.
	Revoke(ctx context.Context, token string) error
}

// StoreSessions implements Sessions on top of the sessions table.
type StoreSessions struct {
	DB *database.Database
}

// Issue creates a new session in the store.
func (s *StoreSessions) Issue(ctx context.Context) (*database.Session, error) {
	return s.DB.CreateSession(ctx)
}

// Verify checks that token names a live session.
func (s *StoreSessions) Verify(ctx context.Context, token string) error {
	return s.DB.ValidateSession(ctx, token)
}

// Extend slides a session's expiry forward.
func (s *StoreSessions) Extend(ctx context.Context, token string) error {
	return s.DB.ExtendSession(ctx, token)
}

// Revoke deletes a session.
func (s *StoreSessions) Revoke(ctx context.Context, token string) error {
	return s.DB.DeleteSession(ctx, token)
}
