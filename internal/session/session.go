// Package session keeps server-side login state keyed by an opaque id.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"softveda-site/internal/domain"
)

const idBytes = 32

var (
	// ErrNotFound is returned for unknown or expired sessions.
	ErrNotFound = errors.New("session not found")
	// ErrUnavailable wraps failures of the backing store.
	ErrUnavailable = errors.New("session store unavailable")
)

// Session binds one identity to a server-generated id.
type Session struct {
	ID        string          `json:"-"`
	Identity  domain.Identity `json:"identity"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Store persists sessions. A session's identity never changes; switching
// identity means destroying the session and creating another.
type Store interface {
	Create(ctx context.Context, identity domain.Identity) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	// Destroy removes the session. Unknown ids are not an error.
	Destroy(ctx context.Context, id string) error
}

// NewID returns a random base64url session id.
func NewID() (string, error) {
	var b [idBytes]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b[:]), nil
}

func newSession(identity domain.Identity, ttl time.Duration, now time.Time) (*Session, error) {
	if err := identity.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session identity: %w", err)
	}
	id, err := NewID()
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:        id,
		Identity:  identity,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}, nil
}
