// Package session implements the server-side session store: an opaque
// identifier mapped to a small authentication payload, carried to the
// client in a cookie.
package session

import (
	"context"
	"time"
)

// Session is the authentication payload keyed by an opaque id. It is a
// plain value passed explicitly through handlers, never ambient state.
type Session struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Authenticated bool      `json:"authenticated"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Store manages session lifecycles.
type Store interface {
	// Create establishes a new authenticated session for the user.
	Create(ctx context.Context, userID string) (*Session, error)

	// Get retrieves a session by id. Missing or expired sessions return
	// (nil, nil).
	Get(ctx context.Context, id string) (*Session, error)

	// Destroy removes a session. Destroying an absent session is a no-op.
	Destroy(ctx context.Context, id string) error

	// Touch resets the session's expiry to a full TTL (rolling renewal).
	// Touching an absent session is a no-op.
	Touch(ctx context.Context, id string) error
}
