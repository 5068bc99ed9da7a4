package ports

import (
	"context"

	"github.com/rently/rently-client/internal/core/domain"
)

// SessionStore is the durable slot holding the current session across
// process restarts. An unavailable backend behaves like an empty slot.
type SessionStore interface {
	Save(ctx context.Context, identity *domain.Identity) error
	Clear(ctx context.Context) error
	// Restore returns (nil, nil) when the slot is empty, the payload is
	// malformed, or the backend is unavailable. It never fails a startup.
	Restore(ctx context.Context) (*domain.Identity, error)
}

// CookieMirror is a write-only broadcast of the session identity for
// consumers outside this process. It is never read back.
type CookieMirror interface {
	// Set writes the session cookie. The payload carries id, name and
	// role only; the credential must never reach the mirror.
	Set(identity *domain.Identity) error
	// Expire writes an immediately-expiring cookie to force removal.
	Expire() error
}
