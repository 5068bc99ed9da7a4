package ports

import (
	"context"

	"github.com/rently/rently-client/internal/core/domain"
)

// IdentityDirectory is the source of registered identities. Implementations
// range from a seeded local file (the mock era) to the remote identity
// service that is the eventual system of record.
type IdentityDirectory interface {
	// List returns every known identity in stable directory order.
	List(ctx context.Context) ([]domain.Identity, error)
	// Create stores a new identity and returns it with its assigned id.
	Create(ctx context.Context, n domain.NewIdentity) (*domain.Identity, error)
}
