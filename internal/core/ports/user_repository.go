package ports

import (
	"context"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
)

// UserRepository defines the persistence operations of the credential store.
type UserRepository interface {
	// Create inserts a user. A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns every user, most recently created first.
	List(ctx context.Context) ([]*domain.User, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
	// UpdateCredential replaces the stored credential. Implementations must
	// reject legacy plaintext credentials with domain.ErrPlaintextCredential.
	UpdateCredential(ctx context.Context, id string, cred domain.Credential) error
	Delete(ctx context.Context, id string) error
	// ClaimBootstrapAdmin atomically reports whether the caller is creating
	// the very first account. At most one caller ever receives true.
	ClaimBootstrapAdmin(ctx context.Context) (bool, error)
	// ReleaseBootstrapAdmin returns an unused claim when the first account
	// could not be created, so the next registration can take it.
	ReleaseBootstrapAdmin(ctx context.Context) error
}
