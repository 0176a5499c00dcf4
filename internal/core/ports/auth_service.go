package ports

import (
	"context"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
)

// RegisterInput carries the fields submitted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string // requested role, optional
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *domain.User
	Token string
	// Migrated is set when a legacy plaintext credential was upgraded
	// during this login.
	Migrated bool
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Authenticate resolves a bearer token into the caller's identity.
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

// UserService covers the admin-only account management operations.
type UserService interface {
	// Profile returns the caller's own account.
	Profile(ctx context.Context, caller domain.Identity) (*domain.User, error)
	List(ctx context.Context, caller domain.Identity) ([]*domain.User, error)
	ChangeRole(ctx context.Context, caller domain.Identity, targetID, role string) (*domain.User, error)
	Delete(ctx context.Context, caller domain.Identity, targetID string) error
}
