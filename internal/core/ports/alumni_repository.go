package ports

import (
	"context"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
)

// AlumniListFilter carries the query parameters for the public directory.
// Only directory-visible records (role "student" or no role) are returned.
type AlumniListFilter struct {
	Search string // optional: case-insensitive substring on name, email, company, department
	Page   int    // 1-based
	Limit  int
}

// AlumniRepository defines persistence operations for alumni records.
type AlumniRepository interface {
	Create(ctx context.Context, a *domain.Alumni) (*domain.Alumni, error)
	FindByID(ctx context.Context, id string) (*domain.Alumni, error)
	// List returns a page of directory-visible records, newest first, and
	// the total number of matches ignoring pagination.
	List(ctx context.Context, filter AlumniListFilter) ([]*domain.Alumni, int64, error)
	// Replace overwrites every mutable field of the record.
	Replace(ctx context.Context, id string, a *domain.Alumni) (*domain.Alumni, error)
	Delete(ctx context.Context, id string) error
}
