package ports

import (
	"context"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
)

// AlumniInput carries the mutable fields of an alumni record as submitted.
type AlumniInput struct {
	Name        string
	RollNumber  string
	Email       string
	Phone       string
	Batch       string
	Department  string
	Company     string
	Designation string
	LinkedIn    string
	Notes       string
	Role        string
}

// ListAlumniInput carries all parameters for the list endpoint.
type ListAlumniInput struct {
	Query string
	Page  int
	Limit int
}

// AlumniPage is returned by List.
type AlumniPage struct {
	Total int64
	Page  int
	Limit int
	Items []*domain.Alumni
}

// AlumniService defines use-case operations for the alumni directory.
type AlumniService interface {
	Create(ctx context.Context, caller domain.Identity, in AlumniInput) (*domain.Alumni, error)
	List(ctx context.Context, in ListAlumniInput) (*AlumniPage, error)
	Get(ctx context.Context, id string) (*domain.Alumni, error)
	Update(ctx context.Context, caller domain.Identity, id string, in AlumniInput) (*domain.Alumni, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
}
