package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
	"github.com/jiet-alumni/alumni-directory/internal/core/ports"
	"github.com/jiet-alumni/alumni-directory/internal/core/validation"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps the store offset well inside int range on every platform.
	MaxPage = 1_000_000
)

type AlumniService struct {
	repo   ports.AlumniRepository
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewAlumniService(repo ports.AlumniRepository, audit ports.AuditSink, logger zerolog.Logger) *AlumniService {
	if audit == nil {
		audit = discardAudit{}
	}
	return &AlumniService{repo: repo, audit: audit, logger: logger}
}

// Create validates and stores a new record.
func (s *AlumniService) Create(ctx context.Context, caller domain.Identity, in ports.AlumniInput) (*domain.Alumni, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := validation.ValidateAlumni(fieldsOf(in)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := normalize(in)
	record.CreatedAt = now
	record.UpdatedAt = now

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create alumni")
		return nil, fmt.Errorf("create alumni: %w", err)
	}

	s.logger.Info().Str("alumni_id", created.ID).Str("actor", caller.ID).Msg("alumni created")
	s.record(caller, domain.AuditAlumniCreated, created.ID)

	return created, nil
}

// List returns a page of the public directory.
func (s *AlumniService) List(ctx context.Context, in ports.ListAlumniInput) (*ports.AlumniPage, error) {
	page, limit := normalizePaging(in.Page, in.Limit)

	items, total, err := s.repo.List(ctx, ports.AlumniListFilter{
		Search: strings.TrimSpace(in.Query),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list alumni: %w", err)
	}
	if items == nil {
		items = []*domain.Alumni{}
	}

	return &ports.AlumniPage{Total: total, Page: page, Limit: limit, Items: items}, nil
}

func (s *AlumniService) Get(ctx context.Context, id string) (*domain.Alumni, error) {
	if !domain.IsValidID(id) {
		return nil, domain.ErrInvalidID
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get alumni: %w", err)
	}
	return a, nil
}

// Update replaces every mutable field of the record with the submitted values.
func (s *AlumniService) Update(ctx context.Context, caller domain.Identity, id string, in ports.AlumniInput) (*domain.Alumni, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !domain.IsValidID(id) {
		return nil, domain.ErrInvalidID
	}
	if err := validation.ValidateAlumni(fieldsOf(in)); err != nil {
		return nil, err
	}

	record := normalize(in)
	record.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Replace(ctx, id, record)
	if err != nil {
		return nil, fmt.Errorf("update alumni: %w", err)
	}

	s.logger.Info().Str("alumni_id", id).Str("actor", caller.ID).Msg("alumni updated")
	s.record(caller, domain.AuditAlumniUpdated, id)

	return updated, nil
}

func (s *AlumniService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	if !domain.IsValidID(id) {
		return domain.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete alumni: %w", err)
	}

	s.logger.Info().Str("alumni_id", id).Str("actor", caller.ID).Msg("alumni deleted")
	s.record(caller, domain.AuditAlumniDeleted, id)

	return nil
}

func (s *AlumniService) record(caller domain.Identity, action, id string) {
	s.audit.Enqueue(ports.AuditEntry{
		Action:     action,
		ActorID:    caller.ID,
		TargetType: "alumni",
		TargetID:   id,
		At:         time.Now().UTC(),
	})
}

func fieldsOf(in ports.AlumniInput) validation.AlumniFields {
	return validation.AlumniFields{
		Name:        in.Name,
		Email:       in.Email,
		RollNumber:  in.RollNumber,
		Batch:       in.Batch,
		Department:  in.Department,
		Company:     in.Company,
		Designation: in.Designation,
		Phone:       in.Phone,
		LinkedIn:    in.LinkedIn,
		Role:        in.Role,
	}
}

// normalize trims every field, lowercases the email and defaults the role.
func normalize(in ports.AlumniInput) *domain.Alumni {
	role := strings.TrimSpace(in.Role)
	if role == "" {
		role = domain.AlumniRoleStudent
	}
	return &domain.Alumni{
		Name:        strings.TrimSpace(in.Name),
		RollNumber:  strings.TrimSpace(in.RollNumber),
		Email:       domain.NormalizeEmail(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		Batch:       strings.TrimSpace(in.Batch),
		Department:  strings.TrimSpace(in.Department),
		Company:     strings.TrimSpace(in.Company),
		Designation: strings.TrimSpace(in.Designation),
		LinkedIn:    strings.TrimSpace(in.LinkedIn),
		Notes:       strings.TrimSpace(in.Notes),
		Role:        role,
	}
}

func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
