package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
	"github.com/jiet-alumni/alumni-directory/internal/core/ports"
)

// UserService implements admin account management.
type UserService struct {
	repo  ports.UserRepository
	audit ports.AuditSink
	log   zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditSink, log zerolog.Logger) *UserService {
	if audit == nil {
		audit = discardAudit{}
	}
	return &UserService{repo: repo, audit: audit, log: log}
}

func (s *UserService) Profile(ctx context.Context, caller domain.Identity) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, caller domain.Identity) ([]*domain.User, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ChangeRole sets the role of targetID. Callers may never change their own role.
func (s *UserService) ChangeRole(ctx context.Context, caller domain.Identity, targetID, role string) (*domain.User, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if !domain.IsValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	targetID = domain.CanonicalID(targetID)
	if targetID == domain.CanonicalID(caller.ID) {
		return nil, domain.ErrSelfRoleChange
	}

	updated, err := s.repo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, fmt.Errorf("change role: %w", err)
	}

	s.audit.Enqueue(ports.AuditEntry{
		Action:     domain.AuditUserRoleChanged,
		ActorID:    caller.ID,
		TargetType: "user",
		TargetID:   targetID,
		Detail:     map[string]string{"role": role},
		At:         time.Now().UTC(),
	})
	s.log.Info().Str("actor", caller.ID).Str("target", targetID).Str("role", role).Msg("user role changed")

	return updated, nil
}

// Delete removes targetID. Callers may never delete themselves.
func (s *UserService) Delete(ctx context.Context, caller domain.Identity, targetID string) error {
	if !caller.IsAdmin() {
		return domain.ErrForbidden
	}
	targetID = domain.CanonicalID(targetID)
	if targetID == domain.CanonicalID(caller.ID) {
		return domain.ErrSelfDelete
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.audit.Enqueue(ports.AuditEntry{
		Action:     domain.AuditUserDeleted,
		ActorID:    caller.ID,
		TargetType: "user",
		TargetID:   targetID,
		At:         time.Now().UTC(),
	})
	s.log.Info().Str("actor", caller.ID).Str("target", targetID).Msg("user deleted")

	return nil
}
