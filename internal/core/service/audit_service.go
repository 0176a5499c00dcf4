package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
	"github.com/jiet-alumni/alumni-directory/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewAuditService returns an AuditService that persists entries through repo.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log, now: time.Now}
}

// Record normalizes and persists a single audit entry.
func (s *auditService) Record(ctx context.Context, in ports.AuditEntry) error {
	if in.Action == "" {
		return fmt.Errorf("record audit: %w", domain.NewValidationError("action", "audit action is required"))
	}

	at := in.At
	if at.IsZero() {
		at = s.now()
	}

	event := &domain.AuditEvent{
		Action:     in.Action,
		ActorID:    in.ActorID,
		TargetType: in.TargetType,
		TargetID:   in.TargetID,
		Detail:     in.Detail,
		OccurredAt: at.UTC(),
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("record audit: %w", err)
	}

	s.log.Debug().
		Str("action", in.Action).
		Str("actor", in.ActorID).
		Str("target", in.TargetID).
		Msg("audit event recorded")

	return nil
}

// discardAudit is used when no dispatcher is configured.
type discardAudit struct{}

func (discardAudit) Enqueue(ports.AuditEntry) {}
