package ports

import (
	"context"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
)

// AuditRepository persists audit events to the audit_events collection.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
