package ports

import (
	"context"
	"time"
)

// AuditEntry is the DTO handed from services to the audit dispatcher.
type AuditEntry struct {
	Action     string
	ActorID    string
	TargetType string
	TargetID   string
	Detail     map[string]string // optional
	At         time.Time
}

// AuditService persists audit entries.
type AuditService interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// AuditSink accepts audit entries without blocking the caller.
type AuditSink interface {
	Enqueue(entry AuditEntry)
}
