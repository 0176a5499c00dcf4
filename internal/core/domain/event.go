package domain

import "time"

// Audit actions.
const (
	AuditUserRoleChanged     = "user.role_changed"
	AuditUserDeleted         = "user.deleted"
	AuditCredentialMigrated  = "user.credential_migrated"
	AuditBootstrapAdminGrant = "user.bootstrap_admin"
	AuditAlumniCreated       = "alumni.created"
	AuditAlumniUpdated       = "alumni.updated"
	AuditAlumniDeleted       = "alumni.deleted"
)

// AuditEvent records an administrative change for later review.
type AuditEvent struct {
	Action     string
	ActorID    string
	TargetType string
	TargetID   string
	Detail     map[string]string // optional
	OccurredAt time.Time
}
