package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jiet-alumni/alumni-directory/internal/core/domain"
	"github.com/jiet-alumni/alumni-directory/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAuditRepo struct {
	insertErr error
	inserted  []*domain.AuditEvent
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuditEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

// recordingSink captures entries a service hands to the dispatcher.
type recordingSink struct {
	entries []ports.AuditEntry
}

func (s *recordingSink) Enqueue(e ports.AuditEntry) {
	s.entries = append(s.entries, e)
}

func (s *recordingSink) actions() []string {
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Action)
	}
	return out
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestAuditService_Record_HappyPath(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	err := svc.Record(context.Background(), ports.AuditEntry{
		Action:     domain.AuditAlumniCreated,
		ActorID:    "admin-1",
		TargetType: "alumni",
		TargetID:   "a-1",
		At:         at,
	})

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("expected one audit event, got %d", len(repo.inserted))
	}
	got := repo.inserted[0]
	if got.Action != domain.AuditAlumniCreated || got.TargetID != "a-1" {
		t.Errorf("unexpected event: %+v", got)
	}
	if !got.OccurredAt.Equal(at) {
		t.Errorf("expected occurredAt %v, got %v", at, got.OccurredAt)
	}
}

func TestAuditService_Record_DefaultsTimestamp(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	before := time.Now()
	if err := svc.Record(context.Background(), ports.AuditEntry{Action: domain.AuditUserDeleted}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.inserted[0].OccurredAt.Before(before.Add(-time.Second)) {
		t.Errorf("expected timestamp to default to now, got %v", repo.inserted[0].OccurredAt)
	}
}

func TestAuditService_Record_MissingAction(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	err := svc.Record(context.Background(), ports.AuditEntry{TargetID: "x"})
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error, got: %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Errorf("expected nothing persisted")
	}
}

func TestAuditService_Record_RepoError(t *testing.T) {
	storeErr := errors.New("mongo down")
	svc := NewAuditService(&stubAuditRepo{insertErr: storeErr}, zerolog.Nop())

	err := svc.Record(context.Background(), ports.AuditEntry{Action: domain.AuditAlumniDeleted})
	if !errors.Is(err, storeErr) {
		t.Errorf("expected wrapped store error, got: %v", err)
	}
}
