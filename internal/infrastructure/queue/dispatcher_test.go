package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jiet-alumni/alumni-directory/internal/core/ports"
)

type recordingAudit struct {
	mu      sync.Mutex
	entries []ports.AuditEntry
	failOn  string
}

// Record fails like a real driver call would when ctx is already done.
func (r *recordingAudit) Record(ctx context.Context, e ports.AuditEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.Action == r.failOn {
		return errors.New("store down")
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *recordingAudit) snapshot() []ports.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.AuditEntry(nil), r.entries...)
}

func TestDispatcher_PersistsInOrderPerTarget(t *testing.T) {
	svc := &recordingAudit{}
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	for i := 0; i < 50; i++ {
		d.Enqueue(ports.AuditEntry{Action: fmt.Sprintf("step-%02d", i), TargetID: "alumni-1"})
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(svc.snapshot()) < 50 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	d.Wait()

	got := svc.snapshot()
	if len(got) != 50 {
		t.Fatalf("expected 50 entries, got %d", len(got))
	}
	for i, e := range got {
		if want := fmt.Sprintf("step-%02d", i); e.Action != want {
			t.Fatalf("entry %d out of order: got %s, want %s", i, e.Action, want)
		}
	}
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(8, &recordingAudit{}, zerolog.Nop())

	first := d.shardIndex("65f0c0ffee0000000000beef")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("65f0c0ffee0000000000beef"); got != first {
			t.Fatalf("shard changed: %d != %d", got, first)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard out of range: %d", first)
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	d := NewDispatcher(1, &recordingAudit{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(ports.AuditEntry{Action: "x", TargetID: "t"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full shard")
	}
	if n := len(d.workers[0]); n != channelBuffer {
		t.Errorf("expected full buffer of %d, got %d", channelBuffer, n)
	}
}

func TestDispatcher_DrainsOnShutdown(t *testing.T) {
	svc := &recordingAudit{failOn: "bad"}
	d := NewDispatcher(2, svc, zerolog.Nop())

	d.Enqueue(ports.AuditEntry{Action: "a", TargetID: "1"})
	d.Enqueue(ports.AuditEntry{Action: "bad", TargetID: "1"})
	d.Enqueue(ports.AuditEntry{Action: "b", TargetID: "2"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if got := len(svc.snapshot()); got != 2 {
		t.Errorf("expected 2 persisted entries, got %d", got)
	}
}

// Workers see both a cancelled ctx and ready entries at shutdown. Whichever
// select branch wins, every buffered entry must still be written.
func TestDispatcher_ShutdownWritesIgnoreCancellation(t *testing.T) {
	svc := &recordingAudit{}
	d := NewDispatcher(2, svc, zerolog.Nop())

	const n = 100
	for i := 0; i < n; i++ {
		d.Enqueue(ports.AuditEntry{Action: fmt.Sprintf("a-%d", i), TargetID: fmt.Sprintf("t-%d", i%2)})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if got := len(svc.snapshot()); got != n {
		t.Fatalf("expected %d persisted entries, got %d", n, got)
	}
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingAudit{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Errorf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
