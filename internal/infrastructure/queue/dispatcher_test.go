package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/coursehub/enrollment-api/internal/core/ports"
)

type countingService struct {
	mu        sync.Mutex
	processed []uint
	done      chan struct{}
}

func (s *countingService) Process(_ context.Context, enrollmentID uint) error {
	s.mu.Lock()
	s.processed = append(s.processed, enrollmentID)
	s.mu.Unlock()
	if s.done != nil {
		s.done <- struct{}{}
	}
	return nil
}

func TestDispatcher_ProcessesEnqueuedJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	svc := &countingService{done: make(chan struct{}, 8)}
	d := NewDispatcher(2, svc, zerolog.Nop())
	d.Start(ctx)

	for id := uint(1); id <= 4; id++ {
		if err := d.Enqueue(ports.NotificationJob{EnrollmentID: id}); err != nil {
			t.Fatalf("enqueue %d: %v", id, err)
		}
	}

	for i := 0; i < 4; i++ {
		select {
		case <-svc.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d jobs", i)
		}
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.processed) != 4 {
		t.Errorf("processed %d jobs, want 4", len(svc.processed))
	}
}

func TestDispatcher_FullShardReturnsErrQueueFull(t *testing.T) {
	// Workers are never started, so the single shard's buffer fills up.
	d := NewDispatcher(1, &countingService{}, zerolog.Nop())

	var err error
	for i := 0; i < channelBuffer+1; i++ {
		if err = d.Enqueue(ports.NotificationJob{EnrollmentID: uint(i)}); err != nil {
			break
		}
	}
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got: %v", err)
	}
}

func TestDispatcher_ShardingIsStable(t *testing.T) {
	d := NewDispatcher(4, &countingService{}, zerolog.Nop())

	// The same enrollment id always lands on the same shard, so duplicate
	// deliveries of one job are serialized through a single worker.
	if err := d.Enqueue(ports.NotificationJob{EnrollmentID: 6}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := d.Enqueue(ports.NotificationJob{EnrollmentID: 6}); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	if got := len(d.workers[6%4]); got != 2 {
		t.Errorf("shard depth = %d, want both deliveries on one shard", got)
	}
}
