package queue

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/coursehub/enrollment-api/internal/api/metrics"
	"github.com/coursehub/enrollment-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// ErrQueueFull is returned when a job cannot be accepted without blocking.
// Callers treat it as best-effort: the parent request must not fail.
var ErrQueueFull = errors.New("notification queue full")

// Dispatcher routes notification jobs to a fixed set of workers sharded by
// enrollment id. Delivery is at-least-once from the caller's point of view,
// so jobs guard themselves against duplicate execution.
type Dispatcher struct {
	workers []chan ports.NotificationJob
	service ports.NotificationService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.NotificationService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.NotificationJob, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.NotificationJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a job to the worker responsible for its enrollment id
// without blocking. A full shard returns ErrQueueFull instead of stalling
// the request path.
func (d *Dispatcher) Enqueue(job ports.NotificationJob) error {
	idx := int(job.EnrollmentID) % len(d.workers)
	select {
	case d.workers[idx] <- job:
		metrics.QueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.NotificationJob) {
	worker := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			metrics.QueueDepth.WithLabelValues(worker).Set(float64(len(ch)))

			start := time.Now()
			if err := d.service.Process(ctx, job.EnrollmentID); err != nil {
				d.log.Error().Err(err).
					Uint("enrollment_id", job.EnrollmentID).
					Int("worker_id", id).
					Msg("notification job failed")
			}
			metrics.JobDuration.Observe(time.Since(start).Seconds())
		}
	}
}

var _ ports.NotificationQueue = (*Dispatcher)(nil)
