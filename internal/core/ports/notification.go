package ports

import "context"

// NotificationJob is the unit of work handed to the background task runner.
// It carries only the enrollment id; the worker reloads state from the store.
type NotificationJob struct {
	EnrollmentID uint
}

// NotificationQueue enqueues jobs for the background runner. Delivery is
// at-least-once; enqueue is non-blocking and returns an error when the queue
// cannot accept the job. Callers treat that error as best-effort: log and
// move on.
type NotificationQueue interface {
	Enqueue(job NotificationJob) error
}

// NotificationService processes a single notification job. It must be safe
// under duplicate delivery: each job guards itself with a set-if-absent
// idempotency key before doing any work.
type NotificationService interface {
	Process(ctx context.Context, enrollmentID uint) error
}
