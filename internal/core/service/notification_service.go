package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/coursehub/enrollment-api/internal/api/metrics"
	"github.com/coursehub/enrollment-api/internal/core/domain"
	"github.com/coursehub/enrollment-api/internal/core/ports"
)

// taskTTL bounds the idempotency window. A duplicate delivered after the key
// expires is treated as new; an accepted limitation, not a bug.
const taskTTL = time.Hour

// TaskGuard abstracts the shared idempotency store. Acquire must be an
// atomic set-if-absent: it returns true exactly once per key per TTL window,
// across all parallel workers.
type TaskGuard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type notificationService struct {
	enrollments ports.EnrollmentRepository
	guard       TaskGuard
	log         zerolog.Logger
}

// NewNotificationService returns the NotificationService implementation used
// by the background task runner.
func NewNotificationService(enrollments ports.EnrollmentRepository, guard TaskGuard, log zerolog.Logger) ports.NotificationService {
	return &notificationService{enrollments: enrollments, guard: guard, log: log}
}

// Process sends the enrollment notification for one job delivery. The queue
// delivers at least once, so the job guards itself: it acquires the
// task:send_email:{id} key before doing any work and becomes a no-op when
// the key is already held. A missing enrollment (deleted between enqueue and
// execution) is logged and dropped, never retried.
func (s *notificationService) Process(ctx context.Context, enrollmentID uint) error {
	key := fmt.Sprintf("task:send_email:%d", enrollmentID)

	acquired, err := s.guard.Acquire(ctx, key, taskTTL)
	if err != nil {
		// Guard store unreachable: prefer a possible duplicate email over a
		// lost one.
		s.log.Warn().Err(err).Uint("enrollment_id", enrollmentID).Msg("task guard unavailable, processing anyway")
	} else if !acquired {
		metrics.NotificationJobsTotal.WithLabelValues("skipped").Inc()
		s.log.Info().Uint("enrollment_id", enrollmentID).Msg("notification skipped, already processed")
		return nil
	}

	enrollment, err := s.enrollments.FindByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, domain.ErrEnrollmentNotFound) {
			metrics.NotificationJobsTotal.WithLabelValues("missing").Inc()
			s.log.Warn().Uint("enrollment_id", enrollmentID).Msg("enrollment no longer exists, dropping job")
			return nil
		}
		metrics.NotificationJobsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("notification job: %w", err)
	}

	// A real sender (SMTP, SendGrid) would go here.
	metrics.NotificationJobsTotal.WithLabelValues("sent").Inc()
	s.log.Info().
		Uint("student_id", enrollment.StudentID).
		Uint("course_id", enrollment.CourseID).
		Msg("Sending enrollment email")

	return nil
}
