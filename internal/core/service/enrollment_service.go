package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/coursehub/enrollment-api/internal/api/metrics"
	"github.com/coursehub/enrollment-api/internal/core/authz"
	"github.com/coursehub/enrollment-api/internal/core/domain"
	"github.com/coursehub/enrollment-api/internal/core/ports"
)

// EnrollmentService implements the enrollment workflow: authorize, persist
// under the store's uniqueness constraint, then dispatch a best-effort
// notification job.
type EnrollmentService struct {
	repo    ports.EnrollmentRepository
	courses ports.CourseRepository
	queue   ports.NotificationQueue
	logger  zerolog.Logger
}

func NewEnrollmentService(repo ports.EnrollmentRepository, courses ports.CourseRepository, queue ports.NotificationQueue, logger zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{repo: repo, courses: courses, queue: queue, logger: logger}
}

// List returns the enrollments visible to the actor: students their own
// rows, instructors and admins all rows.
func (s *EnrollmentService) List(ctx context.Context, actor authz.Actor) ([]domain.Enrollment, error) {
	scope, err := authz.EnrollmentListScope(actor)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, scope)
}

// Enroll creates an enrollment for the acting student. The student field is
// forced to the actor. Uniqueness of (student, course) is guaranteed by the
// store constraint; the Exists pre-check only short-circuits the common
// case. Notification enqueue failures are logged and swallowed: the
// enrollment is returned regardless.
func (s *EnrollmentService) Enroll(ctx context.Context, actor authz.Actor, courseID uint) (*domain.Enrollment, error) {
	if err := authz.Authorize(actor, authz.ActionCreate, authz.Enrollments()); err != nil {
		return nil, err
	}

	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if exists, err := s.repo.Exists(ctx, actor.ID, courseID); err == nil && exists {
		metrics.EnrollmentsDuplicateTotal.Inc()
		return nil, domain.ErrDuplicateEnrollment
	}

	enrollment := &domain.Enrollment{
		StudentID: actor.ID,
		CourseID:  courseID,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		if errors.Is(err, domain.ErrDuplicateEnrollment) {
			// Race loser: a concurrent enroll for the same pair won.
			metrics.EnrollmentsDuplicateTotal.Inc()
			return nil, domain.ErrDuplicateEnrollment
		}
		s.logger.Error().Err(err).Uint("course_id", courseID).Msg("failed to create enrollment")
		return nil, err
	}

	// The create only writes the foreign key; attach the course we already
	// fetched so the caller can render the title without another load.
	enrollment.Course = *course

	metrics.EnrollmentsCreatedTotal.Inc()
	s.logger.Info().
		Uint("enrollment_id", enrollment.ID).
		Uint("student_id", actor.ID).
		Uint("course_id", courseID).
		Msg("enrollment created")

	if err := s.queue.Enqueue(ports.NotificationJob{EnrollmentID: enrollment.ID}); err != nil {
		metrics.NotificationEnqueueDropsTotal.Inc()
		s.logger.Warn().Err(err).Uint("enrollment_id", enrollment.ID).Msg("notification enqueue failed")
	}

	return enrollment, nil
}

// Delete removes an enrollment; only the owning student or an admin may.
func (s *EnrollmentService) Delete(ctx context.Context, actor authz.Actor, id uint) error {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authz.Authorize(actor, authz.ActionDelete, authz.Enrollment(enrollment)); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Uint("enrollment_id", id).Msg("failed to delete enrollment")
		return err
	}

	s.logger.Info().Uint("enrollment_id", id).Msg("enrollment deleted")
	return nil
}
