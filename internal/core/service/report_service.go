package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/coursehub/enrollment-api/internal/core/ports"
)

// ReportService logs aggregate catalog counts. It is scheduled daily from
// main.
type ReportService struct {
	courses     ports.CourseRepository
	enrollments ports.EnrollmentRepository
	log         zerolog.Logger
}

func NewReportService(courses ports.CourseRepository, enrollments ports.EnrollmentRepository, log zerolog.Logger) *ReportService {
	return &ReportService{courses: courses, enrollments: enrollments, log: log}
}

// DailyReport counts courses and enrollments and logs the totals. Failures
// are logged, never propagated: the scheduler just tries again next run.
func (s *ReportService) DailyReport(ctx context.Context) {
	coursesCount, err := s.courses.Count(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("daily report: failed to count courses")
		return
	}
	enrollmentsCount, err := s.enrollments.Count(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("daily report: failed to count enrollments")
		return
	}

	s.log.Info().
		Int64("total_courses", coursesCount).
		Int64("total_enrollments", enrollmentsCount).
		Msg("daily report")
}
