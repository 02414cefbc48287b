package ports

import (
	"context"

	"github.com/coursehub/enrollment-api/internal/core/authz"
	"github.com/coursehub/enrollment-api/internal/core/domain"
)

// EnrollmentRepository defines persistence operations for enrollments.
//
// Create must surface the store's (student, course) uniqueness violation as
// domain.ErrDuplicateEnrollment; that translation is the race-safe guarantee
// the workflow relies on.
type EnrollmentRepository interface {
	Create(ctx context.Context, e *domain.Enrollment) error
	FindByID(ctx context.Context, id uint) (*domain.Enrollment, error)
	List(ctx context.Context, scope authz.EnrollmentScope) ([]domain.Enrollment, error)
	Delete(ctx context.Context, id uint) error
	// Exists is a pre-check optimization only, not a correctness guarantee.
	Exists(ctx context.Context, studentID, courseID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}
