package ports

import (
	"context"

	"github.com/coursehub/enrollment-api/internal/core/authz"
	"github.com/coursehub/enrollment-api/internal/core/domain"
)

// EnrollmentService defines the enrollment workflow.
//
// Enroll authorizes the actor (students only), persists the row relying on
// the store's uniqueness constraint, and enqueues a notification job
// best-effort: a queue failure is logged, never surfaced, and the created
// enrollment is returned regardless.
type EnrollmentService interface {
	List(ctx context.Context, actor authz.Actor) ([]domain.Enrollment, error)
	Enroll(ctx context.Context, actor authz.Actor, courseID uint) (*domain.Enrollment, error)
	Delete(ctx context.Context, actor authz.Actor, id uint) error
}
