package ports

import (
	"context"

	"github.com/coursehub/enrollment-api/internal/core/authz"
	"github.com/coursehub/enrollment-api/internal/core/domain"
)

// CourseFilter carries all query parameters for listing courses. Scope is
// always derived by the service layer from the actor, never from the client.
type CourseFilter struct {
	Scope    authz.CourseScope
	Search   string // optional: partial match on title or description
	Ordering string // "created_at" (default, newest first) or "price"
	Page     int    // 1-based
	Limit    int    // rows per page
}

// CourseRepository defines persistence operations for courses. Reads fill
// LessonsCount; Delete cascades to lessons and enrollments at the store
// level.
type CourseRepository interface {
	Create(ctx context.Context, c *domain.Course) error
	FindByID(ctx context.Context, id uint) (*domain.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]domain.Course, int64, error)
	Update(ctx context.Context, c *domain.Course) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// LessonRepository defines persistence operations for lessons. FindByID
// loads the parent course so authorization can follow ownership.
type LessonRepository interface {
	Create(ctx context.Context, l *domain.Lesson) error
	FindByID(ctx context.Context, id uint) (*domain.Lesson, error)
	List(ctx context.Context, scope authz.CourseScope) ([]domain.Lesson, error)
	Update(ctx context.Context, l *domain.Lesson) error
	Delete(ctx context.Context, id uint) error
}
