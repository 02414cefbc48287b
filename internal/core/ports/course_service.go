package ports

import (
	"context"

	"github.com/coursehub/enrollment-api/internal/core/authz"
	"github.com/coursehub/enrollment-api/internal/core/domain"
)

// ListCoursesInput carries the list endpoint's query parameters.
type ListCoursesInput struct {
	Search   string
	Ordering string
	Page     int
	Limit    int
}

// CourseList is a page of courses plus paging metadata.
type CourseList struct {
	Items      []domain.Course
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// CreateCourseInput carries the client-supplied course fields. The owner is
// never client-supplied; it is forced to the acting user.
type CreateCourseInput struct {
	Title       string
	Description string
	Price       float64
	IsPublished bool
}

// UpdateCourseInput uses pointer fields so PATCH can send a subset; PUT sets
// all of them.
type UpdateCourseInput struct {
	Title       *string
	Description *string
	Price       *float64
	IsPublished *bool
}

// CourseService defines the course use cases. Every method takes the actor
// and applies the authorization engine before touching the store or cache.
type CourseService interface {
	List(ctx context.Context, actor authz.Actor, input ListCoursesInput) (*CourseList, error)
	Get(ctx context.Context, actor authz.Actor, id uint) (*domain.Course, error)
	Create(ctx context.Context, actor authz.Actor, input CreateCourseInput) (*domain.Course, error)
	Update(ctx context.Context, actor authz.Actor, id uint, input UpdateCourseInput) (*domain.Course, error)
	Delete(ctx context.Context, actor authz.Actor, id uint) error
}

// CreateLessonInput carries the client-supplied lesson fields. CourseID must
// reference an existing course owned by the actor (or the actor is admin).
type CreateLessonInput struct {
	CourseID    uint
	Title       string
	Content     string
	DurationMin int
	OrderIndex  int
}

// UpdateLessonInput uses pointer fields so PATCH can send a subset. The
// owning course cannot be changed after creation.
type UpdateLessonInput struct {
	Title       *string
	Content     *string
	DurationMin *int
	OrderIndex  *int
}

// LessonService defines the lesson use cases.
type LessonService interface {
	List(ctx context.Context, actor authz.Actor) ([]domain.Lesson, error)
	Get(ctx context.Context, actor authz.Actor, id uint) (*domain.Lesson, error)
	Create(ctx context.Context, actor authz.Actor, input CreateLessonInput) (*domain.Lesson, error)
	Update(ctx context.Context, actor authz.Actor, id uint, input UpdateLessonInput) (*domain.Lesson, error)
	Delete(ctx context.Context, actor authz.Actor, id uint) error
}
