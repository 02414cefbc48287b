package cache

import (
	"context"

	"github.com/coursehub/enrollment-api/internal/core/domain"
	"github.com/coursehub/enrollment-api/internal/core/ports"
)

// NoopCourseCache is the implementation selected when caching is disabled:
// every lookup misses, so all reads go straight to the store, and
// invalidation does nothing. Behavior at call sites is identical to a cache
// that never hits.
type NoopCourseCache struct{}

func NewNoopCourseCache() *NoopCourseCache {
	return &NoopCourseCache{}
}

func (NoopCourseCache) GetCourse(context.Context, uint) (*domain.Course, bool) { return nil, false }

func (NoopCourseCache) SetCourse(context.Context, *domain.Course) {}

func (NoopCourseCache) GetPublicList(context.Context) ([]domain.Course, int64, bool) {
	return nil, 0, false
}

func (NoopCourseCache) SetPublicList(context.Context, []domain.Course, int64) {}

func (NoopCourseCache) Invalidate(context.Context, uint) {}

var _ ports.CourseCache = NoopCourseCache{}
