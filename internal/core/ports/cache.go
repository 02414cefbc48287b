package ports

import (
	"context"

	"github.com/coursehub/enrollment-api/internal/core/domain"
)

// CourseCache is the course read cache. It is never the source of truth:
// implementations must swallow store failures and report a miss, so every
// component behaves identically whether caching is enabled, disabled, or
// broken. A no-op implementation backs the disabled flag; call sites never
// branch on it.
//
// Implementations must round-trip every field the read paths depend on,
// ownership included: a course served from the cache must authorize and
// render exactly like one loaded from the store.
//
// The public list is cached together with its store-reported total so a hit
// reports the same paging metadata as the miss that populated it.
//
// Invalidate removes both the detail key and the list key and must be called
// after the write is persisted and before the request completes.
type CourseCache interface {
	GetCourse(ctx context.Context, id uint) (*domain.Course, bool)
	SetCourse(ctx context.Context, c *domain.Course)
	GetPublicList(ctx context.Context) ([]domain.Course, int64, bool)
	SetPublicList(ctx context.Context, courses []domain.Course, total int64)
	Invalidate(ctx context.Context, id uint)
}
