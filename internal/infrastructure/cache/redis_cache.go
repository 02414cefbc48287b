// Package cache implements the course cache coordinator. Two
// implementations exist behind ports.CourseCache, a Redis-backed store and
// a no-op, selected once at startup from the enable_cache flag. Call sites
// never branch on which one they hold.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/coursehub/enrollment-api/internal/api/metrics"
	"github.com/coursehub/enrollment-api/internal/core/domain"
	"github.com/coursehub/enrollment-api/internal/core/ports"
)

// detailTTL bounds staleness of course reads between writes; invalidation on
// write is the real consistency mechanism, the TTL is a backstop.
const (
	detailTTL = 300 * time.Second
	listKey   = "courses:list"
)

// RedisCourseCache is the Redis-backed read-through cache. All failures are
// swallowed and reported as misses: the cache is best-effort, never the
// source of truth.
type RedisCourseCache struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisCourseCache(client *redis.Client, log zerolog.Logger) *RedisCourseCache {
	return &RedisCourseCache{client: client, log: log}
}

func detailKey(id uint) string {
	return fmt.Sprintf("course:%d", id)
}

// GetCourse returns the cached course detail, or a miss.
func (c *RedisCourseCache) GetCourse(ctx context.Context, id uint) (*domain.Course, bool) {
	raw, err := c.client.Get(ctx, detailKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			metrics.CacheErrorsTotal.WithLabelValues("get").Inc()
			c.log.Warn().Err(err).Uint("course_id", id).Msg("cache read failed, falling back to store")
		}
		metrics.CacheOpsTotal.WithLabelValues("detail", "miss").Inc()
		return nil, false
	}

	course, err := decodeCourse(raw)
	if err != nil {
		metrics.CacheOpsTotal.WithLabelValues("detail", "miss").Inc()
		return nil, false
	}
	metrics.CacheOpsTotal.WithLabelValues("detail", "hit").Inc()
	return course, true
}

// SetCourse stores the course detail under course:{id} with the bounded TTL.
func (c *RedisCourseCache) SetCourse(ctx context.Context, course *domain.Course) {
	raw, err := encodeCourse(course)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, detailKey(course.ID), raw, detailTTL).Err(); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("set").Inc()
		c.log.Warn().Err(err).Uint("course_id", course.ID).Msg("cache write failed")
	}
}

// GetPublicList returns the cached public course listing and its
// store-reported total, or a miss.
func (c *RedisCourseCache) GetPublicList(ctx context.Context) ([]domain.Course, int64, bool) {
	raw, err := c.client.Get(ctx, listKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			metrics.CacheErrorsTotal.WithLabelValues("get").Inc()
			c.log.Warn().Err(err).Msg("cache read failed, falling back to store")
		}
		metrics.CacheOpsTotal.WithLabelValues("list", "miss").Inc()
		return nil, 0, false
	}

	courses, total, err := decodeCourseList(raw)
	if err != nil {
		metrics.CacheOpsTotal.WithLabelValues("list", "miss").Inc()
		return nil, 0, false
	}
	metrics.CacheOpsTotal.WithLabelValues("list", "hit").Inc()
	return courses, total, true
}

// SetPublicList stores the public course listing under courses:list.
func (c *RedisCourseCache) SetPublicList(ctx context.Context, courses []domain.Course, total int64) {
	raw, err := encodeCourseList(courses, total)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listKey, raw, detailTTL).Err(); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("set").Inc()
		c.log.Warn().Err(err).Msg("cache write failed")
	}
}

// Invalidate drops the detail and list keys in a single DEL. Callers invoke
// it after the write is persisted and before the request completes; the next
// read repopulates from the store and therefore observes post-write state.
func (c *RedisCourseCache) Invalidate(ctx context.Context, id uint) {
	metrics.CacheInvalidationsTotal.Inc()
	if err := c.client.Del(ctx, detailKey(id), listKey).Err(); err != nil {
		metrics.CacheErrorsTotal.WithLabelValues("invalidate").Inc()
		c.log.Warn().Err(err).Uint("course_id", id).Msg("cache invalidation failed")
	}
}

var _ ports.CourseCache = (*RedisCourseCache)(nil)
