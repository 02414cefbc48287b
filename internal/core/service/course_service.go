package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/coursehub/enrollment-api/internal/core/authz"
	"github.com/coursehub/enrollment-api/internal/core/domain"
	"github.com/coursehub/enrollment-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CourseService implements the course use cases with a read-through cache.
// The cache is best-effort: it degrades to direct store reads and the
// service never branches on whether caching is enabled.
type CourseService struct {
	repo   ports.CourseRepository
	cache  ports.CourseCache
	logger zerolog.Logger
}

func NewCourseService(repo ports.CourseRepository, cache ports.CourseCache, logger zerolog.Logger) *CourseService {
	return &CourseService{repo: repo, cache: cache, logger: logger}
}

// List returns the courses visible to the actor. Only the anonymous default
// listing (no search, first page, default ordering) is served from the
// single courses:list cache key; every scoped or filtered listing goes to
// the store.
func (s *CourseService) List(ctx context.Context, actor authz.Actor, input ports.ListCoursesInput) (*ports.CourseList, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	cacheable := !actor.Authenticated() &&
		input.Search == "" &&
		(input.Ordering == "" || input.Ordering == "created_at") &&
		page == 1 && limit == defaultPageSize

	if cacheable {
		if items, total, ok := s.cache.GetPublicList(ctx); ok {
			return pageResult(items, total, page, limit), nil
		}
	}

	filter := ports.CourseFilter{
		Scope:    authz.CourseListScope(actor),
		Search:   input.Search,
		Ordering: input.Ordering,
		Page:     page,
		Limit:    limit,
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if cacheable {
		s.cache.SetPublicList(ctx, items, total)
	}

	return pageResult(items, total, page, limit), nil
}

// Get returns a single course, served read-through from the course:{id}
// cache key. A cache hit is returned verbatim without re-validation.
// Visibility denials are reported as not-found so unpublished courses never
// leak their existence.
func (s *CourseService) Get(ctx context.Context, actor authz.Actor, id uint) (*domain.Course, error) {
	course, ok := s.cache.GetCourse(ctx, id)
	if !ok {
		var err error
		course, err = s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		s.cache.SetCourse(ctx, course)
	}

	if err := authz.Authorize(actor, authz.ActionRead, authz.Course(course)); err != nil {
		return nil, domain.ErrCourseNotFound
	}
	return course, nil
}

// Create persists a new course owned by the actor. The owner is forced to
// the acting user, never taken from the payload.
func (s *CourseService) Create(ctx context.Context, actor authz.Actor, input ports.CreateCourseInput) (*domain.Course, error) {
	if err := authz.Authorize(actor, authz.ActionCreate, authz.Courses()); err != nil {
		return nil, err
	}

	title, err := domain.ValidateCourseTitle(input.Title)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePrice(input.Price); err != nil {
		return nil, err
	}

	course := &domain.Course{
		Title:       title,
		Description: input.Description,
		OwnerID:     actor.ID,
		Price:       input.Price,
		IsPublished: input.IsPublished,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		s.logger.Error().Err(err).Msg("failed to create course")
		return nil, err
	}

	// Persist first, then invalidate: the new course must appear on the
	// next list load.
	s.cache.Invalidate(ctx, course.ID)

	s.logger.Info().Uint("course_id", course.ID).Uint("owner_id", actor.ID).Msg("course created")
	return course, nil
}

// Update mutates a course the actor owns (or the actor is admin) and
// invalidates the cache after the write is persisted, so no later read can
// observe the pre-update state.
func (s *CourseService) Update(ctx context.Context, actor authz.Actor, id uint, input ports.UpdateCourseInput) (*domain.Course, error) {
	course, err := s.loadForWrite(ctx, actor, id, authz.ActionUpdate)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, err := domain.ValidateCourseTitle(*input.Title)
		if err != nil {
			return nil, err
		}
		course.Title = title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.Price != nil {
		if err := domain.ValidatePrice(*input.Price); err != nil {
			return nil, err
		}
		course.Price = *input.Price
	}
	if input.IsPublished != nil {
		course.IsPublished = *input.IsPublished
	}

	if err := s.repo.Update(ctx, course); err != nil {
		s.logger.Error().Err(err).Uint("course_id", id).Msg("failed to update course")
		return nil, err
	}

	s.cache.Invalidate(ctx, id)

	s.logger.Info().Uint("course_id", id).Msg("course updated")
	return course, nil
}

// Delete removes a course; lessons and enrollments cascade at the store
// level. The cache is invalidated after the delete is persisted.
func (s *CourseService) Delete(ctx context.Context, actor authz.Actor, id uint) error {
	if _, err := s.loadForWrite(ctx, actor, id, authz.ActionDelete); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Uint("course_id", id).Msg("failed to delete course")
		return err
	}

	s.cache.Invalidate(ctx, id)

	s.logger.Info().Uint("course_id", id).Msg("course deleted")
	return nil
}

// loadForWrite fetches a course from the store, never the cache: the loader
// for a write path must see post-write state. It applies read visibility
// before the write rule, so actors who cannot see a course get not-found
// rather than forbidden.
func (s *CourseService) loadForWrite(ctx context.Context, actor authz.Actor, id uint, action authz.Action) (*domain.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if readErr := authz.Authorize(actor, authz.ActionRead, authz.Course(course)); readErr != nil {
		if errors.Is(readErr, domain.ErrAuthenticationRequired) {
			return nil, readErr
		}
		return nil, domain.ErrCourseNotFound
	}
	if err := authz.Authorize(actor, action, authz.Course(course)); err != nil {
		return nil, err
	}
	return course, nil
}

func pageResult(items []domain.Course, total int64, page, limit int) *ports.CourseList {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.CourseList{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
