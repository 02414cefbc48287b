package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/coursehub/enrollment-api/internal/core/authz"
	"github.com/coursehub/enrollment-api/internal/core/domain"
	"github.com/coursehub/enrollment-api/internal/core/ports"
)

// LessonService implements the lesson use cases. All authorization follows
// the parent course: publication controls reads, ownership controls writes.
type LessonService struct {
	lessons ports.LessonRepository
	courses ports.CourseRepository
	cache   ports.CourseCache
	logger  zerolog.Logger
}

func NewLessonService(lessons ports.LessonRepository, courses ports.CourseRepository, cache ports.CourseCache, logger zerolog.Logger) *LessonService {
	return &LessonService{lessons: lessons, courses: courses, cache: cache, logger: logger}
}

// List returns the lessons of every course visible to the actor, ordered by
// order_index with ties in insertion order.
func (s *LessonService) List(ctx context.Context, actor authz.Actor) ([]domain.Lesson, error) {
	return s.lessons.List(ctx, authz.CourseListScope(actor))
}

// Get returns a single lesson; visibility denials surface as not-found.
func (s *LessonService) Get(ctx context.Context, actor authz.Actor, id uint) (*domain.Lesson, error) {
	lesson, err := s.lessons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionRead, authz.Lesson(&lesson.Course)); err != nil {
		return nil, domain.ErrLessonNotFound
	}
	return lesson, nil
}

// Create adds a lesson to an existing course. The course id comes from the
// request body; an unknown course is not-found, and only the course owner or
// an admin may add lessons.
func (s *LessonService) Create(ctx context.Context, actor authz.Actor, input ports.CreateLessonInput) (*domain.Lesson, error) {
	course, err := s.courses.FindByID(ctx, input.CourseID)
	if err != nil {
		return nil, err
	}

	if err := authz.Authorize(actor, authz.ActionCreate, authz.Lesson(course)); err != nil {
		return nil, err
	}

	lesson := &domain.Lesson{
		CourseID:    course.ID,
		Content:     input.Content,
		DurationMin: input.DurationMin,
		OrderIndex:  input.OrderIndex,
	}
	if lesson.Title, err = domain.ValidateCourseTitle(input.Title); err != nil {
		return nil, err
	}
	if lesson.DurationMin == 0 {
		lesson.DurationMin = 5
	}
	if lesson.OrderIndex == 0 {
		lesson.OrderIndex = 1
	}
	if err := domain.ValidateDuration(lesson.DurationMin); err != nil {
		return nil, err
	}
	if err := domain.ValidateOrderIndex(lesson.OrderIndex); err != nil {
		return nil, err
	}

	if err := s.lessons.Create(ctx, lesson); err != nil {
		s.logger.Error().Err(err).Uint("course_id", course.ID).Msg("failed to create lesson")
		return nil, err
	}

	// The parent's cached detail carries lessons_count, so lesson writes
	// invalidate the parent course.
	s.cache.Invalidate(ctx, course.ID)

	s.logger.Info().Uint("lesson_id", lesson.ID).Uint("course_id", course.ID).Msg("lesson created")
	return lesson, nil
}

// Update mutates a lesson of a course the actor owns.
func (s *LessonService) Update(ctx context.Context, actor authz.Actor, id uint, input ports.UpdateLessonInput) (*domain.Lesson, error) {
	lesson, err := s.loadForWrite(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if lesson.Title, err = domain.ValidateCourseTitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if input.Content != nil {
		lesson.Content = *input.Content
	}
	if input.DurationMin != nil {
		if err := domain.ValidateDuration(*input.DurationMin); err != nil {
			return nil, err
		}
		lesson.DurationMin = *input.DurationMin
	}
	if input.OrderIndex != nil {
		if err := domain.ValidateOrderIndex(*input.OrderIndex); err != nil {
			return nil, err
		}
		lesson.OrderIndex = *input.OrderIndex
	}

	if err := s.lessons.Update(ctx, lesson); err != nil {
		s.logger.Error().Err(err).Uint("lesson_id", id).Msg("failed to update lesson")
		return nil, err
	}

	s.cache.Invalidate(ctx, lesson.CourseID)
	return lesson, nil
}

// Delete removes a lesson from a course the actor owns.
func (s *LessonService) Delete(ctx context.Context, actor authz.Actor, id uint) error {
	lesson, err := s.loadForWrite(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.lessons.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Uint("lesson_id", id).Msg("failed to delete lesson")
		return err
	}

	s.cache.Invalidate(ctx, lesson.CourseID)

	s.logger.Info().Uint("lesson_id", id).Uint("course_id", lesson.CourseID).Msg("lesson deleted")
	return nil
}

func (s *LessonService) loadForWrite(ctx context.Context, actor authz.Actor, id uint) (*domain.Lesson, error) {
	lesson, err := s.lessons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if readErr := authz.Authorize(actor, authz.ActionRead, authz.Lesson(&lesson.Course)); readErr != nil {
		if errors.Is(readErr, domain.ErrAuthenticationRequired) {
			return nil, readErr
		}
		return nil, domain.ErrLessonNotFound
	}
	if err := authz.Authorize(actor, authz.ActionUpdate, authz.Lesson(&lesson.Course)); err != nil {
		return nil, err
	}
	return lesson, nil
}
