package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/coursehub/enrollment-api/internal/core/authz"
	"github.com/coursehub/enrollment-api/internal/core/domain"
)

type LessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{db: db}
}

// Create inserts a new lesson row.
func (r *LessonRepository) Create(ctx context.Context, l *domain.Lesson) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.db.WithContext(ctx).Create(l).Error
}

// FindByID retrieves a lesson with its parent course preloaded, which
// authorization needs for the ownership check.
func (r *LessonRepository) FindByID(ctx context.Context, id uint) (*domain.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.Lesson
	err := r.db.WithContext(ctx).Preload("Course").First(&l, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLessonNotFound
		}
		return nil, err
	}
	return &l, nil
}

// List returns lessons of courses visible under the scope, ordered by
// order_index with insertion order breaking ties.
func (r *LessonRepository) List(ctx context.Context, scope authz.CourseScope) ([]domain.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).
		Joins("JOIN courses ON courses.id = lessons.course_id")

	if !scope.All {
		if scope.OwnerID != 0 {
			q = q.Where("courses.is_published = ? OR courses.owner_id = ?", true, scope.OwnerID)
		} else {
			q = q.Where("courses.is_published = ?", true)
		}
	}

	var lessons []domain.Lesson
	err := q.Order("lessons.order_index ASC, lessons.id ASC").Find(&lessons).Error
	return lessons, err
}

// Update persists the mutable lesson fields.
func (r *LessonRepository) Update(ctx context.Context, l *domain.Lesson) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.db.WithContext(ctx).
		Model(&domain.Lesson{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"title":        l.Title,
			"content":      l.Content,
			"duration_min": l.DurationMin,
			"order_index":  l.OrderIndex,
		}).Error
}

// Delete removes a lesson row.
func (r *LessonRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&domain.Lesson{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrLessonNotFound
	}
	return nil
}
