package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/coursehub/enrollment-api/internal/core/domain"
	"github.com/coursehub/enrollment-api/internal/core/ports"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a new course row.
func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.db.WithContext(ctx).Create(c).Error
}

// FindByID retrieves a course with its owner preloaded and LessonsCount
// filled.
func (r *CourseRepository) FindByID(ctx context.Context, id uint) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Course
	err := r.db.WithContext(ctx).Preload("Owner").First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&domain.Lesson{}).
		Where("course_id = ?", c.ID).
		Count(&c.LessonsCount).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns a page of courses matching the filter and the total count.
// The visibility scope is applied in SQL: published rows, plus the owner's
// own rows when the scope carries an owner id.
func (r *CourseRepository) List(ctx context.Context, filter ports.CourseFilter) ([]domain.Course, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).Model(&domain.Course{})

	if !filter.Scope.All {
		if filter.Scope.OwnerID != 0 {
			q = q.Where("is_published = ? OR owner_id = ?", true, filter.Scope.OwnerID)
		} else {
			q = q.Where("is_published = ?", true)
		}
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Ordering {
	case "price":
		q = q.Order("price ASC")
	default:
		q = q.Order("created_at DESC")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	if filter.Limit > 0 {
		q = q.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var courses []domain.Course
	if err := q.Preload("Owner").Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	if err := r.fillLessonCounts(ctx, courses); err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

// Update persists every field of the course row.
func (r *CourseRepository) Update(ctx context.Context, c *domain.Course) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.db.WithContext(ctx).
		Model(&domain.Course{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"title":        c.Title,
			"description":  c.Description,
			"price":        c.Price,
			"is_published": c.IsPublished,
		}).Error
}

// Delete removes the course row; lessons and enrollments cascade via the
// store's foreign keys.
func (r *CourseRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&domain.Course{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

// Count returns the total number of courses.
func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Course{}).Count(&n).Error
	return n, err
}

func (r *CourseRepository) fillLessonCounts(ctx context.Context, courses []domain.Course) error {
	if len(courses) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}

	type row struct {
		CourseID uint
		N        int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.Lesson{}).
		Select("course_id, count(*) as n").
		Where("course_id IN ?", ids).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	counts := make(map[uint]int64, len(rows))
	for _, rw := range rows {
		counts[rw.CourseID] = rw.N
	}
	for i := range courses {
		courses[i].LessonsCount = counts[courses[i].ID]
	}
	return nil
}
