package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/coursehub/enrollment-api/internal/core/authz"
	"github.com/coursehub/enrollment-api/internal/core/domain"
)

// pgUniqueViolation is the Postgres error code for a unique constraint hit.
const pgUniqueViolation = "23505"

type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts an enrollment row. When two concurrent attempts race for
// the same (student, course) pair, the store's unique index decides the
// winner; the loser gets domain.ErrDuplicateEnrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.db.WithContext(ctx).Create(e).Error
	if err != nil && isUniqueViolation(err) {
		return domain.ErrDuplicateEnrollment
	}
	return err
}

// FindByID retrieves an enrollment with its course preloaded.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id uint) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var e domain.Enrollment
	err := r.db.WithContext(ctx).Preload("Course").First(&e, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns the enrollments visible under the scope.
func (r *EnrollmentRepository) List(ctx context.Context, scope authz.EnrollmentScope) ([]domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := r.db.WithContext(ctx).Preload("Course")
	if !scope.All {
		q = q.Where("student_id = ?", scope.StudentID)
	}

	var enrollments []domain.Enrollment
	err := q.Order("created_at DESC").Find(&enrollments).Error
	return enrollments, err
}

// Delete removes an enrollment row.
func (r *EnrollmentRepository) Delete(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&domain.Enrollment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEnrollmentNotFound
	}
	return nil
}

// Exists reports whether the (student, course) pair is already enrolled.
func (r *EnrollmentRepository) Exists(ctx context.Context, studentID, courseID uint) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&n).Error
	return n > 0, err
}

// Count returns the total number of enrollments.
func (r *EnrollmentRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Enrollment{}).Count(&n).Error
	return n, err
}

// isUniqueViolation matches both GORM's translated error and the raw
// Postgres error code.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
