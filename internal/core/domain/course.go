package domain

import (
	"fmt"
	"strings"
	"time"
)

// Course is the aggregate root of the catalog. Its owner is forced to the
// creating actor and must hold the instructor or admin role at creation time;
// a later role change does not revoke ownership.
type Course struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description"`
	OwnerID     uint      `json:"-" gorm:"index;not null"`
	Owner       User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Price       float64   `json:"price" gorm:"type:numeric(10,2);not null;default:0"`
	IsPublished bool      `json:"is_published" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Deleting a course cascades to its lessons and enrollments.
	Lessons     []Lesson     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Enrollments []Enrollment `json:"-" gorm:"constraint:OnDelete:CASCADE"`

	// LessonsCount is filled by the repository, not stored.
	LessonsCount int64 `json:"lessons_count" gorm:"-"`
}

// Lesson belongs to exactly one course and inherits its visibility from the
// parent's publication flag. order_index is not unique within a course; ties
// keep insertion order.
type Lesson struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CourseID    uint   `json:"course" gorm:"index;not null"`
	Course      Course `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Title       string `json:"title" gorm:"size:200;not null"`
	Content     string `json:"content"`
	DurationMin int    `json:"duration_min" gorm:"not null;default:5"`
	OrderIndex  int    `json:"order_index" gorm:"not null;default:1"`
}

// ValidateCourseTitle trims and checks a course or lesson title. It returns
// the trimmed title.
func ValidateCourseTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if len(title) < 3 {
		return "", NewValidationError("title", "Title must be at least 3 characters long.")
	}
	return title, nil
}

// ValidatePrice rejects negative prices.
func ValidatePrice(price float64) error {
	if price < 0 {
		return NewValidationError("price", "Price must be >= 0.")
	}
	return nil
}

// ValidateDuration rejects lesson durations under one minute.
func ValidateDuration(minutes int) error {
	if minutes < 1 {
		return NewValidationError("duration_min", "Duration must be >= 1 minute.")
	}
	return nil
}

// ValidateOrderIndex rejects non-positive lesson positions.
func ValidateOrderIndex(index int) error {
	if index < 1 {
		return NewValidationError("order_index", fmt.Sprintf("Order index must be positive, got %d.", index))
	}
	return nil
}
