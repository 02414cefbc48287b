package domain

import "time"

// Enrollment associates a student with a course. The (student, course) pair
// is unique at the store level; that constraint, not the workflow's
// pre-check, is what closes the race between concurrent enroll attempts.
type Enrollment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID uint      `json:"student" gorm:"uniqueIndex:idx_student_course;not null"`
	Student   User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CourseID  uint      `json:"course" gorm:"uniqueIndex:idx_student_course;not null"`
	Course    Course    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}
