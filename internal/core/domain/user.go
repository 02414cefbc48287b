package domain

import "time"

// Role is the closed set of user roles. A user's role is fixed at
// registration; there is no promotion workflow.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleInstructor Role = "instructor"
	RoleStudent    Role = "student"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleStudent:
		return true
	}
	return false
}

// User models an authenticated actor in the system.
// Email is stored lowercased so uniqueness is case-insensitive.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:254;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'student'"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}
