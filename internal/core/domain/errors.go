package domain

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrAuthenticationRequired is returned when an anonymous actor attempts
	// a non-safe action. Distinct from ErrForbidden: the caller is told to
	// authenticate, not that it lacks rights.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrForbidden is returned when an authenticated actor lacks rights.
	ErrForbidden = errors.New("access forbidden")

	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrUserNotFound       = errors.New("user not found")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateEnrollment is the translation of the store's
	// (student, course) uniqueness violation.
	ErrDuplicateEnrollment = errors.New("already enrolled in this course")
)

// ValidationError carries field-keyed messages. It renders as the problem
// object's detail mapping; cross-field failures use the "non_field_errors"
// key.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError builds a ValidationError with a single message.
func NewValidationError(field, message string) *ValidationError {
	ve := &ValidationError{Fields: map[string][]string{}}
	ve.Add(field, message)
	return ve
}

// Add appends a message under the given field key.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Empty reports whether no messages have been collected.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Fields[k], " "))
	}
	return b.String()
}
