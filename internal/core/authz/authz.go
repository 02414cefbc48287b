// Package authz is the pure authorization engine. It maps
// (actor, action, resource) to a decision with no store, cache, or framework
// access, so the rule table is unit-testable in isolation.
//
// Decisions are expressed as errors: nil means allow,
// domain.ErrAuthenticationRequired means the actor must authenticate first,
// domain.ErrForbidden means an authenticated actor lacks rights. Rules are
// evaluated in a fixed precedence order and the first match short-circuits.
package authz

import (
	"github.com/coursehub/enrollment-api/internal/core/domain"
)

// Action is the closed set of operations the engine rules on.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Actor is the caller of an operation. The zero value is the anonymous
// caller.
type Actor struct {
	ID   uint
	Role domain.Role
}

// Anonymous is the unauthenticated actor.
var Anonymous = Actor{}

// Authenticated reports whether the actor carries an identity.
func (a Actor) Authenticated() bool {
	return a.ID != 0
}

// Resource is the closed set of things an action can target. Lesson
// authorization is decided entirely through the parent course, so the lesson
// resource carries the course.
type Resource interface {
	isResource()
}

type courseResource struct{ course *domain.Course }

type courseCollection struct{}

type lessonResource struct{ parent *domain.Course }

type enrollmentResource struct{ enrollment *domain.Enrollment }

type enrollmentCollection struct{}

func (courseResource) isResource()       {}
func (courseCollection) isResource()     {}
func (lessonResource) isResource()       {}
func (enrollmentResource) isResource()   {}
func (enrollmentCollection) isResource() {}

// Course wraps a course instance for read/update/delete decisions.
func Course(c *domain.Course) Resource { return courseResource{course: c} }

// Courses is the course collection, targeted by create.
func Courses() Resource { return courseCollection{} }

// Lesson wraps a lesson's parent course; all lesson decisions are ownership
// checks against the parent.
func Lesson(parent *domain.Course) Resource { return lessonResource{parent: parent} }

// Enrollment wraps an enrollment instance for read/delete decisions.
func Enrollment(e *domain.Enrollment) Resource { return enrollmentResource{enrollment: e} }

// Enrollments is the enrollment collection, targeted by create.
func Enrollments() Resource { return enrollmentCollection{} }

// Authorize decides whether actor may perform action on res.
//
// Ownership checks compare against the live owner_id field, never a cached
// role snapshot: demoting an instructor does not revoke rights on courses
// they already own.
func Authorize(actor Actor, action Action, res Resource) error {
	// Rule 1: admin may do anything.
	if actor.Authenticated() && actor.Role == domain.RoleAdmin {
		return nil
	}

	switch r := res.(type) {
	case courseResource:
		return authorizeCourse(actor, action, r.course)
	case lessonResource:
		return authorizeCourse(actor, action, r.parent)
	case courseCollection:
		// Rule 3: only instructors (and admins, rule 1) create courses.
		if !actor.Authenticated() {
			return domain.ErrAuthenticationRequired
		}
		if actor.Role != domain.RoleInstructor {
			return domain.ErrForbidden
		}
		return nil
	case enrollmentCollection:
		// Rule 5: only students enroll.
		if !actor.Authenticated() {
			return domain.ErrAuthenticationRequired
		}
		if actor.Role != domain.RoleStudent {
			return domain.ErrForbidden
		}
		return nil
	case enrollmentResource:
		return authorizeEnrollment(actor, action, r.enrollment)
	}
	return domain.ErrForbidden
}

func authorizeCourse(actor Actor, action Action, course *domain.Course) error {
	switch action {
	case ActionRead:
		// Rule 2: published courses are visible to everyone.
		if course.IsPublished {
			return nil
		}
		if !actor.Authenticated() {
			return domain.ErrAuthenticationRequired
		}
		if actor.ID == course.OwnerID {
			return nil
		}
		return domain.ErrForbidden
	default:
		// Rule 4: writes require ownership. The owner's current role is
		// deliberately not re-checked.
		if !actor.Authenticated() {
			return domain.ErrAuthenticationRequired
		}
		if actor.ID == course.OwnerID {
			return nil
		}
		return domain.ErrForbidden
	}
}

func authorizeEnrollment(actor Actor, action Action, e *domain.Enrollment) error {
	if !actor.Authenticated() {
		return domain.ErrAuthenticationRequired
	}

	switch action {
	case ActionRead:
		// Rule 6: students see their own rows; instructors see all.
		if actor.Role == domain.RoleInstructor || actor.ID == e.StudentID {
			return nil
		}
		return domain.ErrForbidden
	default:
		// Rule 7: only the owning student (admin covered by rule 1).
		if actor.ID == e.StudentID {
			return nil
		}
		return domain.ErrForbidden
	}
}

// CourseScope is the list-visibility filter derived from rule 2: everything
// published plus, when OwnerID is set, the actor's own courses.
type CourseScope struct {
	All     bool
	OwnerID uint
}

// CourseListScope maps an actor to its course list visibility.
func CourseListScope(actor Actor) CourseScope {
	if actor.Authenticated() && actor.Role == domain.RoleAdmin {
		return CourseScope{All: true}
	}
	if actor.Authenticated() {
		return CourseScope{OwnerID: actor.ID}
	}
	return CourseScope{}
}

// EnrollmentScope is the list-visibility filter derived from rule 6.
type EnrollmentScope struct {
	All       bool
	StudentID uint
}

// EnrollmentListScope maps an actor to its enrollment list visibility.
// Anonymous actors see nothing and must authenticate.
func EnrollmentListScope(actor Actor) (EnrollmentScope, error) {
	if !actor.Authenticated() {
		return EnrollmentScope{}, domain.ErrAuthenticationRequired
	}
	if actor.Role == domain.RoleStudent {
		return EnrollmentScope{StudentID: actor.ID}, nil
	}
	return EnrollmentScope{All: true}, nil
}
