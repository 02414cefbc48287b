package authz

import (
	"errors"
	"testing"

	"github.com/coursehub/enrollment-api/internal/core/domain"
)

var (
	admin      = Actor{ID: 1, Role: domain.RoleAdmin}
	instructor = Actor{ID: 2, Role: domain.RoleInstructor}
	student    = Actor{ID: 3, Role: domain.RoleStudent}
	otherInstr = Actor{ID: 4, Role: domain.RoleInstructor}
)

func published(owner uint) *domain.Course {
	return &domain.Course{ID: 10, OwnerID: owner, IsPublished: true}
}

func unpublished(owner uint) *domain.Course {
	return &domain.Course{ID: 11, OwnerID: owner, IsPublished: false}
}

func TestAuthorize_RuleTable(t *testing.T) {
	enrollment := &domain.Enrollment{ID: 20, StudentID: student.ID, CourseID: 10}

	tests := []struct {
		name   string
		actor  Actor
		action Action
		res    Resource
		want   error
	}{
		// Rule 1: admin does anything, including writes on courses it
		// does not own.
		{"admin updates foreign course", admin, ActionUpdate, Course(unpublished(instructor.ID)), nil},
		{"admin deletes foreign enrollment", admin, ActionDelete, Enrollment(enrollment), nil},

		// Rule 2: published courses are readable by anyone; unpublished
		// only by the owner.
		{"anonymous reads published", Anonymous, ActionRead, Course(published(instructor.ID)), nil},
		{"anonymous reads unpublished", Anonymous, ActionRead, Course(unpublished(instructor.ID)), domain.ErrAuthenticationRequired},
		{"owner reads own unpublished", instructor, ActionRead, Course(unpublished(instructor.ID)), nil},
		{"student reads unpublished", student, ActionRead, Course(unpublished(instructor.ID)), domain.ErrForbidden},

		// Rule 3: course creation is instructor-only.
		{"anonymous creates course", Anonymous, ActionCreate, Courses(), domain.ErrAuthenticationRequired},
		{"student creates course", student, ActionCreate, Courses(), domain.ErrForbidden},
		{"instructor creates course", instructor, ActionCreate, Courses(), nil},

		// Rule 4: course writes require ownership.
		{"anonymous updates published", Anonymous, ActionUpdate, Course(published(instructor.ID)), domain.ErrAuthenticationRequired},
		{"non-owner updates course", otherInstr, ActionUpdate, Course(published(instructor.ID)), domain.ErrForbidden},
		{"owner deletes own course", instructor, ActionDelete, Course(published(instructor.ID)), nil},
		{"student updates published", student, ActionUpdate, Course(published(instructor.ID)), domain.ErrForbidden},

		// Lessons inherit the parent course's decision.
		{"owner creates lesson", instructor, ActionCreate, Lesson(unpublished(instructor.ID)), nil},
		{"non-owner creates lesson", otherInstr, ActionCreate, Lesson(unpublished(instructor.ID)), domain.ErrForbidden},
		{"anonymous reads lesson of published", Anonymous, ActionRead, Lesson(published(instructor.ID)), nil},

		// Rule 5: enrollment creation is student-only.
		{"anonymous enrolls", Anonymous, ActionCreate, Enrollments(), domain.ErrAuthenticationRequired},
		{"instructor enrolls", instructor, ActionCreate, Enrollments(), domain.ErrForbidden},
		{"student enrolls", student, ActionCreate, Enrollments(), nil},

		// Rule 6: enrollment reads.
		{"owning student reads enrollment", student, ActionRead, Enrollment(enrollment), nil},
		{"instructor reads any enrollment", instructor, ActionRead, Enrollment(enrollment), nil},
		{"other student reads enrollment", Actor{ID: 99, Role: domain.RoleStudent}, ActionRead, Enrollment(enrollment), domain.ErrForbidden},

		// Rule 7: enrollment deletion is the owning student or admin.
		{"owning student drops enrollment", student, ActionDelete, Enrollment(enrollment), nil},
		{"instructor drops foreign enrollment", instructor, ActionDelete, Enrollment(enrollment), domain.ErrForbidden},
		{"anonymous drops enrollment", Anonymous, ActionDelete, Enrollment(enrollment), domain.ErrAuthenticationRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Authorize(tt.actor, tt.action, tt.res)
			if !errors.Is(got, tt.want) && got != tt.want {
				t.Errorf("Authorize(%+v, %s) = %v, want %v", tt.actor, tt.action, got, tt.want)
			}
		})
	}
}

// Ownership outlives the owner's role: a demoted instructor keeps write
// rights on courses it already owns because the check compares owner_id,
// not the role.
func TestAuthorize_OwnershipSurvivesRoleChange(t *testing.T) {
	demoted := Actor{ID: instructor.ID, Role: domain.RoleStudent}
	course := unpublished(instructor.ID)

	if err := Authorize(demoted, ActionUpdate, Course(course)); err != nil {
		t.Errorf("demoted owner should keep write access, got %v", err)
	}
	if err := Authorize(demoted, ActionDelete, Course(course)); err != nil {
		t.Errorf("demoted owner should keep delete access, got %v", err)
	}

	// But the demoted owner cannot create new courses (rule 3 checks the
	// current role).
	if err := Authorize(demoted, ActionCreate, Courses()); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("demoted owner creating course = %v, want ErrForbidden", err)
	}
}

func TestCourseListScope(t *testing.T) {
	if scope := CourseListScope(admin); !scope.All {
		t.Errorf("admin scope = %+v, want All", scope)
	}
	if scope := CourseListScope(instructor); scope.All || scope.OwnerID != instructor.ID {
		t.Errorf("instructor scope = %+v, want OwnerID=%d", scope, instructor.ID)
	}
	if scope := CourseListScope(Anonymous); scope.All || scope.OwnerID != 0 {
		t.Errorf("anonymous scope = %+v, want published-only", scope)
	}
}

func TestEnrollmentListScope(t *testing.T) {
	if _, err := EnrollmentListScope(Anonymous); !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Errorf("anonymous scope error = %v, want ErrAuthenticationRequired", err)
	}

	scope, err := EnrollmentListScope(student)
	if err != nil {
		t.Fatalf("student scope error: %v", err)
	}
	if scope.All || scope.StudentID != student.ID {
		t.Errorf("student scope = %+v, want StudentID=%d", scope, student.ID)
	}

	scope, err = EnrollmentListScope(instructor)
	if err != nil {
		t.Fatalf("instructor scope error: %v", err)
	}
	if !scope.All {
		t.Errorf("instructor scope = %+v, want All", scope)
	}
}
