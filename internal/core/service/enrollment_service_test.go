package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/coursehub/enrollment-api/internal/core/authz"
	"github.com/coursehub/enrollment-api/internal/core/domain"
	"github.com/coursehub/enrollment-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubEnrollmentRepo struct {
	byID      map[uint]*domain.Enrollment
	nextID    uint
	createErr error
	existsErr error
}

func newStubEnrollmentRepo() *stubEnrollmentRepo {
	return &stubEnrollmentRepo{byID: make(map[uint]*domain.Enrollment), nextID: 1}
}

func (r *stubEnrollmentRepo) Create(_ context.Context, e *domain.Enrollment) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, existing := range r.byID {
		if existing.StudentID == e.StudentID && existing.CourseID == e.CourseID {
			return domain.ErrDuplicateEnrollment
		}
	}
	e.ID = r.nextID
	r.nextID++
	r.byID[e.ID] = e
	return nil
}

func (r *stubEnrollmentRepo) FindByID(_ context.Context, id uint) (*domain.Enrollment, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *stubEnrollmentRepo) List(_ context.Context, scope authz.EnrollmentScope) ([]domain.Enrollment, error) {
	var out []domain.Enrollment
	for _, e := range r.byID {
		if scope.All || e.StudentID == scope.StudentID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEnrollmentRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrEnrollmentNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubEnrollmentRepo) Exists(_ context.Context, studentID, courseID uint) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	for _, e := range r.byID {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubEnrollmentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

type stubQueue struct {
	enqueueErr error
	jobs       []ports.NotificationJob
}

func (q *stubQueue) Enqueue(job ports.NotificationJob) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func newEnrollmentSvc(repo *stubEnrollmentRepo, courses *stubCourseRepo, queue *stubQueue) *EnrollmentService {
	return NewEnrollmentService(repo, courses, queue, zerolog.Nop())
}

func courseRepoWith(id uint) *stubCourseRepo {
	repo := newStubCourseRepo(nil)
	repo.byID[id] = &domain.Course{ID: id, OwnerID: testInstructor.ID, Title: "Go Basics", IsPublished: true}
	return repo
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestEnrollmentService_Enroll_HappyPath(t *testing.T) {
	repo := newStubEnrollmentRepo()
	queue := &stubQueue{}
	svc := newEnrollmentSvc(repo, courseRepoWith(9), queue)

	enrollment, err := svc.Enroll(context.Background(), testStudent, 9)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if enrollment.StudentID != testStudent.ID {
		t.Errorf("student = %d, want actor id %d", enrollment.StudentID, testStudent.ID)
	}
	if len(queue.jobs) != 1 || queue.jobs[0].EnrollmentID != enrollment.ID {
		t.Errorf("jobs = %+v, want one job for enrollment %d", queue.jobs, enrollment.ID)
	}
}

func TestEnrollmentService_Enroll_CarriesCourseDetails(t *testing.T) {
	repo := newStubEnrollmentRepo()
	svc := newEnrollmentSvc(repo, courseRepoWith(9), &stubQueue{})

	enrollment, err := svc.Enroll(context.Background(), testStudent, 9)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	// The freshly created row carries the course it was fetched against, so
	// the creation response can render the title without a reload.
	if enrollment.Course.Title != "Go Basics" {
		t.Errorf("course title = %q, want %q", enrollment.Course.Title, "Go Basics")
	}
	if enrollment.Course.ID != 9 {
		t.Errorf("course id = %d, want 9", enrollment.Course.ID)
	}
}

func TestEnrollmentService_Enroll_StudentsOnly(t *testing.T) {
	repo := newStubEnrollmentRepo()
	svc := newEnrollmentSvc(repo, courseRepoWith(9), &stubQueue{})

	if _, err := svc.Enroll(context.Background(), testInstructor, 9); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("instructor: got %v, want ErrForbidden", err)
	}
	if _, err := svc.Enroll(context.Background(), testAdmin, 9); err != nil {
		// Admin passes rule 1 and may enroll.
		t.Errorf("admin: expected no error, got: %v", err)
	}
	if _, err := svc.Enroll(context.Background(), authz.Anonymous, 9); !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Errorf("anonymous: got %v, want ErrAuthenticationRequired", err)
	}
}

func TestEnrollmentService_Enroll_UnknownCourse(t *testing.T) {
	svc := newEnrollmentSvc(newStubEnrollmentRepo(), newStubCourseRepo(nil), &stubQueue{})

	if _, err := svc.Enroll(context.Background(), testStudent, 404); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Errorf("got %v, want ErrCourseNotFound", err)
	}
}

func TestEnrollmentService_Enroll_Duplicate(t *testing.T) {
	repo := newStubEnrollmentRepo()
	queue := &stubQueue{}
	svc := newEnrollmentSvc(repo, courseRepoWith(9), queue)

	if _, err := svc.Enroll(context.Background(), testStudent, 9); err != nil {
		t.Fatalf("first enroll failed: %v", err)
	}
	if _, err := svc.Enroll(context.Background(), testStudent, 9); !errors.Is(err, domain.ErrDuplicateEnrollment) {
		t.Errorf("second enroll: got %v, want ErrDuplicateEnrollment", err)
	}
	if len(queue.jobs) != 1 {
		t.Errorf("jobs = %d, duplicate must not enqueue", len(queue.jobs))
	}
}

/// The Exists pre-check is an optimization, not the guarantee: when it cannot
// answer, the store constraint still catches the duplicate.
func TestEnrollmentService_Enroll_RaceLoserHitsConstraint(t *testing.T) {
	repo := newStubEnrollmentRepo()
	repo.existsErr = errors.New("store timeout")
	repo.byID[1] = &domain.Enrollment{ID: 1, StudentID: testStudent.ID, CourseID: 9}
	svc := newEnrollmentSvc(repo, courseRepoWith(9), &stubQueue{})

	if _, err := svc.Enroll(context.Background(), testStudent, 9); !errors.Is(err, domain.ErrDuplicateEnrollment) {
		t.Errorf("got %v, want ErrDuplicateEnrollment from the constraint", err)
	}
}

func TestEnrollmentService_Enroll_EnqueueFailureIsSwallowed(t *testing.T) {
	repo := newStubEnrollmentRepo()
	queue := &stubQueue{enqueueErr: errors.New("queue full")}
	svc := newEnrollmentSvc(repo, courseRepoWith(9), queue)

	enrollment, err := svc.Enroll(context.Background(), testStudent, 9)
	if err != nil {
		t.Fatalf("enqueue failure must not fail the enrollment, got: %v", err)
	}
	if enrollment == nil || enrollment.ID == 0 {
		t.Error("enrollment must be persisted and returned despite the drop")
	}
}

func TestEnrollmentService_List_Scope(t *testing.T) {
	repo := newStubEnrollmentRepo()
	repo.byID[1] = &domain.Enrollment{ID: 1, StudentID: testStudent.ID, CourseID: 9}
	repo.byID[2] = &domain.Enrollment{ID: 2, StudentID: 42, CourseID: 9}
	svc := newEnrollmentSvc(repo, courseRepoWith(9), &stubQueue{})

	own, err := svc.List(context.Background(), testStudent)
	if err != nil {
		t.Fatalf("student list failed: %v", err)
	}
	if len(own) != 1 || own[0].StudentID != testStudent.ID {
		t.Errorf("student sees %d rows, want only its own", len(own))
	}

	all, err := svc.List(context.Background(), testInstructor)
	if err != nil {
		t.Fatalf("instructor list failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("instructor sees %d rows, want 2", len(all))
	}

	if _, err := svc.List(context.Background(), authz.Anonymous); !errors.Is(err, domain.ErrAuthenticationRequired) {
		t.Errorf("anonymous list: got %v, want ErrAuthenticationRequired", err)
	}
}

func TestEnrollmentService_Delete_OwnershipRules(t *testing.T) {
	repo := newStubEnrollmentRepo()
	repo.byID[1] = &domain.Enrollment{ID: 1, StudentID: testStudent.ID, CourseID: 9}
	svc := newEnrollmentSvc(repo, courseRepoWith(9), &stubQueue{})

	other := authz.Actor{ID: 42, Role: domain.RoleStudent}
	if err := svc.Delete(context.Background(), other, 1); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("other student: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), testInstructor, 1); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("instructor: got %v, want ErrForbidden", err)
	}
	if err := svc.Delete(context.Background(), testStudent, 1); err != nil {
		t.Errorf("owner: expected no error, got: %v", err)
	}
	if err := svc.Delete(context.Background(), testStudent, 1); !errors.Is(err, domain.ErrEnrollmentNotFound) {
		t.Errorf("double delete: got %v, want ErrEnrollmentNotFound", err)
	}
}
