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

type stubLessonRepo struct {
	byID   map[uint]*domain.Lesson
	nextID uint
}

func newStubLessonRepo() *stubLessonRepo {
	return &stubLessonRepo{byID: make(map[uint]*domain.Lesson), nextID: 1}
}

func (r *stubLessonRepo) Create(_ context.Context, l *domain.Lesson) error {
	l.ID = r.nextID
	r.nextID++
	r.byID[l.ID] = l
	return nil
}

func (r *stubLessonRepo) FindByID(_ context.Context, id uint) (*domain.Lesson, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrLessonNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *stubLessonRepo) List(_ context.Context, scope authz.CourseScope) ([]domain.Lesson, error) {
	var out []domain.Lesson
	for _, l := range r.byID {
		visible := scope.All || l.Course.IsPublished ||
			(scope.OwnerID != 0 && l.Course.OwnerID == scope.OwnerID)
		if visible {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *stubLessonRepo) Update(_ context.Context, l *domain.Lesson) error {
	r.byID[l.ID] = l
	return nil
}

func (r *stubLessonRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrLessonNotFound
	}
	delete(r.byID, id)
	return nil
}

func newLessonSvc(lessons *stubLessonRepo, courses *stubCourseRepo, cache *recordingCache) *LessonService {
	return NewLessonService(lessons, courses, cache, zerolog.Nop())
}

func seedLesson(lessons *stubLessonRepo, id uint, course domain.Course) {
	lessons.byID[id] = &domain.Lesson{ID: id, CourseID: course.ID, Course: course, Title: "Lesson", DurationMin: 5, OrderIndex: 1}
	if lessons.nextID <= id {
		lessons.nextID = id + 1
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestLessonService_Create_DefaultsAndInvalidation(t *testing.T) {
	courses := newStubCourseRepo(nil)
	courses.byID[9] = &domain.Course{ID: 9, OwnerID: testInstructor.ID, IsPublished: true}
	lessons := newStubLessonRepo()
	cache := newRecordingCache(nil)
	cache.courses[9] = &domain.Course{ID: 9}

	svc := newLessonSvc(lessons, courses, cache)

	lesson, err := svc.Create(context.Background(), testInstructor, ports.CreateLessonInput{
		CourseID: 9,
		Title:    "Intro",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if lesson.DurationMin != 5 {
		t.Errorf("duration = %d, want default 5", lesson.DurationMin)
	}
	if lesson.OrderIndex != 1 {
		t.Errorf("order index = %d, want default 1", lesson.OrderIndex)
	}
	// The parent's cached detail carries lessons_count, so the lesson
	// write must evict it.
	if _, ok := cache.courses[9]; ok {
		t.Error("lesson create must invalidate the parent course cache")
	}
}

func TestLessonService_Create_UnknownCourse(t *testing.T) {
	svc := newLessonSvc(newStubLessonRepo(), newStubCourseRepo(nil), newRecordingCache(nil))

	_, err := svc.Create(context.Background(), testInstructor, ports.CreateLessonInput{CourseID: 404, Title: "Intro"})
	if !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got: %v", err)
	}
}

func TestLessonService_Create_NonOwnerForbidden(t *testing.T) {
	courses := newStubCourseRepo(nil)
	courses.byID[9] = &domain.Course{ID: 9, OwnerID: testInstructor.ID, IsPublished: true}
	lessons := newStubLessonRepo()
	svc := newLessonSvc(lessons, courses, newRecordingCache(nil))

	other := authz.Actor{ID: 77, Role: domain.RoleInstructor}
	_, err := svc.Create(context.Background(), other, ports.CreateLessonInput{CourseID: 9, Title: "Intro"})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got: %v", err)
	}
	if len(lessons.byID) != 0 {
		t.Error("lesson must not be persisted on authorization failure")
	}
}

func TestLessonService_Create_InvalidDuration(t *testing.T) {
	courses := newStubCourseRepo(nil)
	courses.byID[9] = &domain.Course{ID: 9, OwnerID: testInstructor.ID, IsPublished: true}
	svc := newLessonSvc(newStubLessonRepo(), courses, newRecordingCache(nil))

	_, err := svc.Create(context.Background(), testInstructor, ports.CreateLessonInput{
		CourseID:    9,
		Title:       "Intro",
		DurationMin: -3,
	})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if msgs := ve.Fields["duration_min"]; len(msgs) != 1 || msgs[0] != "Duration must be >= 1 minute." {
		t.Errorf("duration messages = %v", msgs)
	}
}

func TestLessonService_Get_VisibilityFollowsParent(t *testing.T) {
	lessons := newStubLessonRepo()
	seedLesson(lessons, 1, domain.Course{ID: 9, OwnerID: testInstructor.ID, IsPublished: false})
	svc := newLessonSvc(lessons, newStubCourseRepo(nil), newRecordingCache(nil))

	if _, err := svc.Get(context.Background(), testStudent, 1); !errors.Is(err, domain.ErrLessonNotFound) {
		t.Errorf("student on hidden lesson: got %v, want ErrLessonNotFound", err)
	}
	if _, err := svc.Get(context.Background(), testInstructor, 1); err != nil {
		t.Errorf("owner: expected no error, got: %v", err)
	}
}

func TestLessonService_Update_InvalidatesParent(t *testing.T) {
	lessons := newStubLessonRepo()
	seedLesson(lessons, 1, domain.Course{ID: 9, OwnerID: testInstructor.ID, IsPublished: true})
	cache := newRecordingCache(nil)
	cache.courses[9] = &domain.Course{ID: 9}
	svc := newLessonSvc(lessons, newStubCourseRepo(nil), cache)

	title := "Renamed"
	if _, err := svc.Update(context.Background(), testInstructor, 1, ports.UpdateLessonInput{Title: &title}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, ok := cache.courses[9]; ok {
		t.Error("lesson update must invalidate the parent course cache")
	}
}

func TestLessonService_Delete_HiddenIsNotFound(t *testing.T) {
	lessons := newStubLessonRepo()
	seedLesson(lessons, 1, domain.Course{ID: 9, OwnerID: testInstructor.ID, IsPublished: false})
	svc := newLessonSvc(lessons, newStubCourseRepo(nil), newRecordingCache(nil))

	if err := svc.Delete(context.Background(), testStudent, 1); !errors.Is(err, domain.ErrLessonNotFound) {
		t.Errorf("got %v, want ErrLessonNotFound", err)
	}
	if err := svc.Delete(context.Background(), testInstructor, 1); err != nil {
		t.Errorf("owner delete: expected no error, got: %v", err)
	}
}
