package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/coursehub/enrollment-api/internal/core/domain"
)

func render(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_ProblemShape(t *testing.T) {
	code, body := render(t, domain.ErrCourseNotFound)

	if code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
	for _, field := range []string{"type", "title", "status", "detail", "instance", "timestamp", "request_id"} {
		if _, ok := body[field]; !ok {
			t.Errorf("problem object missing %q: %v", field, body)
		}
	}
	if body["title"] != "Not Found" {
		t.Errorf("title = %v", body["title"])
	}
	if body["instance"] != "/api/v1/courses/1" {
		t.Errorf("instance = %v", body["instance"])
	}
}

func TestErrorHandler_ValidationDetailIsFieldKeyed(t *testing.T) {
	ve := domain.NewValidationError("title", "Title must be at least 3 characters long.")
	code, body := render(t, ve)

	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	detail, ok := body["detail"].(map[string]any)
	if !ok {
		t.Fatalf("detail = %v, want a field mapping", body["detail"])
	}
	msgs, ok := detail["title"].([]any)
	if !ok || len(msgs) != 1 || msgs[0] != "Title must be at least 3 characters long." {
		t.Errorf("title detail = %v", detail["title"])
	}
}

func TestErrorHandler_DuplicateEnrollment(t *testing.T) {
	code, body := render(t, domain.ErrDuplicateEnrollment)

	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	detail, ok := body["detail"].(map[string]any)
	if !ok {
		t.Fatalf("detail = %v, want a field mapping", body["detail"])
	}
	msgs, ok := detail["non_field_errors"].([]any)
	if !ok || len(msgs) != 1 || msgs[0] != "You are already enrolled in this course." {
		t.Errorf("non_field_errors = %v", detail["non_field_errors"])
	}
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrAuthenticationRequired, http.StatusUnauthorized},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrLessonNotFound, http.StatusNotFound},
		{domain.ErrEnrollmentNotFound, http.StatusNotFound},
		{domain.ErrUserExists, http.StatusConflict},
		{echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		if code, _ := render(t, tt.err); code != tt.want {
			t.Errorf("%v -> %d, want %d", tt.err, code, tt.want)
		}
	}
}

// Unhandled errors render generically: the cause stays in the logs.
func TestErrorHandler_UnhandledErrorIsOpaque(t *testing.T) {
	code, body := render(t, errors.New("pq: connection refused"))

	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if body["detail"] != "internal server error" {
		t.Errorf("detail = %v, must not leak the cause", body["detail"])
	}
}
