package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/coursehub/enrollment-api/internal/core/domain"
)

// problem is the RFC 7807 error envelope returned for every failure.
// Detail is either a plain string or a field-keyed mapping of validation
// messages.
type problem struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    any    `json:"detail"`
	Instance  string `json:"instance"`
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders every failure as an RFC 7807 problem object.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, detail := resolveError(err, log, c)

		_ = c.JSON(code, problem{
			Type:      fmt.Sprintf("https://httpstatuses.com/%d", code),
			Title:     http.StatusText(code),
			Status:    code,
			Detail:    detail,
			Instance:  c.Request().RequestURI,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			RequestID: requestID(c),
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, any) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Field-keyed validation failures keep their mapping as the detail.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Fields
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrDuplicateEnrollment):
		return http.StatusBadRequest, map[string][]string{
			"non_field_errors": {"You are already enrolled in this course."},
		}
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrCourseNotFound):
		return http.StatusNotFound, "course not found"
	case errors.Is(err, domain.ErrLessonNotFound):
		return http.StatusNotFound, "lesson not found"
	case errors.Is(err, domain.ErrEnrollmentNotFound):
		return http.StatusNotFound, "enrollment not found"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	}

	// Unexpected error: log the real cause with the request correlation id,
	// return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", requestID(c)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
