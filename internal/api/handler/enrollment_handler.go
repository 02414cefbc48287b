package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/enrollment-api/internal/core/ports"
)

// EnrollmentHandler handles HTTP requests for enrollment operations.
type EnrollmentHandler struct {
	service ports.EnrollmentService
}

func NewEnrollmentHandler(service ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

type createEnrollmentRequest struct {
	Course uint `json:"course" validate:"required"`
}

// List handles GET /api/v1/enrollments.
//
// @Summary      List enrollments visible to the caller
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   enrollmentResponse
// @Failure      401  {object}  map[string]any
// @Router       /api/v1/enrollments [get]
func (h *EnrollmentHandler) List(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	enrollments, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	out := make([]enrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		out = append(out, toEnrollmentResponse(&enrollments[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /api/v1/enrollments.
//
// @Summary      Enroll the calling student in a course
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createEnrollmentRequest  true  "Target course"
// @Success      201   {object}  enrollmentResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/v1/enrollments [post]
func (h *EnrollmentHandler) Create(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req createEnrollmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	enrollment, err := h.service.Enroll(c.Request().Context(), actor, req.Course)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toEnrollmentResponse(enrollment))
}

// Delete handles DELETE /api/v1/enrollments/:id.
//
// @Summary      Drop an enrollment
// @Tags         enrollments
// @Security     BearerAuth
// @Param        id  path  int  true  "Enrollment id"
// @Success      204
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/v1/enrollments/{id} [delete]
func (h *EnrollmentHandler) Delete(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
