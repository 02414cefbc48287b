package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/enrollment-api/internal/core/ports"
)

// LessonHandler handles HTTP requests for lesson operations.
type LessonHandler struct {
	service ports.LessonService
}

func NewLessonHandler(service ports.LessonService) *LessonHandler {
	return &LessonHandler{service: service}
}

type createLessonRequest struct {
	Course      uint   `json:"course" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Content     string `json:"content"`
	DurationMin int    `json:"duration_min"`
	OrderIndex  int    `json:"order_index"`
}

// updateLessonRequest is shared by PUT and PATCH; absent fields keep their
// stored values.
type updateLessonRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	DurationMin *int    `json:"duration_min"`
	OrderIndex  *int    `json:"order_index"`
}

// List handles GET /api/v1/lessons.
//
// @Summary      List lessons of courses visible to the caller
// @Tags         lessons
// @Produce      json
// @Success      200  {array}   lessonResponse
// @Failure      500  {object}  map[string]any
// @Router       /api/v1/lessons [get]
func (h *LessonHandler) List(c echo.Context) error {
	lessons, err := h.service.List(c.Request().Context(), actorFromContext(c))
	if err != nil {
		return err
	}

	out := make([]lessonResponse, 0, len(lessons))
	for i := range lessons {
		out = append(out, toLessonResponse(&lessons[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/v1/lessons/:id.
//
// @Summary      Get a lesson by id
// @Tags         lessons
// @Produce      json
// @Param        id   path      int  true  "Lesson id"
// @Success      200  {object}  lessonResponse
// @Failure      404  {object}  map[string]any
// @Router       /api/v1/lessons/{id} [get]
func (h *LessonHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	lesson, err := h.service.Get(c.Request().Context(), actorFromContext(c), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLessonResponse(lesson))
}

// Create handles POST /api/v1/lessons.
//
// @Summary      Add a lesson to an owned course
// @Tags         lessons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createLessonRequest  true  "Lesson fields"
// @Success      201   {object}  lessonResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/v1/lessons [post]
func (h *LessonHandler) Create(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req createLessonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	lesson, err := h.service.Create(c.Request().Context(), actor, ports.CreateLessonInput{
		CourseID:    req.Course,
		Title:       req.Title,
		Content:     req.Content,
		DurationMin: req.DurationMin,
		OrderIndex:  req.OrderIndex,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toLessonResponse(lesson))
}

// Update handles PUT and PATCH /api/v1/lessons/:id.
//
// @Summary      Update a lesson
// @Tags         lessons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Lesson id"
// @Param        body  body      updateLessonRequest  true  "Fields to change"
// @Success      200   {object}  lessonResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/v1/lessons/{id} [patch]
func (h *LessonHandler) Update(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateLessonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	lesson, err := h.service.Update(c.Request().Context(), actor, id, ports.UpdateLessonInput{
		Title:       req.Title,
		Content:     req.Content,
		DurationMin: req.DurationMin,
		OrderIndex:  req.OrderIndex,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toLessonResponse(lesson))
}

// Delete handles DELETE /api/v1/lessons/:id.
//
// @Summary      Delete a lesson
// @Tags         lessons
// @Security     BearerAuth
// @Param        id  path  int  true  "Lesson id"
// @Success      204
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/v1/lessons/{id} [delete]
func (h *LessonHandler) Delete(c echo.Context) error {
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
