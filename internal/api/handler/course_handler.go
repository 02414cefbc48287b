package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/coursehub/enrollment-api/internal/core/ports"
)

// CourseHandler handles HTTP requests for course operations.
type CourseHandler struct {
	service ports.CourseService
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List handles GET /api/v1/courses.
//
// @Summary      List courses visible to the caller
// @Tags         courses
// @Produce      json
// @Param        search    query     string  false  "Substring match on title"
// @Param        ordering  query     string  false  "price or -created_at"
// @Param        page      query     int     false  "Page number, 1-based"
// @Param        limit     query     int     false  "Page size (max 100)"
// @Success      200       {object}  courseListResponse
// @Failure      500       {object}  map[string]any
// @Router       /api/v1/courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	var q listCoursesQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	list, err := h.service.List(c.Request().Context(), actorFromContext(c), ports.ListCoursesInput{
		Search:   q.Search,
		Ordering: q.Ordering,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCourseListResponse(list))
}

// Get handles GET /api/v1/courses/:id.
//
// @Summary      Get a course by id
// @Tags         courses
// @Produce      json
// @Param        id   path      int  true  "Course id"
// @Success      200  {object}  courseResponse
// @Failure      404  {object}  map[string]any
// @Router       /api/v1/courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	course, err := h.service.Get(c.Request().Context(), actorFromContext(c), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCourseResponse(course))
}

// Create handles POST /api/v1/courses.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course fields"
// @Success      201   {object}  courseResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/v1/courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	course, err := h.service.Create(c.Request().Context(), actor, ports.CreateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toCourseResponse(course))
}

// Update handles PUT and PATCH /api/v1/courses/:id. Both verbs apply a
// partial update: fields absent from the body keep their stored values.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Course id"
// @Param        body  body      updateCourseRequest  true  "Fields to change"
// @Success      200   {object}  courseResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /api/v1/courses/{id} [patch]
func (h *CourseHandler) Update(c echo.Context) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	course, err := h.service.Update(c.Request().Context(), actor, id, ports.UpdateCourseInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		IsPublished: req.IsPublished,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCourseResponse(course))
}

// Delete handles DELETE /api/v1/courses/:id.
//
// @Summary      Delete a course
// @Tags         courses
// @Security     BearerAuth
// @Param        id  path  int  true  "Course id"
// @Success      204
// @Failure      401  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /api/v1/courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
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

// pathID parses the :id path parameter. A malformed id renders as not found,
// matching how an unknown numeric id renders.
func pathID(c echo.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return uint(id), nil
}
