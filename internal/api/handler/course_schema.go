package handler

// --- Request types ---

type createCourseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	IsPublished bool    `json:"is_published"`
}

// updateCourseRequest uses pointers so the handler distinguishes "absent"
// from "zero value". PUT and PATCH both go through this shape: a PUT with
// fields omitted keeps the stored values rather than resetting them.
type updateCourseRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	IsPublished *bool    `json:"is_published"`
}

type listCoursesQuery struct {
	Search   string `query:"search"`
	Ordering string `query:"ordering"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

// --- Response types ---

type courseResponse struct {
	ID           uint    `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Owner        string  `json:"owner"`
	Price        float64 `json:"price"`
	IsPublished  bool    `json:"is_published"`
	LessonsCount int64   `json:"lessons_count"`
	CreatedAt    string  `json:"created_at"`
}

type courseListResponse struct {
	Items      []courseResponse `json:"items"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

type lessonResponse struct {
	ID          uint   `json:"id"`
	Course      uint   `json:"course"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	DurationMin int    `json:"duration_min"`
	OrderIndex  int    `json:"order_index"`
}

type enrollmentResponse struct {
	ID          uint   `json:"id"`
	Course      uint   `json:"course"`
	CourseTitle string `json:"course_title"`
	Student     uint   `json:"student"`
	CreatedAt   string `json:"created_at"`
}
