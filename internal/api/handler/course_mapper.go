package handler

import (
	"time"

	"github.com/coursehub/enrollment-api/internal/core/domain"
	"github.com/coursehub/enrollment-api/internal/core/ports"
)

func toCourseResponse(c *domain.Course) courseResponse {
	return courseResponse{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Owner:        c.Owner.Username,
		Price:        c.Price,
		IsPublished:  c.IsPublished,
		LessonsCount: c.LessonsCount,
		CreatedAt:    c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toCourseListResponse(list *ports.CourseList) courseListResponse {
	items := make([]courseResponse, 0, len(list.Items))
	for i := range list.Items {
		items = append(items, toCourseResponse(&list.Items[i]))
	}
	return courseListResponse{
		Items:      items,
		Total:      list.Total,
		Page:       list.Page,
		Limit:      list.Limit,
		TotalPages: list.TotalPages,
	}
}

func toLessonResponse(l *domain.Lesson) lessonResponse {
	return lessonResponse{
		ID:          l.ID,
		Course:      l.CourseID,
		Title:       l.Title,
		Content:     l.Content,
		DurationMin: l.DurationMin,
		OrderIndex:  l.OrderIndex,
	}
}

func toEnrollmentResponse(e *domain.Enrollment) enrollmentResponse {
	return enrollmentResponse{
		ID:          e.ID,
		Course:      e.CourseID,
		CourseTitle: e.Course.Title,
		Student:     e.StudentID,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
