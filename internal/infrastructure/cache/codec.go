package cache

import (
	"encoding/json"
	"time"

	"github.com/coursehub/enrollment-api/internal/core/domain"
)

// cachedCourse is the serialization shape stored in Redis. The domain model
// hides OwnerID and Owner from API responses with json:"-", so marshalling
// the model directly would zero ownership on every hit and break the
// authorization check against owner_id. This shape carries every field the
// read paths depend on.
type cachedCourse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	OwnerID       uint      `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	Price         float64   `json:"price"`
	IsPublished   bool      `json:"is_published"`
	CreatedAt     time.Time `json:"created_at"`
	LessonsCount  int64     `json:"lessons_count"`
}

// cachedList pairs the public listing's first page with the store-reported
// total, so a hit renders the same paging metadata as the miss that
// populated it.
type cachedList struct {
	Items []cachedCourse `json:"items"`
	Total int64          `json:"total"`
}

func toCached(c *domain.Course) cachedCourse {
	return cachedCourse{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		OwnerID:       c.OwnerID,
		OwnerUsername: c.Owner.Username,
		Price:         c.Price,
		IsPublished:   c.IsPublished,
		CreatedAt:     c.CreatedAt,
		LessonsCount:  c.LessonsCount,
	}
}

func fromCached(cc cachedCourse) domain.Course {
	return domain.Course{
		ID:           cc.ID,
		Title:        cc.Title,
		Description:  cc.Description,
		OwnerID:      cc.OwnerID,
		Owner:        domain.User{ID: cc.OwnerID, Username: cc.OwnerUsername},
		Price:        cc.Price,
		IsPublished:  cc.IsPublished,
		CreatedAt:    cc.CreatedAt,
		LessonsCount: cc.LessonsCount,
	}
}

func encodeCourse(c *domain.Course) ([]byte, error) {
	return json.Marshal(toCached(c))
}

func decodeCourse(raw []byte) (*domain.Course, error) {
	var cc cachedCourse
	if err := json.Unmarshal(raw, &cc); err != nil {
		return nil, err
	}
	course := fromCached(cc)
	return &course, nil
}

func encodeCourseList(courses []domain.Course, total int64) ([]byte, error) {
	items := make([]cachedCourse, 0, len(courses))
	for i := range courses {
		items = append(items, toCached(&courses[i]))
	}
	return json.Marshal(cachedList{Items: items, Total: total})
}

func decodeCourseList(raw []byte) ([]domain.Course, int64, error) {
	var cl cachedList
	if err := json.Unmarshal(raw, &cl); err != nil {
		return nil, 0, err
	}
	courses := make([]domain.Course, 0, len(cl.Items))
	for _, item := range cl.Items {
		courses = append(courses, fromCached(item))
	}
	return courses, cl.Total, nil
}
