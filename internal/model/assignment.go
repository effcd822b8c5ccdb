package model

import "time"

// Assignment belongs to exactly one course; (course_id, title) is the
// natural key. MaxScore is always positive and fixed at creation time.
type Assignment struct {
	ID        int        `json:"id"`
	CourseID  int        `json:"course_id"`
	Title     string     `json:"title"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	MaxScore  float64    `json:"max_score"`
	CreatedAt time.Time  `json:"-"`
}
