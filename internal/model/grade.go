package model

import "time"

// Grade holds one student's score on one assignment. At most one grade
// exists per (assignment, student); re-ingestion overwrites the score.
type Grade struct {
	ID           int        `json:"id"`
	AssignmentID int        `json:"assignment_id"`
	StudentID    int        `json:"student_id"`
	Score        float64    `json:"score"`
	GradedAt     *time.Time `json:"graded_at,omitempty"`
	CreatedAt    time.Time  `json:"-"`
}
