package model

import "time"

// Student is identified by the external (registrar) ID carried in grade
// exports. Students are not owned by a course; they span courses through
// their grades.
type Student struct {
	ID         int       `json:"id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"-"`
}
