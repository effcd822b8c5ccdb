package model

import "time"

// Course represents one offering of a course in a given term.
// (code, term) is the natural key used by CSV ingestion.
type Course struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	Title     string    `json:"title"`
	Term      string    `json:"term"`
	CreatedAt time.Time `json:"-"`
}
