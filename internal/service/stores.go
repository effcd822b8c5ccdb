package service

import (
	"context"
	"errors"

	"github.com/heimweh17/GatorGrades/internal/ingest"
	"github.com/heimweh17/GatorGrades/internal/model"
)

// ErrCourseNotFound signals that a referenced course id does not exist.
var ErrCourseNotFound = errors.New("course not found")

// CourseStore is the course lookup surface services need. Implemented
// by repository.CourseRepository.
type CourseStore interface {
	List(ctx context.Context) ([]model.Course, error)
	GetByID(ctx context.Context, id int) (*model.Course, error)
}

// ReportStore is the aggregation query surface. Implemented by
// repository.ReportRepository.
type ReportStore interface {
	GradeCounts(ctx context.Context, courseID int) (assignments, students int, err error)
	GradePcts(ctx context.Context, courseID int) ([]float64, error)
	BucketCounts(ctx context.Context, courseID, assignmentID int) (map[int]int, error)
	Trends(ctx context.Context, courseID int) ([]model.AssignmentTrend, error)
}

// IngestStore applies a parsed batch transactionally. Implemented by
// repository.IngestRepository.
type IngestStore interface {
	ApplyRows(ctx context.Context, batch []ingest.Row) (model.IngestResult, error)
}
