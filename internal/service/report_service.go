package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"

	"github.com/heimweh17/GatorGrades/internal/model"
)

// passThreshold is the fraction of max_score counted as passing.
const passThreshold = 60.0

// bucketCount covers pct 0..100: ten 10-point buckets plus the
// singleton bucket for exactly 100%.
const bucketCount = 11

// ReportService computes the read-side aggregates: course summary,
// score distribution, and per-assignment trends.
type ReportService struct {
	courses CourseStore
	reports ReportStore
	log     zerolog.Logger
}

func NewReportService(courses CourseStore, reports ReportStore, log zerolog.Logger) *ReportService {
	return &ReportService{
		courses: courses,
		reports: reports,
		log:     log.With().Str("component", "report_service").Logger(),
	}
}

// Summary aggregates every grade in the course into per-grade
// percentage statistics. A course without grades yields zeros; an
// unknown course id yields ErrCourseNotFound.
func (s *ReportService) Summary(ctx context.Context, courseID int) (*model.CourseSummary, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	summary := &model.CourseSummary{CourseID: course.ID, Code: course.Code}

	summary.Assignments, summary.Students, err = s.reports.GradeCounts(ctx, courseID)
	if err != nil {
		return nil, err
	}

	pcts, err := s.reports.GradePcts(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if len(pcts) == 0 {
		return summary, nil
	}

	data := stats.Float64Data(pcts)
	if summary.AvgPct, err = data.Mean(); err != nil {
		return nil, fmt.Errorf("mean: %w", err)
	}
	if summary.MedianPct, err = data.Median(); err != nil {
		return nil, fmt.Errorf("median: %w", err)
	}
	if summary.StddevPct, err = data.StandardDeviationPopulation(); err != nil {
		return nil, fmt.Errorf("stddev: %w", err)
	}

	passed := 0
	for _, pct := range pcts {
		if pct >= passThreshold {
			passed++
		}
	}
	summary.PassRatePct = float64(passed) / float64(len(pcts)) * 100

	return summary, nil
}

// Distribution buckets the course's grades (optionally one assignment's)
// into the 11 fixed histogram buckets. Courses without matching grades,
// including unknown ids, yield all-zero buckets.
func (s *ReportService) Distribution(ctx context.Context, courseID, assignmentID int) ([]model.DistributionBucket, error) {
	counts, err := s.reports.BucketCounts(ctx, courseID, assignmentID)
	if err != nil {
		return nil, err
	}
	return fillBuckets(counts), nil
}

// Trends returns the mean percentage per graded assignment, ordered by
// due date then assignment id.
func (s *ReportService) Trends(ctx context.Context, courseID int) ([]model.AssignmentTrend, error) {
	trends, err := s.reports.Trends(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if trends == nil {
		trends = []model.AssignmentTrend{}
	}
	return trends, nil
}

// fillBuckets expands sparse bucket counts into the full ascending
// 0..10 range with zero-filled gaps and "{lo}-{hi}%" labels, hi capped
// at 100.
func fillBuckets(counts map[int]int) []model.DistributionBucket {
	buckets := make([]model.DistributionBucket, bucketCount)
	for i := range buckets {
		lo := i * 10
		hi := (i + 1) * 10
		if hi > 100 {
			hi = 100
		}
		buckets[i] = model.DistributionBucket{
			Bucket: i,
			Count:  counts[i],
			Label:  fmt.Sprintf("%d-%d%%", lo, hi),
		}
	}
	return buckets
}
