package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/heimweh17/GatorGrades/internal/model"
)

type MockCourseStore struct {
	mock.Mock
}

func (m *MockCourseStore) List(ctx context.Context) ([]model.Course, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Course), args.Error(1)
}

func (m *MockCourseStore) GetByID(ctx context.Context, id int) (*model.Course, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Course), args.Error(1)
}

type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) GradeCounts(ctx context.Context, courseID int) (int, int, error) {
	args := m.Called(courseID)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockReportStore) GradePcts(ctx context.Context, courseID int) ([]float64, error) {
	args := m.Called(courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockReportStore) BucketCounts(ctx context.Context, courseID, assignmentID int) (map[int]int, error) {
	args := m.Called(courseID, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]int), args.Error(1)
}

func (m *MockReportStore) Trends(ctx context.Context, courseID int) ([]model.AssignmentTrend, error) {
	args := m.Called(courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AssignmentTrend), args.Error(1)
}

func newReportService(courses *MockCourseStore, reports *MockReportStore) *ReportService {
	return NewReportService(courses, reports, zerolog.Nop())
}

func TestSummary_CanonicalFixture(t *testing.T) {
	// Two assignments, two students: 90/100, 80/100, 45/50, 40/50.
	courses := new(MockCourseStore)
	reports := new(MockReportStore)
	courses.On("GetByID", 1).Return(&model.Course{ID: 1, Code: "COP3530"}, nil)
	reports.On("GradeCounts", 1).Return(2, 2, nil)
	reports.On("GradePcts", 1).Return([]float64{90, 80, 90, 80}, nil)

	summary, err := newReportService(courses, reports).Summary(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.CourseID)
	assert.Equal(t, "COP3530", summary.Code)
	assert.Equal(t, 2, summary.Assignments)
	assert.Equal(t, 2, summary.Students)
	assert.InDelta(t, 85.0, summary.AvgPct, 1e-6)
	assert.InDelta(t, 85.0, summary.MedianPct, 1e-6)
	assert.InDelta(t, 5.0, summary.StddevPct, 1e-6)
	assert.InDelta(t, 100.0, summary.PassRatePct, 1e-6)
}

func TestSummary_PassRate(t *testing.T) {
	courses := new(MockCourseStore)
	reports := new(MockReportStore)
	courses.On("GetByID", 1).Return(&model.Course{ID: 1, Code: "COP3530"}, nil)
	reports.On("GradeCounts", 1).Return(1, 4, nil)
	// One grade exactly at the threshold counts as passing.
	reports.On("GradePcts", 1).Return([]float64{59.9, 60, 75, 20}, nil)

	summary, err := newReportService(courses, reports).Summary(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, summary.PassRatePct, 1e-6)
}

func TestSummary_CourseWithoutGrades(t *testing.T) {
	courses := new(MockCourseStore)
	reports := new(MockReportStore)
	courses.On("GetByID", 7).Return(&model.Course{ID: 7, Code: "CEN3031"}, nil)
	reports.On("GradeCounts", 7).Return(0, 0, nil)
	reports.On("GradePcts", 7).Return(nil, nil)

	summary, err := newReportService(courses, reports).Summary(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 7, summary.CourseID)
	assert.Zero(t, summary.Assignments)
	assert.Zero(t, summary.Students)
	assert.Zero(t, summary.AvgPct)
	assert.Zero(t, summary.MedianPct)
	assert.Zero(t, summary.StddevPct)
	assert.Zero(t, summary.PassRatePct)
}

func TestSummary_UnknownCourse(t *testing.T) {
	courses := new(MockCourseStore)
	reports := new(MockReportStore)
	courses.On("GetByID", 999).Return(nil, pgx.ErrNoRows)

	_, err := newReportService(courses, reports).Summary(context.Background(), 999)
	assert.ErrorIs(t, err, ErrCourseNotFound)
	reports.AssertNotCalled(t, "GradePcts", mock.Anything)
}

func TestDistribution_AlwaysElevenBuckets(t *testing.T) {
	courses := new(MockCourseStore)
	reports := new(MockReportStore)
	reports.On("BucketCounts", 1, 0).Return(map[int]int{8: 2, 9: 1, 10: 3}, nil)

	buckets, err := newReportService(courses, reports).Distribution(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, buckets, 11)

	total := 0
	for i, b := range buckets {
		assert.Equal(t, i, b.Bucket)
		assert.GreaterOrEqual(t, b.Count, 0)
		total += b.Count
	}
	assert.Equal(t, 6, total)
	assert.Equal(t, 3, buckets[10].Count)
}

func TestDistribution_UnknownCourseIsAllZero(t *testing.T) {
	courses := new(MockCourseStore)
	reports := new(MockReportStore)
	reports.On("BucketCounts", 999, 0).Return(map[int]int{}, nil)

	buckets, err := newReportService(courses, reports).Distribution(context.Background(), 999, 0)
	require.NoError(t, err)
	require.Len(t, buckets, 11)
	for _, b := range buckets {
		assert.Zero(t, b.Count)
	}
}

func TestFillBuckets_Labels(t *testing.T) {
	buckets := fillBuckets(nil)
	require.Len(t, buckets, 11)

	assert.Equal(t, "0-10%", buckets[0].Label)
	assert.Equal(t, "90-100%", buckets[9].Label)
	// Bucket 10 is the singleton for perfect scores; the upper bound
	// stays capped at 100.
	assert.Equal(t, "100-100%", buckets[10].Label)
}

func TestTrends_EmptyCourse(t *testing.T) {
	courses := new(MockCourseStore)
	reports := new(MockReportStore)
	reports.On("Trends", 3).Return(nil, nil)

	trends, err := newReportService(courses, reports).Trends(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, trends)
	assert.Empty(t, trends)
}

func TestTrends_PassThrough(t *testing.T) {
	due := "2025-09-10"
	rows := []model.AssignmentTrend{
		{AssignmentID: 1, Title: "HW1", DueDate: &due, AvgPct: 86.5},
		{AssignmentID: 2, Title: "Quiz1", DueDate: nil, AvgPct: 84},
	}
	courses := new(MockCourseStore)
	reports := new(MockReportStore)
	reports.On("Trends", 1).Return(rows, nil)

	trends, err := newReportService(courses, reports).Trends(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, rows, trends)
}
