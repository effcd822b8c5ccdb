package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heimweh17/GatorGrades/internal/model"
)

// ReportRepository runs the read-side aggregation queries. Percentage
// math happens in SQL so numeric score columns never round-trip through
// intermediate types.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// GradeCounts returns the number of distinct assignments and distinct
// students that have at least one grade in the course.
func (r *ReportRepository) GradeCounts(ctx context.Context, courseID int) (assignments, students int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT a.id)::int, COUNT(DISTINCT g.student_id)::int
		 FROM assignments a
		 JOIN grades g ON g.assignment_id = a.id
		 WHERE a.course_id = $1`, courseID,
	).Scan(&assignments, &students)
	return assignments, students, err
}

// GradePcts returns one percentage observation per grade in the course:
// score / max_score * 100.
func (r *ReportRepository) GradePcts(ctx context.Context, courseID int) ([]float64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT (g.score / a.max_score * 100)::float8
		 FROM grades g
		 JOIN assignments a ON a.id = g.assignment_id
		 WHERE a.course_id = $1`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pcts []float64
	for rows.Next() {
		var pct float64
		if err := rows.Scan(&pct); err != nil {
			return nil, err
		}
		pcts = append(pcts, pct)
	}
	return pcts, rows.Err()
}

// BucketCounts groups the course's grades by histogram bucket
// floor(pct/10). A perfect score lands in bucket 10; out-of-range
// scores from permissive ingestion clamp there too. assignmentID 0
// means no filter.
func (r *ReportRepository) BucketCounts(ctx context.Context, courseID, assignmentID int) (map[int]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT LEAST(FLOOR(g.score / a.max_score * 10), 10)::int AS bucket, COUNT(*)::int
		 FROM grades g
		 JOIN assignments a ON a.id = g.assignment_id
		 WHERE a.course_id = $1 AND ($2 = 0 OR g.assignment_id = $2)
		 GROUP BY bucket
		 ORDER BY bucket`, courseID, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var bucket, count int
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, err
		}
		counts[bucket] = count
	}
	return counts, rows.Err()
}

// Trends returns the mean percentage per assignment with at least one
// grade, ordered by due date ascending with nulls last, ties broken by
// assignment id.
func (r *ReportRepository) Trends(ctx context.Context, courseID int) ([]model.AssignmentTrend, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.title, a.due_date, AVG(g.score / a.max_score * 100)::float8
		 FROM assignments a
		 JOIN grades g ON g.assignment_id = a.id
		 WHERE a.course_id = $1
		 GROUP BY a.id, a.title, a.due_date
		 ORDER BY a.due_date ASC NULLS LAST, a.id ASC`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []model.AssignmentTrend
	for rows.Next() {
		var (
			t   model.AssignmentTrend
			due *time.Time
		)
		if err := rows.Scan(&t.AssignmentID, &t.Title, &due, &t.AvgPct); err != nil {
			return nil, err
		}
		if due != nil {
			formatted := due.Format("2006-01-02")
			t.DueDate = &formatted
		}
		trends = append(trends, t)
	}
	return trends, rows.Err()
}
