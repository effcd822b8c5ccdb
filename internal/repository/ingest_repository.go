package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heimweh17/GatorGrades/internal/ingest"
	"github.com/heimweh17/GatorGrades/internal/metrics"
	"github.com/heimweh17/GatorGrades/internal/model"
)

// defaultMaxScore applies when a row creates an assignment without a
// max_score column value.
const defaultMaxScore = 100

// IngestRepository applies parsed grade exports to the schema. One call
// to ApplyRows is one transaction: every natural-key resolution and
// score upsert commits together or not at all.
type IngestRepository struct {
	pool *pgxpool.Pool
}

// NewIngestRepository creates a new IngestRepository.
func NewIngestRepository(pool *pgxpool.Pool) *IngestRepository {
	return &IngestRepository{pool: pool}
}

// ApplyRows upserts every row of a batch inside a single transaction.
// Courses, assignments and students are created lazily on first
// encounter of their natural key; grades are inserted or overwritten by
// (assignment, student). Upserts counts all rows, NewGrades only
// inserted grades.
func (r *IngestRepository) ApplyRows(ctx context.Context, batch []ingest.Row) (model.IngestResult, error) {
	var result model.IngestResult

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return result, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// Natural-key caches for the duration of the batch. Re-resolving
	// the same course or student per row would be correct but wasteful.
	type assignmentKey struct {
		courseID int
		title    string
	}
	courseIDs := make(map[[2]string]int)
	assignments := make(map[assignmentKey]assignmentRef)
	studentIDs := make(map[string]int)

	pcts := make([]float64, 0, len(batch))
	for _, row := range batch {
		courseKey := [2]string{row.CourseCode, row.Term}
		courseID, ok := courseIDs[courseKey]
		if !ok {
			if courseID, err = r.resolveCourse(ctx, tx, row); err != nil {
				return model.IngestResult{}, mapPgError(err)
			}
			courseIDs[courseKey] = courseID
		}

		aKey := assignmentKey{courseID: courseID, title: row.AssignmentTitle}
		ref, ok := assignments[aKey]
		if !ok {
			if ref, err = r.resolveAssignment(ctx, tx, courseID, row); err != nil {
				return model.IngestResult{}, mapPgError(err)
			}
			assignments[aKey] = ref
		}

		studentID, ok := studentIDs[row.StudentExternalID]
		if !ok {
			if studentID, err = r.resolveStudent(ctx, tx, row); err != nil {
				return model.IngestResult{}, mapPgError(err)
			}
			studentIDs[row.StudentExternalID] = studentID
		}

		inserted, err := r.upsertGrade(ctx, tx, ref.id, studentID, row)
		if err != nil {
			return model.IngestResult{}, mapPgError(err)
		}
		if inserted {
			result.NewGrades++
		}
		result.Upserts++
		pcts = append(pcts, row.Score/ref.maxScore*100)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.IngestResult{}, mapPgError(err)
	}

	// Observed only after commit so a rolled-back batch never skews
	// the histogram.
	for _, pct := range pcts {
		metrics.GradePctHistogram.Observe(pct)
	}
	return result, nil
}

// resolveCourse finds or creates the course for (code, term). The title
// defaults to the code when the export carries no course_title.
func (r *IngestRepository) resolveCourse(ctx context.Context, tx pgx.Tx, row ingest.Row) (int, error) {
	var id int
	err := tx.QueryRow(ctx,
		`SELECT id FROM courses WHERE code = $1 AND term = $2`,
		row.CourseCode, row.Term).Scan(&id)
	if !errors.Is(err, pgx.ErrNoRows) {
		return id, err
	}

	title := row.CourseTitle
	if title == "" {
		title = row.CourseCode
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO courses (code, term, title) VALUES ($1, $2, $3) RETURNING id`,
		row.CourseCode, row.Term, title).Scan(&id)
	return id, err
}

// assignmentRef carries the resolved id together with the stored
// max_score, which percentage calculations need per row.
type assignmentRef struct {
	id       int
	maxScore float64
}

// resolveAssignment finds or creates the assignment for (course, title).
// max_score and due_date are fixed at creation; later rows that carry
// different values do not alter them.
func (r *IngestRepository) resolveAssignment(ctx context.Context, tx pgx.Tx, courseID int, row ingest.Row) (assignmentRef, error) {
	var ref assignmentRef
	err := tx.QueryRow(ctx,
		`SELECT id, max_score FROM assignments WHERE course_id = $1 AND title = $2`,
		courseID, row.AssignmentTitle).Scan(&ref.id, &ref.maxScore)
	if !errors.Is(err, pgx.ErrNoRows) {
		return ref, err
	}

	ref.maxScore = defaultMaxScore
	if row.MaxScore != nil {
		ref.maxScore = *row.MaxScore
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO assignments (course_id, title, due_date, max_score)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		courseID, row.AssignmentTitle, row.AssignmentDue, ref.maxScore).Scan(&ref.id)
	return ref, err
}

// resolveStudent finds or creates the student by external ID. The name
// is set at creation only.
func (r *IngestRepository) resolveStudent(ctx context.Context, tx pgx.Tx, row ingest.Row) (int, error) {
	var id int
	err := tx.QueryRow(ctx,
		`SELECT id FROM students WHERE external_id = $1`,
		row.StudentExternalID).Scan(&id)
	if !errors.Is(err, pgx.ErrNoRows) {
		return id, err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO students (external_id, name) VALUES ($1, $2) RETURNING id`,
		row.StudentExternalID, row.StudentName).Scan(&id)
	return id, err
}

// upsertGrade inserts the grade for (assignment, student) or overwrites
// the stored score. Reports whether a new row was inserted.
func (r *IngestRepository) upsertGrade(ctx context.Context, tx pgx.Tx, assignmentID, studentID int, row ingest.Row) (bool, error) {
	var id int
	err := tx.QueryRow(ctx,
		`SELECT id FROM grades WHERE assignment_id = $1 AND student_id = $2`,
		assignmentID, studentID).Scan(&id)
	if err == nil {
		_, err = tx.Exec(ctx, `UPDATE grades SET score = $1 WHERE id = $2`, row.Score, id)
		return false, err
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO grades (assignment_id, student_id, score, graded_at) VALUES ($1, $2, $3, $4)`,
		assignmentID, studentID, row.Score, row.GradedAt)
	return true, err
}
