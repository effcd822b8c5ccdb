// Package fixture seeds demo data for local development and tests.
// Seeding is always explicit (cmd/seed-demo or test setup); the API
// never inserts data on its own.
package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heimweh17/GatorGrades/internal/model"
)

// SeedDemo inserts one course with two assignments, two students, and
// four grades. It is idempotent: if any course already exists, nothing
// is inserted.
func SeedDemo(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return fmt.Errorf("count courses: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	course := model.Course{
		Code:  "COP3530",
		Title: "Data Structures & Algorithms",
		Term:  "Fall 2025",
	}
	err = tx.QueryRow(ctx,
		`INSERT INTO courses (code, title, term) VALUES ($1, $2, $3) RETURNING id`,
		course.Code, course.Title, course.Term).Scan(&course.ID)
	if err != nil {
		return fmt.Errorf("insert course: %w", err)
	}

	due1 := time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
	due2 := time.Date(2025, 9, 17, 0, 0, 0, 0, time.UTC)
	assignments := []model.Assignment{
		{CourseID: course.ID, Title: "HW1", DueDate: &due1, MaxScore: 100},
		{CourseID: course.ID, Title: "Quiz1", DueDate: &due2, MaxScore: 50},
	}
	for i := range assignments {
		a := &assignments[i]
		err = tx.QueryRow(ctx,
			`INSERT INTO assignments (course_id, title, due_date, max_score) VALUES ($1, $2, $3, $4) RETURNING id`,
			a.CourseID, a.Title, a.DueDate, a.MaxScore).Scan(&a.ID)
		if err != nil {
			return fmt.Errorf("insert assignment %q: %w", a.Title, err)
		}
	}

	students := []model.Student{
		{ExternalID: "12345678", Name: "Alex Liu"},
		{ExternalID: "87654321", Name: "Ben Zhang"},
	}
	for i := range students {
		s := &students[i]
		err = tx.QueryRow(ctx,
			`INSERT INTO students (external_id, name) VALUES ($1, $2) RETURNING id`,
			s.ExternalID, s.Name).Scan(&s.ID)
		if err != nil {
			return fmt.Errorf("insert student %q: %w", s.ExternalID, err)
		}
	}

	gradedHW := time.Date(2025, 9, 11, 0, 0, 0, 0, time.UTC)
	gradedQuiz := time.Date(2025, 9, 18, 0, 0, 0, 0, time.UTC)
	grades := []model.Grade{
		{AssignmentID: assignments[0].ID, StudentID: students[0].ID, Score: 92, GradedAt: &gradedHW},
		{AssignmentID: assignments[0].ID, StudentID: students[1].ID, Score: 81, GradedAt: &gradedHW},
		{AssignmentID: assignments[1].ID, StudentID: students[0].ID, Score: 45, GradedAt: &gradedQuiz},
		{AssignmentID: assignments[1].ID, StudentID: students[1].ID, Score: 39, GradedAt: &gradedQuiz},
	}
	for _, g := range grades {
		_, err := tx.Exec(ctx,
			`INSERT INTO grades (assignment_id, student_id, score, graded_at) VALUES ($1, $2, $3, $4)`,
			g.AssignmentID, g.StudentID, g.Score, g.GradedAt)
		if err != nil {
			return fmt.Errorf("insert grade: %w", err)
		}
	}

	return tx.Commit(ctx)
}
