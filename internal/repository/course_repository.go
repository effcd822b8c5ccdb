package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heimweh17/GatorGrades/internal/model"
)

// CourseRepository handles course data access.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// List retrieves all courses.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, code, title, term, created_at FROM courses ORDER BY code, term`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Code, &c.Title, &c.Term, &c.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

// GetByID retrieves a course by its ID. Returns pgx.ErrNoRows if absent.
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, title, term, created_at FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Code, &c.Title, &c.Term, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}
