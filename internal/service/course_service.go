package service

import (
	"context"

	"github.com/heimweh17/GatorGrades/internal/model"
)

type CourseService struct {
	courses CourseStore
}

func NewCourseService(courses CourseStore) *CourseService {
	return &CourseService{courses: courses}
}

func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	return s.courses.List(ctx)
}
