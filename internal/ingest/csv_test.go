package ingest

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `course_code,term,assignment_title,assignment_due,student_external_id,student_name,score,max_score,graded_at
COP3530,Fall 2025,HW1,2025-09-10,12345678,Alex Liu,92,100,2025-09-11
COP3530,Fall 2025,Quiz1,2025-09-17,87654321,Ben Zhang,39,50,2025-09-18
`

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleExport))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "COP3530", first.CourseCode)
	assert.Equal(t, "Fall 2025", first.Term)
	assert.Equal(t, "HW1", first.AssignmentTitle)
	assert.Equal(t, "12345678", first.StudentExternalID)
	assert.Equal(t, "Alex Liu", first.StudentName)
	assert.Equal(t, 92.0, first.Score)
	require.NotNil(t, first.MaxScore)
	assert.Equal(t, 100.0, *first.MaxScore)
	require.NotNil(t, first.AssignmentDue)
	assert.Equal(t, time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC), *first.AssignmentDue)
	assert.Equal(t, 2, first.Line)

	second := rows[1]
	require.NotNil(t, second.MaxScore)
	assert.Equal(t, 50.0, *second.MaxScore)
	assert.Equal(t, 3, second.Line)
}

func TestParseCSV_OptionalColumnsAbsent(t *testing.T) {
	data := `course_code,term,assignment_title,student_external_id,score
COP3530,Fall 2025,HW1,12345678,88
`
	rows, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Nil(t, row.MaxScore)
	assert.Nil(t, row.AssignmentDue)
	assert.Nil(t, row.GradedAt)
	assert.Empty(t, row.StudentName)
	assert.Empty(t, row.CourseTitle)
}

func TestParseCSV_BlankScoreIsZero(t *testing.T) {
	data := `course_code,term,assignment_title,student_external_id,score
COP3530,Fall 2025,HW1,12345678,
`
	rows, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].Score)
}

func TestParseCSV_MissingRequiredColumn(t *testing.T) {
	data := `course_code,term,student_external_id,score
COP3530,Fall 2025,12345678,88
`
	_, err := ParseCSV(strings.NewReader(data))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadFile))
	assert.Contains(t, err.Error(), "assignment_title")
}

func TestParseCSV_MalformedScore(t *testing.T) {
	data := `course_code,term,assignment_title,student_external_id,score
COP3530,Fall 2025,HW1,12345678,ninety
`
	_, err := ParseCSV(strings.NewReader(data))
	require.Error(t, err)

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 2, rowErr.Line)
	assert.Equal(t, "score", rowErr.Field)
	assert.True(t, errors.Is(err, ErrBadFile))
}

func TestParseCSV_MalformedDate(t *testing.T) {
	data := `course_code,term,assignment_title,student_external_id,score,graded_at
COP3530,Fall 2025,HW1,12345678,88,09/11/2025
`
	_, err := ParseCSV(strings.NewReader(data))
	require.Error(t, err)

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, "graded_at", rowErr.Field)
}

func TestParseCSV_ShortRecord(t *testing.T) {
	data := `course_code,term,assignment_title,student_external_id,score
COP3530,Fall 2025
`
	_, err := ParseCSV(strings.NewReader(data))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadFile))
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	data := "course_code,term,assignment_title,student_external_id,score\n"
	rows, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseCSV_EmptyFile(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadFile))
}
