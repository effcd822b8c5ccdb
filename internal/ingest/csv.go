// Package ingest parses CSV grade exports into typed rows. One uploaded
// file is one batch: any malformed row fails the whole parse so the
// caller never applies a partial file.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ErrBadFile marks any client-caused parse failure: unreadable CSV,
// missing required columns, or a malformed row. Handlers map it to a
// 400 without committing anything.
var ErrBadFile = errors.New("bad upload")

// dateLayout is the date format used for assignment_due and graded_at.
const dateLayout = "2006-01-02"

// requiredColumns are the natural-key columns plus score. A file whose
// header omits any of them is rejected before row parsing starts.
var requiredColumns = []string{"course_code", "term", "assignment_title", "student_external_id", "score"}

// Row is one parsed line of a grade export. Validation tags mirror the
// storage constraints so bad rows are rejected before any SQL runs.
type Row struct {
	CourseCode        string     `csv:"course_code" validate:"required"`
	Term              string     `csv:"term" validate:"required"`
	CourseTitle       string     `csv:"course_title"`
	AssignmentTitle   string     `csv:"assignment_title" validate:"required"`
	AssignmentDue     *time.Time `csv:"assignment_due"`
	StudentExternalID string     `csv:"student_external_id" validate:"required"`
	StudentName       string     `csv:"student_name"`
	Score             float64    `csv:"score" validate:"gte=0"`
	MaxScore          *float64   `csv:"max_score" validate:"omitempty,gt=0"`
	GradedAt          *time.Time `csv:"graded_at"`

	// Line is the 1-based line number in the uploaded file, for error
	// reporting.
	Line int `csv:"-" validate:"-"`
}

// RowError describes why a single line made the batch unusable.
type RowError struct {
	Line   int
	Field  string
	Reason string
}

func (e *RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("row %d: field %q: %s", e.Line, e.Field, e.Reason)
}

// Unwrap ties every row error to ErrBadFile so callers can match the
// whole failure class with errors.Is.
func (e *RowError) Unwrap() error { return ErrBadFile }

// ParseCSV reads a header-named grade export into rows. Missing score
// values parse as 0; missing max_score stays nil so the creation-time
// default applies downstream. Any unparseable value aborts with a
// RowError carrying the offending line.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrBadFile)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrBadFile, err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrBadFile, name)
		}
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, &RowError{Line: line, Reason: err.Error()}
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		row := Row{
			CourseCode:        field("course_code"),
			Term:              field("term"),
			CourseTitle:       field("course_title"),
			AssignmentTitle:   field("assignment_title"),
			StudentExternalID: field("student_external_id"),
			StudentName:       field("student_name"),
			Line:              line,
		}

		// A blank score means "recorded as zero", not an error.
		if raw := field("score"); raw != "" {
			score, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &RowError{Line: line, Field: "score", Reason: "not a number"}
			}
			row.Score = score
		}

		if raw := field("max_score"); raw != "" {
			maxScore, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, &RowError{Line: line, Field: "max_score", Reason: "not a number"}
			}
			row.MaxScore = &maxScore
		}

		if row.AssignmentDue, err = parseDate(field("assignment_due")); err != nil {
			return nil, &RowError{Line: line, Field: "assignment_due", Reason: "not a date (want YYYY-MM-DD)"}
		}
		if row.GradedAt, err = parseDate(field("graded_at")); err != nil {
			return nil, &RowError{Line: line, Field: "graded_at", Reason: "not a date (want YYYY-MM-DD)"}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
