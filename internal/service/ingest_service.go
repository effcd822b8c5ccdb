package service

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/heimweh17/GatorGrades/internal/ingest"
	"github.com/heimweh17/GatorGrades/internal/metrics"
	"github.com/heimweh17/GatorGrades/internal/model"
	"github.com/heimweh17/GatorGrades/internal/response"
	"github.com/heimweh17/GatorGrades/internal/validator"
)

// IngestService turns an uploaded CSV stream into one transactional
// batch of grade upserts.
type IngestService struct {
	store IngestStore
	log   zerolog.Logger
}

func NewIngestService(store IngestStore, log zerolog.Logger) *IngestService {
	return &IngestService{
		store: store,
		log:   log.With().Str("component", "ingest_service").Logger(),
	}
}

// Ingest parses, validates, and applies a grade export. The whole file
// commits atomically; the first bad row aborts with an error wrapping
// ingest.ErrBadFile and nothing is stored. A header-only file is a
// valid empty batch.
func (s *IngestService) Ingest(ctx context.Context, r io.Reader) (model.IngestResult, error) {
	rows, err := ingest.ParseCSV(r)
	if err != nil {
		return model.IngestResult{}, err
	}

	for _, row := range rows {
		if fields := validator.Struct(row); fields != nil {
			return model.IngestResult{}, &ingest.RowError{
				Line:   row.Line,
				Reason: joinFieldErrors(fields),
			}
		}
	}

	result, err := s.store.ApplyRows(ctx, rows)
	if err != nil {
		return model.IngestResult{}, err
	}

	metrics.IngestedRows.Add(float64(result.Upserts))
	evt := s.log.Info().
		Int("rows", len(rows)).
		Int("upserts", result.Upserts).
		Int("new_grades", result.NewGrades)
	if reqID := response.RequestID(ctx); reqID != "" {
		evt = evt.Str("request_id", reqID)
	}
	evt.Msg("Grade export ingested")

	return result, nil
}

// joinFieldErrors renders a validator field map deterministically, e.g.
// `course_code: course_code is a required field`.
func joinFieldErrors(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}
	return strings.Join(parts, "; ")
}
