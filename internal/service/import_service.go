package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/collegeconnect/suggester-backend/internal/config"
	"github.com/collegeconnect/suggester-backend/internal/engine"
	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/collegeconnect/suggester-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// progressEvery controls how often import progress is published.
const progressEvery = 100

// ImportService ingests structured cutoff batches: per-row validation
// (bad rows rejected, batch proceeds), upsert into Postgres, then an
// atomic engine snapshot rebuild.
type ImportService interface {
	ImportBatch(ctx context.Context, rows []model.CutoffImportRow) (*model.ImportReport, error)
}

type importService struct {
	cutoffRepo  repository.CutoffRepository
	collegeRepo repository.CollegeRepository
	courseRepo  repository.CourseRepository
	suggestions SuggestionService
	rdb         *redis.Client
	log         zerolog.Logger
}

func NewImportService(
	cutoffRepo repository.CutoffRepository,
	collegeRepo repository.CollegeRepository,
	courseRepo repository.CourseRepository,
	suggestions SuggestionService,
	rdb *redis.Client,
	log zerolog.Logger,
) ImportService {
	return &importService{
		cutoffRepo:  cutoffRepo,
		collegeRepo: collegeRepo,
		courseRepo:  courseRepo,
		suggestions: suggestions,
		rdb:         rdb,
		log:         log.With().Str("component", "import_service").Logger(),
	}
}

func (s *importService) ImportBatch(ctx context.Context, rows []model.CutoffImportRow) (*model.ImportReport, error) {
	report := &model.ImportReport{Total: len(rows)}
	records := make([]model.AdmissionRecord, 0, len(rows))

	// Report codes repeat heavily within a batch; resolve each once.
	collegeIDs := map[int]int{}
	courseIDs := map[int]int{}

	for i := range rows {
		row := &rows[i]

		collegeID, err := s.resolveCollege(ctx, collegeIDs, row.CollegeCode)
		if err != nil {
			report.Rejected = append(report.Rejected, model.ImportRowError{
				Row: i, Reason: fmt.Sprintf("unknown college code %d", row.CollegeCode),
			})
			s.publishProgress(ctx, report, false, "")
			continue
		}
		courseID, err := s.resolveCourse(ctx, courseIDs, row.CourseCode)
		if err != nil {
			report.Rejected = append(report.Rejected, model.ImportRowError{
				Row: i, Reason: fmt.Sprintf("unknown course code %d", row.CourseCode),
			})
			s.publishProgress(ctx, report, false, "")
			continue
		}

		record := model.AdmissionRecord{
			CollegeID:         collegeID,
			CourseID:          courseID,
			Category:          row.Category,
			Round:             row.Round,
			ClosingRank:       row.ClosingRank,
			ClosingPercentile: row.ClosingPercentile,
			SeatsTotal:        row.SeatsTotal,
			Year:              row.Year,
		}
		if err := engine.ValidateRecord(i, &record); err != nil {
			ve := err.(*engine.ValidationError)
			report.Rejected = append(report.Rejected, model.ImportRowError{Row: ve.Row, Reason: ve.Reason})
			s.publishProgress(ctx, report, false, "")
			continue
		}

		records = append(records, record)
		report.Accepted++
		s.publishProgress(ctx, report, false, "")
	}

	if len(records) > 0 {
		if err := s.cutoffRepo.UpsertBatch(ctx, records); err != nil {
			s.publishProgress(ctx, report, true, "persist failed")
			return nil, fmt.Errorf("persist cutoffs: %w", err)
		}
		if err := s.suggestions.Rebuild(ctx); err != nil {
			s.publishProgress(ctx, report, true, "snapshot rebuild failed")
			return nil, fmt.Errorf("rebuild snapshot: %w", err)
		}
	}

	s.publishProgress(ctx, report, true, "")
	s.log.Info().
		Int("total", report.Total).
		Int("accepted", report.Accepted).
		Int("rejected", len(report.Rejected)).
		Msg("Cutoff batch imported")
	return report, nil
}

func (s *importService) resolveCollege(ctx context.Context, cache map[int]int, code int) (int, error) {
	if id, ok := cache[code]; ok {
		return id, nil
	}
	college, err := s.collegeRepo.GetByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	cache[code] = college.ID
	return college.ID, nil
}

func (s *importService) resolveCourse(ctx context.Context, cache map[int]int, code int) (int, error) {
	if id, ok := cache[code]; ok {
		return id, nil
	}
	course, err := s.courseRepo.GetByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	cache[code] = course.ID
	return course.ID, nil
}

// publishProgress pushes a progress event to the admin stream. Throttled
// to every progressEvery rows except for terminal events. Publish
// failures are logged, never fatal; progress is advisory.
func (s *importService) publishProgress(ctx context.Context, report *model.ImportReport, done bool, msg string) {
	processed := report.Accepted + len(report.Rejected)
	if !done && processed%progressEvery != 0 {
		return
	}
	event := model.ImportProgress{
		Processed: processed,
		Accepted:  report.Accepted,
		Rejected:  len(report.Rejected),
		Total:     report.Total,
		Done:      done,
		Message:   msg,
	}
	payload, _ := json.Marshal(event)
	if err := s.rdb.Publish(ctx, config.CacheKey.ImportProgressChannel(), payload).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Import progress publish failed")
	}
}
