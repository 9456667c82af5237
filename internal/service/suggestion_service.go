package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync/atomic"

	"github.com/collegeconnect/suggester-backend/internal/config"
	"github.com/collegeconnect/suggester-backend/internal/engine"
	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/collegeconnect/suggester-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// SuggestionService owns the engine snapshot and answers student queries
// against it. The snapshot is replaced wholesale on rebuild; in-flight
// queries keep reading the suggester they grabbed.
type SuggestionService interface {
	Rebuild(ctx context.Context) error
	Suggest(ctx context.Context, q *model.StudentQuery) (*model.SuggestionResult, error)
	CollegeCutoffs(ctx context.Context, collegeID int, q *model.StudentQuery) ([]model.AdmissionRecord, error)
	Statistics(ctx context.Context, q *model.StudentQuery) (*model.ProfileStatistics, error)
	SnapshotVersion() string
}

// engineState pairs one immutable suggester with the table version it was
// built from.
type engineState struct {
	suggester *engine.Suggester
	version   string
}

type suggestionService struct {
	cutoffRepo  repository.CutoffRepository
	collegeRepo repository.CollegeRepository
	courseRepo  repository.CourseRepository
	regionRepo  repository.RegionRepository
	ruleRepo    repository.CategoryRuleRepository
	rdb         *redis.Client
	cfg         *config.Config
	log         zerolog.Logger

	current atomic.Pointer[engineState]
}

func NewSuggestionService(
	cutoffRepo repository.CutoffRepository,
	collegeRepo repository.CollegeRepository,
	courseRepo repository.CourseRepository,
	regionRepo repository.RegionRepository,
	ruleRepo repository.CategoryRuleRepository,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) SuggestionService {
	return &suggestionService{
		cutoffRepo:  cutoffRepo,
		collegeRepo: collegeRepo,
		courseRepo:  courseRepo,
		regionRepo:  regionRepo,
		ruleRepo:    ruleRepo,
		rdb:         rdb,
		cfg:         cfg,
		log:         log.With().Str("component", "suggestion_service").Logger(),
	}
}

// Rebuild loads cutoffs, reference data and category rules from Postgres
// and swaps in a freshly built suggester. Readers never observe a
// half-built snapshot.
func (s *suggestionService) Rebuild(ctx context.Context) error {
	rules, err := s.loadRules(ctx)
	if err != nil {
		return err
	}

	ref, err := s.loadReference(ctx)
	if err != nil {
		return err
	}

	records, err := s.cutoffRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	version, err := s.cutoffRepo.Version(ctx)
	if err != nil {
		return err
	}

	table := engine.NewCutoffTable()
	report := table.ReplaceAll(records)
	if len(report.Rejected) > 0 {
		// Rows already in Postgres should never fail engine validation;
		// a rejection here points at a missed import-time check.
		s.log.Warn().Int("rejected", len(report.Rejected)).Msg("Snapshot rebuild dropped rows")
	}

	state := &engineState{
		suggester: engine.NewSuggester(table, ref, rules, engine.DefaultWeights()),
		version:   version,
	}
	s.current.Store(state)

	s.log.Info().
		Int("records", report.Accepted).
		Int("colleges", len(ref.Colleges)).
		Int("courses", len(ref.Courses)).
		Str("version", version).
		Msg("Cutoff snapshot rebuilt")
	return nil
}

func (s *suggestionService) loadRules(ctx context.Context) (engine.CategoryRules, error) {
	rows, err := s.ruleRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return engine.DefaultCategoryRules(), nil
	}
	return engine.NewCategoryRules(rows), nil
}

func (s *suggestionService) loadReference(ctx context.Context) (*engine.Reference, error) {
	colleges, err := s.collegeRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	regions, err := s.regionRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ref := &engine.Reference{
		Colleges: make(map[int]model.College, len(colleges)),
		Courses:  make(map[int]model.Course, len(courses)),
		Regions:  make(map[int]model.Region, len(regions)),
	}
	for _, c := range colleges {
		ref.Colleges[c.ID] = *c
	}
	for _, c := range courses {
		ref.Courses[c.ID] = *c
	}
	for _, r := range regions {
		ref.Regions[r.ID] = *r
	}
	return ref, nil
}

// state returns the current engine state or a DataUnavailableError when
// no snapshot has been built yet.
func (s *suggestionService) state() (*engineState, error) {
	st := s.current.Load()
	if st == nil {
		return nil, &engine.DataUnavailableError{Reason: "snapshot not built"}
	}
	return st, nil
}

// SnapshotVersion reports the table version of the active snapshot
// ("" before the first build).
func (s *suggestionService) SnapshotVersion() string {
	if st := s.current.Load(); st != nil {
		return st.version
	}
	return ""
}

// Suggest answers a query, serving repeat queries from a short-TTL Redis
// cache. Cache keys embed the snapshot version, so a rebuild implicitly
// invalidates all cached results.
func (s *suggestionService) Suggest(ctx context.Context, q *model.StudentQuery) (*model.SuggestionResult, error) {
	st, err := s.state()
	if err != nil {
		return nil, err
	}

	key := config.CacheKey.SuggestionKey(st.version, queryDigest(q))
	if cached, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var result model.SuggestionResult
		if err := json.Unmarshal(cached, &result); err == nil {
			return &result, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		s.log.Warn().Err(err).Msg("Suggestion cache read failed")
	}

	result, err := st.suggester.Suggest(q)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(result); err == nil {
		if err := s.rdb.Set(ctx, key, payload, s.cfg.SuggestCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Suggestion cache write failed")
		}
	}
	return result, nil
}

// CollegeCutoffs returns the eligible round-rows for one college.
func (s *suggestionService) CollegeCutoffs(ctx context.Context, collegeID int, q *model.StudentQuery) ([]model.AdmissionRecord, error) {
	st, err := s.state()
	if err != nil {
		return nil, err
	}
	if _, err := s.collegeRepo.GetByID(ctx, collegeID); err != nil {
		return nil, err
	}
	return st.suggester.CollegeCutoffs(q, collegeID)
}

// Statistics summarizes the untruncated candidate set for a profile.
func (s *suggestionService) Statistics(ctx context.Context, q *model.StudentQuery) (*model.ProfileStatistics, error) {
	st, err := s.state()
	if err != nil {
		return nil, err
	}

	candidates, err := st.suggester.Candidates(q)
	if err != nil {
		return nil, err
	}

	stats := &model.ProfileStatistics{TotalCandidates: len(candidates)}
	colleges := map[int]struct{}{}
	courses := map[int]struct{}{}
	for i := range candidates {
		c := &candidates[i]
		colleges[c.CollegeID] = struct{}{}
		courses[c.CourseID] = struct{}{}

		var closing float64
		if c.ClosingRank != nil {
			closing = float64(*c.ClosingRank)
		} else if c.ClosingPercentile != nil {
			closing = *c.ClosingPercentile
		} else {
			continue
		}
		if stats.BestClosing == nil || betterClosing(q.Metric, closing, *stats.BestClosing) {
			v := closing
			stats.BestClosing = &v
		}
		if stats.WorstClosing == nil || betterClosing(q.Metric, *stats.WorstClosing, closing) {
			v := closing
			stats.WorstClosing = &v
		}
	}
	stats.UniqueColleges = len(colleges)
	stats.UniqueCourses = len(courses)
	return stats, nil
}

// betterClosing reports whether a is a more competitive closing score
// than b under the metric (lower rank, higher percentile).
func betterClosing(metric model.ScoreMetric, a, b float64) bool {
	if metric == model.MetricRank {
		return a < b
	}
	return a > b
}

// queryDigest produces a stable hash of the query for cache keying.
// encoding/json marshals struct fields in declaration order, so equal
// queries always share a digest.
func queryDigest(q *model.StudentQuery) string {
	payload, _ := json.Marshal(q)
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:8])
}
