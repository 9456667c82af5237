package engine

import (
	"fmt"

	"github.com/collegeconnect/suggester-backend/internal/model"
)

// Suggester is the engine's single entry point: it validates a query and
// drives Filter -> Aggregate -> Rank over one table snapshot.
type Suggester struct {
	table   *CutoffTable
	ref     *Reference
	rules   CategoryRules
	weights Weights
}

// NewSuggester wires a suggester over a table, reference dictionaries and
// a category inclusion relation.
func NewSuggester(table *CutoffTable, ref *Reference, rules CategoryRules, weights Weights) *Suggester {
	return &Suggester{table: table, ref: ref, rules: rules, weights: weights}
}

// Table exposes the underlying cutoff table for loaders.
func (s *Suggester) Table() *CutoffTable { return s.table }

// validateQuery normalizes and checks the query in place. MaxResults
// defaults when unset and is bounded to a sane ceiling.
func (s *Suggester) validateQuery(q *model.StudentQuery) error {
	switch q.Metric {
	case model.MetricRank:
		if q.Rank == nil {
			return &InvalidQueryError{Reason: "rank metric requires a rank"}
		}
		if q.Percentile != nil {
			return &InvalidQueryError{Reason: "rank metric must not carry a percentile"}
		}
		if *q.Rank < 1 {
			return &InvalidQueryError{Reason: "rank must be positive"}
		}
	case model.MetricPercentile:
		if q.Percentile == nil {
			return &InvalidQueryError{Reason: "percentile metric requires a percentile"}
		}
		if q.Rank != nil {
			return &InvalidQueryError{Reason: "percentile metric must not carry a rank"}
		}
		if *q.Percentile < 0 || *q.Percentile > 100 {
			return &InvalidQueryError{Reason: "percentile outside [0,100]"}
		}
	default:
		return &InvalidQueryError{Reason: fmt.Sprintf("unknown metric %q", q.Metric)}
	}

	if !model.IsKnownCategory(q.Category) {
		return &InvalidQueryError{Reason: fmt.Sprintf("unknown category %q", q.Category)}
	}

	if q.MaxResults == 0 {
		q.MaxResults = model.DefaultMaxResults
	}
	if q.MaxResults < 1 || q.MaxResults > model.MaxResultsCeiling {
		return &InvalidQueryError{Reason: fmt.Sprintf("max_results outside 1..%d", model.MaxResultsCeiling)}
	}
	return nil
}

// Candidates runs validation, eligibility filtering and aggregation,
// returning the untruncated candidate set. Statistics are computed over
// this rather than the ranked, bounded list.
func (s *Suggester) Candidates(q *model.StudentQuery) ([]model.CandidateEntry, error) {
	if err := s.validateQuery(q); err != nil {
		return nil, err
	}
	records, err := s.table.Query(RecordFilter{})
	if err != nil {
		return nil, err
	}
	eligible := Eligible(records, q, s.rules)
	return Aggregate(eligible, q, s.ref), nil
}

// Suggest produces the final bounded, ordered suggestion list. Zero
// surviving candidates yield an empty result with a rationale naming the
// limiting filter. That is a valid outcome, not an error.
func (s *Suggester) Suggest(q *model.StudentQuery) (*model.SuggestionResult, error) {
	if err := s.validateQuery(q); err != nil {
		return nil, err
	}

	records, err := s.table.Query(RecordFilter{})
	if err != nil {
		return nil, err
	}

	eligible := Eligible(records, q, s.rules)
	if len(eligible) == 0 {
		return &model.SuggestionResult{
			Suggestions: []model.Suggestion{},
			Rationale:   fmt.Sprintf("no cutoff at or below your score for category %s", q.Category),
		}, nil
	}

	candidates := Aggregate(eligible, q, s.ref)
	if len(candidates) == 0 {
		return &model.SuggestionResult{
			Suggestions: []model.Suggestion{},
			Rationale:   limitingFilter(eligible, q, s.ref),
		}, nil
	}

	return &model.SuggestionResult{
		Suggestions: Rank(candidates, q, s.ref, s.weights),
	}, nil
}

// CollegeCutoffs returns the eligible round-rows for one college,
// unaggregated, for the per-college detail view.
func (s *Suggester) CollegeCutoffs(q *model.StudentQuery, collegeID int) ([]model.AdmissionRecord, error) {
	if err := s.validateQuery(q); err != nil {
		return nil, err
	}
	records, err := s.table.Query(RecordFilter{CollegeID: &collegeID})
	if err != nil {
		return nil, err
	}
	return Eligible(records, q, s.rules), nil
}

// limitingFilter names which hard preference filter emptied the candidate
// set, checked in the order the aggregator applies them.
func limitingFilter(eligible []model.AdmissionRecord, q *model.StudentQuery, ref *Reference) string {
	if len(q.PreferredCourseIDs) > 0 {
		survives := false
		for i := range eligible {
			if containsInt(q.PreferredCourseIDs, eligible[i].CourseID) {
				survives = true
				break
			}
		}
		if !survives {
			return "no eligible colleges offer the preferred courses"
		}
	}
	if len(q.PreferredRegionIDs) > 0 {
		survives := false
		for i := range eligible {
			if ref.regionMatch(eligible[i].CollegeID, q.PreferredRegionIDs) {
				survives = true
				break
			}
		}
		if !survives {
			return "no eligible colleges in the preferred regions"
		}
	}
	return "course and region constraints together removed all candidates"
}
