package engine

import (
	"testing"

	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSuggester(t *testing.T, rows ...model.AdmissionRecord) *Suggester {
	t.Helper()
	table := NewCutoffTable()
	report := table.ReplaceAll(rows)
	require.Empty(t, report.Rejected)
	return NewSuggester(table, testReference(), DefaultCategoryRules(), DefaultWeights())
}

func TestValidateQuery(t *testing.T) {
	s := newTestSuggester(t, rankRecord(1, 101, model.CategoryOpen, 1, 5000))

	tests := []struct {
		name string
		q    model.StudentQuery
	}{
		{"unknown metric", model.StudentQuery{Metric: "marks", Rank: intp(10), Category: model.CategoryOpen}},
		{"rank metric without rank", model.StudentQuery{Metric: model.MetricRank, Category: model.CategoryOpen}},
		{"rank metric with percentile", model.StudentQuery{Metric: model.MetricRank, Rank: intp(10), Percentile: f64p(90), Category: model.CategoryOpen}},
		{"non-positive rank", model.StudentQuery{Metric: model.MetricRank, Rank: intp(0), Category: model.CategoryOpen}},
		{"percentile metric without percentile", model.StudentQuery{Metric: model.MetricPercentile, Category: model.CategoryOpen}},
		{"percentile out of range", model.StudentQuery{Metric: model.MetricPercentile, Percentile: f64p(101), Category: model.CategoryOpen}},
		{"unknown category", model.StudentQuery{Metric: model.MetricRank, Rank: intp(10), Category: "GOPENS"}},
		{"max results above ceiling", model.StudentQuery{Metric: model.MetricRank, Rank: intp(10), Category: model.CategoryOpen, MaxResults: 101}},
		{"negative max results", model.StudentQuery{Metric: model.MetricRank, Rank: intp(10), Category: model.CategoryOpen, MaxResults: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.q
			_, err := s.Suggest(&q)
			var invalid *InvalidQueryError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestSuggestDefaultsMaxResults(t *testing.T) {
	s := newTestSuggester(t, rankRecord(1, 101, model.CategoryOpen, 1, 5000))
	q := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(100), Category: model.CategoryOpen}

	_, err := s.Suggest(q)

	require.NoError(t, err)
	assert.Equal(t, model.DefaultMaxResults, q.MaxResults)
}

func TestSuggestUnloadedTable(t *testing.T) {
	s := NewSuggester(NewCutoffTable(), testReference(), DefaultCategoryRules(), DefaultWeights())
	q := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(100), Category: model.CategoryOpen}

	_, err := s.Suggest(q)

	var unavailable *DataUnavailableError
	assert.ErrorAs(t, err, &unavailable)
}

func TestSuggestEmptyEligibleSetIsNotAnError(t *testing.T) {
	s := newTestSuggester(t, rankRecord(1, 101, model.CategoryOpen, 1, 500))
	q := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(50000), Category: model.CategorySC}

	result, err := s.Suggest(q)

	require.NoError(t, err)
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, "no cutoff at or below your score for category SC", result.Rationale)
}

func TestSuggestNamesLimitingRegionFilter(t *testing.T) {
	// Only a Mumbai college is eligible; preferring Pune empties the set.
	s := newTestSuggester(t, rankRecord(2, 101, model.CategoryOpen, 1, 5000))
	q := &model.StudentQuery{
		Metric:             model.MetricRank,
		Rank:               intp(100),
		Category:           model.CategoryOpen,
		PreferredRegionIDs: []int{10},
	}

	result, err := s.Suggest(q)

	require.NoError(t, err)
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, "no eligible colleges in the preferred regions", result.Rationale)
}

func TestSuggestNamesLimitingCourseFilter(t *testing.T) {
	s := newTestSuggester(t, rankRecord(1, 101, model.CategoryOpen, 1, 5000))
	q := &model.StudentQuery{
		Metric:             model.MetricRank,
		Rank:               intp(100),
		Category:           model.CategoryOpen,
		PreferredCourseIDs: []int{103},
	}

	result, err := s.Suggest(q)

	require.NoError(t, err)
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, "no eligible colleges offer the preferred courses", result.Rationale)
}

func TestSuggestEndToEnd(t *testing.T) {
	s := newTestSuggester(t,
		rankRecord(1, 101, model.CategoryOpen, 1, 650),
		rankRecord(1, 101, model.CategoryOpen, 2, 800),
		rankRecord(2, 102, model.CategoryOpen, 1, 900),
		rankRecord(3, 103, model.CategoryOBC, 1, 1200),
	)
	q := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(700), Category: model.CategoryOBC}

	result, err := s.Suggest(q)

	require.NoError(t, err)
	require.Len(t, result.Suggestions, 3)
	assert.Empty(t, result.Rationale)

	// The round-2 row is the realistic threshold for college 1.
	for _, sug := range result.Suggestions {
		if sug.CollegeID == 1 {
			assert.Equal(t, 2, sug.RoundUsed)
			assert.Equal(t, 100.0, sug.Margin)
		}
	}
}

func TestSuggestBetterRankNeverShrinksCandidates(t *testing.T) {
	s := newTestSuggester(t,
		rankRecord(1, 101, model.CategoryOpen, 1, 800),
		rankRecord(2, 102, model.CategoryOpen, 1, 2000),
		rankRecord(3, 103, model.CategoryOpen, 1, 5000),
	)

	prev := -1
	for _, rank := range []int{6000, 5000, 2000, 800, 1} {
		q := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(rank), Category: model.CategoryOpen}
		candidates, err := s.Candidates(q)
		require.NoError(t, err)
		if prev >= 0 {
			assert.GreaterOrEqual(t, len(candidates), prev, "improving rank to %d lost candidates", rank)
		}
		prev = len(candidates)
	}
}

func TestCollegeCutoffsReturnsEligibleRoundsOnly(t *testing.T) {
	s := newTestSuggester(t,
		rankRecord(1, 101, model.CategoryOpen, 1, 650),
		rankRecord(1, 101, model.CategoryOpen, 2, 800),
		rankRecord(1, 102, model.CategorySC, 1, 9000),
		rankRecord(2, 101, model.CategoryOpen, 1, 900),
	)
	q := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(700), Category: model.CategoryOpen}

	got, err := s.CollegeCutoffs(q, 1)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].CollegeID)
	assert.Equal(t, 2, got[0].Round)
}

func TestSuggestDeterministicAcrossIdenticalQueries(t *testing.T) {
	s := newTestSuggester(t,
		rankRecord(1, 101, model.CategoryOpen, 1, 800),
		rankRecord(1, 102, model.CategoryOpen, 1, 850),
		rankRecord(2, 101, model.CategoryOpen, 2, 900),
		rankRecord(2, 102, model.CategoryOpen, 1, 950),
		rankRecord(3, 103, model.CategoryOpen, 1, 1000),
	)

	mkQuery := func() *model.StudentQuery {
		return &model.StudentQuery{
			Metric:             model.MetricRank,
			Rank:               intp(700),
			Category:           model.CategoryOpen,
			PreferredCourseIDs: []int{101, 102, 103},
		}
	}

	first, err := s.Suggest(mkQuery())
	require.NoError(t, err)
	second, err := s.Suggest(mkQuery())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
