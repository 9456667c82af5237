package engine

import (
	"testing"

	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankCandidate(collegeID, courseID, closing int, margin float64) model.CandidateEntry {
	return model.CandidateEntry{
		CollegeID:   collegeID,
		CourseID:    courseID,
		ClosingRank: intp(closing),
		RoundUsed:   1,
		Margin:      margin,
		SeatsTotal:  60,
	}
}

func TestRankIsDeterministic(t *testing.T) {
	q := &model.StudentQuery{
		Metric:             model.MetricRank,
		Rank:               intp(700),
		Category:           model.CategoryOpen,
		PreferredCourseIDs: []int{101, 102},
		MaxResults:         20,
	}
	candidates := []model.CandidateEntry{
		rankCandidate(1, 101, 800, 100),
		rankCandidate(2, 102, 900, 200),
		rankCandidate(3, 101, 750, 50),
	}

	first := Rank(append([]model.CandidateEntry(nil), candidates...), q, testReference(), DefaultWeights())
	second := Rank(append([]model.CandidateEntry(nil), candidates...), q, testReference(), DefaultWeights())

	assert.Equal(t, first, second)
}

func TestRankHonorsCoursePreferenceOrder(t *testing.T) {
	q := &model.StudentQuery{
		Metric:             model.MetricRank,
		Rank:               intp(700),
		Category:           model.CategoryOpen,
		PreferredCourseIDs: []int{102, 101},
		MaxResults:         20,
	}
	// Identical safety; only the preference position differs.
	candidates := []model.CandidateEntry{
		rankCandidate(1, 101, 800, 100),
		rankCandidate(2, 102, 800, 100),
	}

	got := Rank(candidates, q, testReference(), DefaultWeights())

	require.Len(t, got, 2)
	assert.Equal(t, 102, got[0].CourseID)
	assert.Contains(t, got[0].Rationale, "course preference #1")
	assert.Contains(t, got[1].Rationale, "course preference #2")
}

func TestRankCapsMarginContribution(t *testing.T) {
	q := &model.StudentQuery{
		Metric:     model.MetricRank,
		Rank:       intp(100),
		Category:   model.CategoryOpen,
		MaxResults: 20,
	}
	// Both margins normalize past the cap, so their margin scores are
	// identical and the tighter (more realistic) margin wins the tie.
	verySafe := rankCandidate(2, 101, 10000, 9900)
	merelySafe := rankCandidate(1, 101, 400, 300)

	got := Rank([]model.CandidateEntry{verySafe, merelySafe}, q, testReference(), DefaultWeights())

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].CollegeID)
	assert.InDelta(t, got[0].Score, got[1].Score, 1e-9)
}

func TestRankAlignmentScoring(t *testing.T) {
	government := model.CollegeGovernment
	q := &model.StudentQuery{
		Metric:      model.MetricRank,
		Rank:        intp(700),
		Category:    model.CategoryOpen,
		CollegeType: &government,
		MaxResults:  20,
	}
	candidates := []model.CandidateEntry{
		rankCandidate(2, 101, 800, 100), // private
		rankCandidate(1, 101, 800, 100), // government
	}

	got := Rank(candidates, q, testReference(), DefaultWeights())

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].CollegeID)
	assert.Greater(t, got[0].Score, got[1].Score)
	assert.Contains(t, got[0].Rationale, "college type match")
	assert.NotContains(t, got[1].Rationale, "college type match")
}

func TestRankFeeBandAlignment(t *testing.T) {
	q := &model.StudentQuery{
		Metric:     model.MetricRank,
		Rank:       intp(700),
		Category:   model.CategoryOpen,
		MaxFeeBand: intp(3),
		MaxResults: 20,
	}
	candidates := []model.CandidateEntry{
		rankCandidate(2, 101, 800, 100), // fee band 4, outside
		rankCandidate(3, 101, 800, 100), // fee band 3, within
	}

	got := Rank(candidates, q, testReference(), DefaultWeights())

	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].CollegeID)
	assert.Contains(t, got[0].Rationale, "within fee band")
}

func TestRankTieBreaksByCollegeName(t *testing.T) {
	q := &model.StudentQuery{
		Metric:     model.MetricRank,
		Rank:       intp(700),
		Category:   model.CategoryOpen,
		MaxResults: 20,
	}
	// Scores and margins identical; Alpha sorts before Beta.
	candidates := []model.CandidateEntry{
		rankCandidate(2, 101, 800, 100),
		rankCandidate(1, 101, 800, 100),
	}

	got := Rank(candidates, q, testReference(), DefaultWeights())

	require.Len(t, got, 2)
	assert.Equal(t, "Alpha College of Engineering", got[0].CollegeName)
	assert.Equal(t, "Beta Institute of Technology", got[1].CollegeName)
}

func TestRankTruncatesToMaxResults(t *testing.T) {
	q := &model.StudentQuery{
		Metric:     model.MetricRank,
		Rank:       intp(700),
		Category:   model.CategoryOpen,
		MaxResults: 2,
	}
	candidates := []model.CandidateEntry{
		rankCandidate(1, 101, 800, 100),
		rankCandidate(2, 101, 900, 200),
		rankCandidate(3, 101, 1000, 300),
	}

	got := Rank(candidates, q, testReference(), DefaultWeights())

	assert.Len(t, got, 2)
}

func TestRankEnrichesFromReference(t *testing.T) {
	q := &model.StudentQuery{
		Metric:     model.MetricRank,
		Rank:       intp(700),
		Category:   model.CategoryOpen,
		MaxResults: 20,
	}

	got := Rank([]model.CandidateEntry{rankCandidate(3, 102, 800, 100)}, q, testReference(), DefaultWeights())

	require.Len(t, got, 1)
	assert.Equal(t, "Gamma College of Engineering", got[0].CollegeName)
	assert.Equal(t, model.CollegeAutonomous, got[0].CollegeType)
	assert.Equal(t, "Information Technology", got[0].CourseName)
	assert.Equal(t, "Pimpri", got[0].RegionName)
	assert.Equal(t, 3, got[0].FeeBand)
	assert.Contains(t, got[0].Rationale, "safety margin 12.5%")
}
