package engine

import (
	"testing"

	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testReference builds a small Pune/Mumbai college catalog shared by the
// aggregation and ranking tests. Region 12 (Pimpri) sits under region 10
// (Pune) to exercise the hierarchy.
func testReference() *Reference {
	return &Reference{
		Regions: map[int]model.Region{
			10: {ID: 10, Name: "Pune"},
			11: {ID: 11, Name: "Mumbai"},
			12: {ID: 12, Name: "Pimpri", ParentID: intp(10)},
		},
		Colleges: map[int]model.College{
			1: {ID: 1, Code: 1001, Name: "Alpha College of Engineering", Type: model.CollegeGovernment, RegionID: 10, FeeBand: 2},
			2: {ID: 2, Code: 1002, Name: "Beta Institute of Technology", Type: model.CollegePrivate, RegionID: 11, FeeBand: 4},
			3: {ID: 3, Code: 1003, Name: "Gamma College of Engineering", Type: model.CollegeAutonomous, RegionID: 12, FeeBand: 3},
		},
		Courses: map[int]model.Course{
			101: {ID: 101, Code: 9101, Name: "Computer Science and Engineering"},
			102: {ID: 102, Code: 9102, Name: "Information Technology"},
			103: {ID: 103, Code: 9103, Name: "Civil Engineering"},
		},
	}
}

func TestAggregateKeepsTightestEligibleRound(t *testing.T) {
	q := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(700), Category: model.CategoryOpen}
	eligible := Eligible([]model.AdmissionRecord{
		rankRecord(1, 101, model.CategoryOpen, 1, 650),
		rankRecord(1, 101, model.CategoryOpen, 2, 800),
	}, q, DefaultCategoryRules())

	got := Aggregate(eligible, q, testReference())

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].RoundUsed)
	assert.Equal(t, 800, *got[0].ClosingRank)
	assert.Equal(t, 100.0, got[0].Margin)
}

func TestAggregatePrefersSmallerMarginAcrossRounds(t *testing.T) {
	// Both rounds eligible; the one closing nearer the student's rank is
	// the realistic threshold.
	q := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(700), Category: model.CategoryOpen}
	eligible := []model.AdmissionRecord{
		rankRecord(1, 101, model.CategoryOpen, 1, 900),
		rankRecord(1, 101, model.CategoryOpen, 2, 750),
	}

	got := Aggregate(eligible, q, testReference())

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].RoundUsed)
	assert.Equal(t, 50.0, got[0].Margin)
}

func TestAggregateEqualMarginPrefersLaterRound(t *testing.T) {
	q := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(700), Category: model.CategoryOpen}
	eligible := []model.AdmissionRecord{
		rankRecord(1, 101, model.CategoryOpen, 1, 750),
		rankRecord(1, 101, model.CategoryOpen, 3, 750),
	}

	got := Aggregate(eligible, q, testReference())

	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].RoundUsed)
}

func TestAggregateOneEntryPerCollegeCoursePair(t *testing.T) {
	q := &model.StudentQuery{Metric: model.MetricPercentile, Percentile: f64p(95), Category: model.CategoryOpen}
	eligible := []model.AdmissionRecord{
		pctRecord(1, 101, model.CategoryOpen, 1, 90),
		pctRecord(1, 101, model.CategoryOpen, 2, 92),
		pctRecord(1, 102, model.CategoryOpen, 1, 88),
		pctRecord(2, 101, model.CategoryOpen, 1, 91),
	}

	got := Aggregate(eligible, q, testReference())

	assert.Len(t, got, 3)
}

func TestAggregateCourseFilterIsHard(t *testing.T) {
	q := &model.StudentQuery{
		Metric:             model.MetricRank,
		Rank:               intp(500),
		Category:           model.CategoryOpen,
		PreferredCourseIDs: []int{102},
	}
	eligible := []model.AdmissionRecord{
		rankRecord(1, 101, model.CategoryOpen, 1, 1000),
		rankRecord(1, 102, model.CategoryOpen, 1, 1000),
	}

	got := Aggregate(eligible, q, testReference())

	require.Len(t, got, 1)
	assert.Equal(t, 102, got[0].CourseID)
}

func TestAggregateRegionFilterWalksHierarchy(t *testing.T) {
	// College 3 sits in Pimpri, a child of Pune; preferring Pune keeps it.
	q := &model.StudentQuery{
		Metric:             model.MetricRank,
		Rank:               intp(500),
		Category:           model.CategoryOpen,
		PreferredRegionIDs: []int{10},
	}
	eligible := []model.AdmissionRecord{
		rankRecord(2, 101, model.CategoryOpen, 1, 1000), // Mumbai, filtered
		rankRecord(3, 101, model.CategoryOpen, 1, 1000), // Pimpri -> Pune
	}

	got := Aggregate(eligible, q, testReference())

	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].CollegeID)
}

func TestAggregateOutputOrderIsStable(t *testing.T) {
	q := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(500), Category: model.CategoryOpen}
	eligible := []model.AdmissionRecord{
		rankRecord(2, 102, model.CategoryOpen, 1, 1000),
		rankRecord(1, 102, model.CategoryOpen, 1, 1000),
		rankRecord(2, 101, model.CategoryOpen, 1, 1000),
		rankRecord(1, 101, model.CategoryOpen, 1, 1000),
	}

	got := Aggregate(eligible, q, testReference())

	require.Len(t, got, 4)
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		less := prev.CollegeID < cur.CollegeID ||
			(prev.CollegeID == cur.CollegeID && prev.CourseID < cur.CourseID)
		assert.True(t, less, "entries %d and %d out of order", i-1, i)
	}
}
