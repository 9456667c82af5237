package engine

import (
	"testing"

	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestQualifiesUnderIsDirectional(t *testing.T) {
	rules := DefaultCategoryRules()

	// Reserved categories also compete for OPEN seats.
	assert.True(t, rules.QualifiesUnder(model.CategoryOBC, model.CategoryOpen))
	assert.True(t, rules.QualifiesUnder(model.CategorySC, model.CategoryOpen))

	// Never the other way around.
	assert.False(t, rules.QualifiesUnder(model.CategoryOpen, model.CategoryOBC))
	assert.False(t, rules.QualifiesUnder(model.CategoryOpen, model.CategorySC))

	// No lateral qualification between reserved categories.
	assert.False(t, rules.QualifiesUnder(model.CategoryOBC, model.CategorySC))
}

func TestQualifiesUnderSelfAlwaysHolds(t *testing.T) {
	// Even an empty relation admits the self edge.
	rules := NewCategoryRules(nil)

	for _, c := range model.KnownCategories {
		assert.True(t, rules.QualifiesUnder(c, c), "category %s must qualify under itself", c)
	}
}

func TestNewCategoryRulesFromConfig(t *testing.T) {
	rules := NewCategoryRules([]model.CategoryRule{
		{Category: model.CategorySEBC, QualifiesFor: model.CategoryOpen},
		{Category: model.CategorySEBC, QualifiesFor: model.CategoryOBC},
	})

	assert.True(t, rules.QualifiesUnder(model.CategorySEBC, model.CategoryOpen))
	assert.True(t, rules.QualifiesUnder(model.CategorySEBC, model.CategoryOBC))
	assert.False(t, rules.QualifiesUnder(model.CategoryOBC, model.CategorySEBC))
}

func TestEligibleRankBoundary(t *testing.T) {
	records := []model.AdmissionRecord{rankRecord(1, 101, model.CategoryOpen, 1, 900)}
	rules := DefaultCategoryRules()

	// A rank exactly at the closing rank is still admitted.
	atBoundary := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(900), Category: model.CategoryOpen}
	assert.Len(t, Eligible(records, atBoundary, rules), 1)

	// One place worse is not.
	justOutside := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(901), Category: model.CategoryOpen}
	assert.Empty(t, Eligible(records, justOutside, rules))
}

func TestEligiblePercentileBoundary(t *testing.T) {
	records := []model.AdmissionRecord{pctRecord(1, 101, model.CategoryOpen, 1, 92.5)}
	rules := DefaultCategoryRules()

	atBoundary := &model.StudentQuery{Metric: model.MetricPercentile, Percentile: f64p(92.5), Category: model.CategoryOpen}
	assert.Len(t, Eligible(records, atBoundary, rules), 1)

	below := &model.StudentQuery{Metric: model.MetricPercentile, Percentile: f64p(92.49), Category: model.CategoryOpen}
	assert.Empty(t, Eligible(records, below, rules))
}

func TestEligibleSkipsRecordsOfOtherMetric(t *testing.T) {
	// A rank query must never match percentile rows; missing data is not
	// assumed eligible.
	records := []model.AdmissionRecord{pctRecord(1, 101, model.CategoryOpen, 1, 10.0)}
	q := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(1), Category: model.CategoryOpen}

	assert.Empty(t, Eligible(records, q, DefaultCategoryRules()))
}

func TestEligibleCategoryFiltering(t *testing.T) {
	records := []model.AdmissionRecord{
		rankRecord(1, 101, model.CategoryOpen, 1, 5000),
		rankRecord(1, 101, model.CategoryOBC, 1, 6000),
		rankRecord(1, 101, model.CategorySC, 1, 9000),
	}
	rules := DefaultCategoryRules()

	// OBC student: own rows plus OPEN rows, never SC rows.
	obc := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(4000), Category: model.CategoryOBC}
	got := Eligible(records, obc, rules)
	categories := make([]model.Category, 0, len(got))
	for _, r := range got {
		categories = append(categories, r.Category)
	}
	assert.ElementsMatch(t, []model.Category{model.CategoryOpen, model.CategoryOBC}, categories)

	// OPEN student: only OPEN rows, even with a rank good enough for all.
	open := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(1), Category: model.CategoryOpen}
	got = Eligible(records, open, rules)
	assert.Len(t, got, 1)
	assert.Equal(t, model.CategoryOpen, got[0].Category)
}

func TestEligibleRetainsAllRounds(t *testing.T) {
	records := []model.AdmissionRecord{
		rankRecord(1, 101, model.CategoryOpen, 1, 650),
		rankRecord(1, 101, model.CategoryOpen, 2, 800),
	}
	q := &model.StudentQuery{Metric: model.MetricRank, Rank: intp(700), Category: model.CategoryOpen}

	// Only round 2 closes at or beyond rank 700; round 1 is filtered, and
	// no aggregation happens at this stage.
	got := Eligible(records, q, DefaultCategoryRules())
	assert.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Round)
}
