package engine

import "github.com/collegeconnect/suggester-backend/internal/model"

// CategoryRules is the table-driven inclusion relation: for a student's
// category, the set of record categories they additionally qualify under.
// The relation is directional and never symmetric: an OPEN student does
// not qualify for reserved rows, while every reserved category also
// qualifies under OPEN. Exam authorities redefine the hierarchy, so it is
// loaded from configuration (category_rules table) rather than branched on.
type CategoryRules map[model.Category]map[model.Category]bool

// DefaultCategoryRules covers the common MHT-CET style hierarchy: every
// reserved category additionally competes for OPEN seats; OPEN competes
// only for OPEN. Used when no configuration rows are present.
func DefaultCategoryRules() CategoryRules {
	rules := make(CategoryRules, len(model.KnownCategories))
	for _, c := range model.KnownCategories {
		rules[c] = map[model.Category]bool{}
		if c != model.CategoryOpen {
			rules[c][model.CategoryOpen] = true
		}
	}
	return rules
}

// NewCategoryRules builds the relation from configuration rows.
func NewCategoryRules(rows []model.CategoryRule) CategoryRules {
	rules := make(CategoryRules)
	for _, row := range rows {
		if rules[row.Category] == nil {
			rules[row.Category] = map[model.Category]bool{}
		}
		rules[row.Category][row.QualifiesFor] = true
	}
	return rules
}

// QualifiesUnder reports whether a student of category student may be
// admitted against a cutoff row of category record. A category always
// qualifies under itself.
func (r CategoryRules) QualifiesUnder(student, record model.Category) bool {
	if student == record {
		return true
	}
	return r[student][record]
}

// favorable reports whether the student's score is at least as favorable
// as the record's closing score under the query's metric. Records with a
// null closing score or the other metric never match; insufficient data
// is never assumed eligible.
func favorable(q *model.StudentQuery, r *model.AdmissionRecord) bool {
	switch q.Metric {
	case model.MetricRank:
		return r.ClosingRank != nil && *q.Rank <= *r.ClosingRank
	case model.MetricPercentile:
		return r.ClosingPercentile != nil && *q.Percentile >= *r.ClosingPercentile
	default:
		return false
	}
}

// Eligible reduces records to those the student plausibly qualifies for:
// category-admissible under rules and score-favorable under the metric.
// Multiple rounds per (college, course) are all retained; the aggregator
// resolves them.
func Eligible(records []model.AdmissionRecord, q *model.StudentQuery, rules CategoryRules) []model.AdmissionRecord {
	out := make([]model.AdmissionRecord, 0, len(records))
	for i := range records {
		r := &records[i]
		if !rules.QualifiesUnder(q.Category, r.Category) {
			continue
		}
		if !favorable(q, r) {
			continue
		}
		out = append(out, *r)
	}
	return out
}
