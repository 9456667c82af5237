package model

// ScoreMetric selects the score space a query and its cutoff table share.
// A single exam publishes its cutoffs in exactly one metric.
type ScoreMetric string

const (
	MetricRank       ScoreMetric = "rank"       // lower is better
	MetricPercentile ScoreMetric = "percentile" // higher is better
)

// DefaultMaxResults bounds a suggestion list when the caller does not ask
// for a specific size.
const DefaultMaxResults = 20

// MaxResultsCeiling is the hard upper bound accepted for MaxResults.
const MaxResultsCeiling = 100

// StudentQuery is the engine's input value object. Exactly one of Rank and
// Percentile is set, matching Metric. Preference lists are ordered,
// earlier entries preferred; empty means no preference. Non-empty
// preference lists act as hard filters.
type StudentQuery struct {
	Metric             ScoreMetric
	Rank               *int
	Percentile         *float64
	Category           Category
	PreferredRegionIDs []int
	PreferredCourseIDs []int
	CollegeType        *CollegeType
	MaxFeeBand         *int
	MaxResults         int
}

// CandidateEntry is a derived, per-query value: one eligible
// (college, course) pair with the most realistic round's cutoff.
// Margin is in the query's score space: closing_rank - rank for rank
// queries, percentile - closing_percentile for percentile queries.
// Positive margin means safely eligible.
type CandidateEntry struct {
	CollegeID         int      `json:"college_id"`
	CourseID          int      `json:"course_id"`
	ClosingRank       *int     `json:"closing_rank,omitempty"`
	ClosingPercentile *float64 `json:"closing_percentile,omitempty"`
	RoundUsed         int      `json:"round_used"`
	Margin            float64  `json:"margin"`
	SeatsTotal        int      `json:"seats_total"`
}

// Suggestion is one ranked entry of a SuggestionResult, enriched with
// reference data for presentation.
type Suggestion struct {
	CandidateEntry
	Score       float64     `json:"score"`
	Rationale   []string    `json:"rationale"`
	CollegeName string      `json:"college_name"`
	CollegeType CollegeType `json:"college_type"`
	CourseName  string      `json:"course_name"`
	RegionName  string      `json:"region_name"`
	FeeBand     int         `json:"fee_band"`
}

// SuggestionResult is the ordered outcome of one query. An empty
// Suggestions list is a valid outcome, not an error; Rationale then names
// the limiting filter.
type SuggestionResult struct {
	Suggestions []Suggestion `json:"suggestions"`
	Rationale   string       `json:"rationale,omitempty"`
}

// ProfileStatistics summarizes what the table holds for a student profile,
// computed over the full (untruncated) candidate set.
type ProfileStatistics struct {
	TotalCandidates int      `json:"total_candidates"`
	UniqueColleges  int      `json:"unique_colleges"`
	UniqueCourses   int      `json:"unique_courses"`
	BestClosing     *float64 `json:"best_closing,omitempty"`
	WorstClosing    *float64 `json:"worst_closing,omitempty"`
}

// SuggestRequest is the HTTP payload for POST /suggestions.
type SuggestRequest struct {
	Metric             string   `json:"metric" binding:"required,oneof=rank percentile"`
	Rank               *int     `json:"rank" binding:"omitempty,min=1"`
	Percentile         *float64 `json:"percentile" binding:"omitempty,gte=0,lte=100"`
	Category           string   `json:"category" binding:"required"`
	PreferredRegionIDs []int    `json:"preferred_region_ids" binding:"omitempty,max=20"`
	PreferredCourseIDs []int    `json:"preferred_course_ids" binding:"omitempty,max=20"`
	CollegeType        *string  `json:"college_type" binding:"omitempty,oneof=GOVERNMENT PRIVATE AUTONOMOUS"`
	MaxFeeBand         *int     `json:"max_fee_band" binding:"omitempty,min=1,max=5"`
	MaxResults         int      `json:"max_results" binding:"omitempty,min=1,max=100"`
}

// ToQuery converts the HTTP payload into the engine's value object.
func (r *SuggestRequest) ToQuery() *StudentQuery {
	q := &StudentQuery{
		Metric:             ScoreMetric(r.Metric),
		Rank:               r.Rank,
		Percentile:         r.Percentile,
		Category:           Category(r.Category),
		PreferredRegionIDs: r.PreferredRegionIDs,
		PreferredCourseIDs: r.PreferredCourseIDs,
		MaxFeeBand:         r.MaxFeeBand,
		MaxResults:         r.MaxResults,
	}
	if r.CollegeType != nil {
		t := CollegeType(*r.CollegeType)
		q.CollegeType = &t
	}
	return q
}
