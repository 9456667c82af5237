package model

import "time"

// AdmissionRecord is one historical cutoff observation: the closing
// rank or percentile that secured admission into a college/course for a
// category in a given CAP round. Exactly one of ClosingRank and
// ClosingPercentile is populated, depending on the exam's metric.
//
// Records are immutable once ingested; a re-import replaces the record
// sharing the same (college, course, category, round) key wholesale.
type AdmissionRecord struct {
	ID                int       `json:"id,omitempty"`
	CollegeID         int       `json:"college_id"`
	CourseID          int       `json:"course_id"`
	Category          Category  `json:"category"`
	Round             int       `json:"round"`
	ClosingRank       *int      `json:"closing_rank,omitempty"`
	ClosingPercentile *float64  `json:"closing_percentile,omitempty"`
	SeatsTotal        int       `json:"seats_total"`
	Year              int       `json:"year,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

// Metric reports which score metric the record carries, or "" when the
// record is malformed (both or neither closing value set).
func (r *AdmissionRecord) Metric() ScoreMetric {
	switch {
	case r.ClosingRank != nil && r.ClosingPercentile == nil:
		return MetricRank
	case r.ClosingRank == nil && r.ClosingPercentile != nil:
		return MetricPercentile
	default:
		return ""
	}
}

// CutoffImportRow is one row of the structured import feed. The PDF
// extraction pipeline (external to this service) emits these; college and
// course are referenced by their report codes and resolved at import time.
type CutoffImportRow struct {
	CollegeCode       int      `json:"college_code" binding:"required"`
	CourseCode        int      `json:"course_code" binding:"required"`
	Category          Category `json:"category" binding:"required"`
	Round             int      `json:"round" binding:"required,min=1"`
	ClosingRank       *int     `json:"closing_rank"`
	ClosingPercentile *float64 `json:"closing_percentile"`
	SeatsTotal        int      `json:"seats_total"`
	Year              int      `json:"year"`
}

// ImportRowError describes why a single import row was rejected.
// Rejected rows never abort the batch; the remainder proceeds.
type ImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportReport summarizes one import batch.
type ImportReport struct {
	Total    int              `json:"total"`
	Accepted int              `json:"accepted"`
	Rejected []ImportRowError `json:"rejected,omitempty"`
}

// ImportProgress is published to Redis while a batch is being ingested,
// consumed by the admin WebSocket stream.
type ImportProgress struct {
	Processed int    `json:"processed"`
	Accepted  int    `json:"accepted"`
	Rejected  int    `json:"rejected"`
	Total     int    `json:"total"`
	Done      bool   `json:"done"`
	Message   string `json:"message,omitempty"`
}
