package model

import "time"

// CollegeType enumerates ownership/status of a college.
type CollegeType string

const (
	CollegeGovernment CollegeType = "GOVERNMENT"
	CollegePrivate    CollegeType = "PRIVATE"
	CollegeAutonomous CollegeType = "AUTONOMOUS"
)

// College is static reference data keyed by the DTE college code
// printed on cutoff reports (e.g. 01002).
type College struct {
	ID        int         `json:"id"`
	Code      int         `json:"code"`
	Name      string      `json:"name"`
	Type      CollegeType `json:"type"`
	RegionID  int         `json:"region_id"`
	FeeBand   int         `json:"fee_band"` // 1 (cheapest) .. 5
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
