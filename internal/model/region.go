package model

import "time"

// Region is read-only reference data. Regions form a hierarchy
// (city under district under state) through ParentID.
type Region struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	ParentID  *int      `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
