package model

import "time"

// Course is static reference data for a branch of study.
// Field is the broad discipline ("Computer Engineering", "Civil Engineering").
type Course struct {
	ID        int       `json:"id"`
	Code      int       `json:"code"` // course code from the cutoff report (e.g. 0100219110)
	Name      string    `json:"name"`
	Field     string    `json:"field"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CourseWithShortCode is a Course joined with its normalized short code
// (CSE, IT, ME, ...) for catalog listings.
type CourseWithShortCode struct {
	Course
	ShortCode string `json:"short_code"`
}
