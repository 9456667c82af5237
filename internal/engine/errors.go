// Package engine implements the eligibility-and-ranking core: given an
// immutable snapshot of historical admission cutoffs and a student query,
// it produces a bounded, deterministically ordered suggestion list.
//
// The engine is pure and synchronous. It performs no I/O, no retries and
// holds no locks on the query path; concurrent queries read the same
// atomic snapshot while re-imports swap in a fully built replacement.
package engine

import "fmt"

// ValidationError reports a malformed admission record. Import batches
// reject such rows individually and continue with the remainder.
type ValidationError struct {
	Row    int
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid record (row %d): %s", e.Row, e.Reason)
}

// InvalidQueryError reports a query that failed validation before any
// matching work began.
type InvalidQueryError struct {
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return "invalid query: " + e.Reason
}

// DataUnavailableError reports that no cutoff snapshot is accessible.
type DataUnavailableError struct {
	Reason string
}

func (e *DataUnavailableError) Error() string {
	return "cutoff data unavailable: " + e.Reason
}
