package engine

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/collegeconnect/suggester-backend/internal/model"
)

// recordKey uniquely identifies a cutoff observation. Later imports
// replace the record sharing the key, never duplicate it.
type recordKey struct {
	CollegeID int
	CourseID  int
	Category  model.Category
	Round     int
}

func keyOf(r *model.AdmissionRecord) recordKey {
	return recordKey{r.CollegeID, r.CourseID, r.Category, r.Round}
}

// snapshot is an immutable view of the table. Queries iterate records in
// a fixed key order so downstream behavior never depends on map iteration.
type snapshot struct {
	records []model.AdmissionRecord
	index   map[recordKey]int
}

// CutoffTable holds admission records behind an atomically swapped
// snapshot. Reads are lock-free; writes are serialized and build a full
// replacement snapshot before publishing it, so an in-flight query never
// observes a partial mix of old and new rows.
type CutoffTable struct {
	mu   sync.Mutex // serializes writers only
	snap atomic.Pointer[snapshot]
}

// NewCutoffTable creates an empty, unloaded table. Queries against an
// unloaded table fail with DataUnavailableError until the first load.
func NewCutoffTable() *CutoffTable {
	return &CutoffTable{}
}

// RecordFilter narrows a Query call. Nil fields match everything.
type RecordFilter struct {
	CollegeID *int
	CourseID  *int
	Category  *model.Category
}

// ValidateRecord checks a single record against the table invariants:
// exactly one closing value, a positive round, non-negative seats and a
// known category. Returns a ValidationError tagged with row for batch
// reporting.
func ValidateRecord(row int, r *model.AdmissionRecord) error {
	if r.ClosingRank != nil && r.ClosingPercentile != nil {
		return &ValidationError{Row: row, Reason: "both closing_rank and closing_percentile populated"}
	}
	if r.ClosingRank == nil && r.ClosingPercentile == nil {
		return &ValidationError{Row: row, Reason: "neither closing_rank nor closing_percentile populated"}
	}
	if r.ClosingRank != nil && *r.ClosingRank < 1 {
		return &ValidationError{Row: row, Reason: "closing_rank must be positive"}
	}
	if r.ClosingPercentile != nil && (*r.ClosingPercentile < 0 || *r.ClosingPercentile > 100) {
		return &ValidationError{Row: row, Reason: "closing_percentile outside [0,100]"}
	}
	if r.Round < 1 {
		return &ValidationError{Row: row, Reason: "round must be a positive integer"}
	}
	if r.SeatsTotal < 0 {
		return &ValidationError{Row: row, Reason: "seats_total is negative"}
	}
	if !model.IsKnownCategory(r.Category) {
		return &ValidationError{Row: row, Reason: fmt.Sprintf("unknown category %q", r.Category)}
	}
	return nil
}

// LoadReport summarizes a Load call: accepted row count and the
// per-row rejections (the batch proceeds past them).
type LoadReport struct {
	Accepted int
	Rejected []*ValidationError
}

// Load ingests a batch, replacing any existing record that shares the
// (college, course, category, round) key. Malformed rows are rejected
// per-row and reported; valid rows still land. The new snapshot is
// published atomically once fully built.
func (t *CutoffTable) Load(rows []model.AdmissionRecord) *LoadReport {
	t.mu.Lock()
	defer t.mu.Unlock()

	var base []model.AdmissionRecord
	if cur := t.snap.Load(); cur != nil {
		base = cur.records
	}
	return t.publish(base, rows)
}

// ReplaceAll discards the current contents and loads rows as the complete
// new table. Used on re-import and snapshot rebuilds.
func (t *CutoffTable) ReplaceAll(rows []model.AdmissionRecord) *LoadReport {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.publish(nil, rows)
}

func (t *CutoffTable) publish(base, rows []model.AdmissionRecord) *LoadReport {
	next := &snapshot{index: make(map[recordKey]int, len(base)+len(rows))}
	next.records = make([]model.AdmissionRecord, 0, len(base)+len(rows))

	upsert := func(r model.AdmissionRecord) {
		k := keyOf(&r)
		if i, ok := next.index[k]; ok {
			next.records[i] = r
			return
		}
		next.index[k] = len(next.records)
		next.records = append(next.records, r)
	}

	for _, r := range base {
		upsert(r)
	}

	report := &LoadReport{}
	for i := range rows {
		if err := ValidateRecord(i, &rows[i]); err != nil {
			report.Rejected = append(report.Rejected, err.(*ValidationError))
			continue
		}
		upsert(rows[i])
		report.Accepted++
	}

	// Fix iteration order by key so every query sees the same sequence.
	sort.SliceStable(next.records, func(i, j int) bool {
		a, b := keyOf(&next.records[i]), keyOf(&next.records[j])
		if a.CollegeID != b.CollegeID {
			return a.CollegeID < b.CollegeID
		}
		if a.CourseID != b.CourseID {
			return a.CourseID < b.CourseID
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Round < b.Round
	})
	for i := range next.records {
		next.index[keyOf(&next.records[i])] = i
	}

	t.snap.Store(next)
	return report
}

// Query returns the records matching the filter from the current
// snapshot. Fails with DataUnavailableError when no snapshot has been
// loaded yet.
func (t *CutoffTable) Query(f RecordFilter) ([]model.AdmissionRecord, error) {
	snap := t.snap.Load()
	if snap == nil {
		return nil, &DataUnavailableError{Reason: "no snapshot loaded"}
	}

	out := make([]model.AdmissionRecord, 0, len(snap.records))
	for _, r := range snap.records {
		if f.CollegeID != nil && r.CollegeID != *f.CollegeID {
			continue
		}
		if f.CourseID != nil && r.CourseID != *f.CourseID {
			continue
		}
		if f.Category != nil && r.Category != *f.Category {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// Len reports the number of records in the current snapshot (0 when
// unloaded).
func (t *CutoffTable) Len() int {
	if snap := t.snap.Load(); snap != nil {
		return len(snap.records)
	}
	return 0
}
