package engine

import (
	"testing"

	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int         { return &v }
func f64p(v float64) *float64 { return &v }

func rankRecord(collegeID, courseID int, cat model.Category, round, closing int) model.AdmissionRecord {
	return model.AdmissionRecord{
		CollegeID:   collegeID,
		CourseID:    courseID,
		Category:    cat,
		Round:       round,
		ClosingRank: intp(closing),
		SeatsTotal:  60,
		Year:        2024,
	}
}

func pctRecord(collegeID, courseID int, cat model.Category, round int, closing float64) model.AdmissionRecord {
	return model.AdmissionRecord{
		CollegeID:         collegeID,
		CourseID:          courseID,
		Category:          cat,
		Round:             round,
		ClosingPercentile: f64p(closing),
		SeatsTotal:        60,
		Year:              2024,
	}
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *model.AdmissionRecord)
		wantErr string
	}{
		{
			name:   "valid rank record",
			mutate: func(r *model.AdmissionRecord) {},
		},
		{
			name: "both closing values",
			mutate: func(r *model.AdmissionRecord) {
				r.ClosingPercentile = f64p(91.2)
			},
			wantErr: "both closing_rank and closing_percentile populated",
		},
		{
			name: "neither closing value",
			mutate: func(r *model.AdmissionRecord) {
				r.ClosingRank = nil
			},
			wantErr: "neither closing_rank nor closing_percentile populated",
		},
		{
			name: "zero closing rank",
			mutate: func(r *model.AdmissionRecord) {
				r.ClosingRank = intp(0)
			},
			wantErr: "closing_rank must be positive",
		},
		{
			name: "percentile above 100",
			mutate: func(r *model.AdmissionRecord) {
				r.ClosingRank = nil
				r.ClosingPercentile = f64p(100.5)
			},
			wantErr: "closing_percentile outside [0,100]",
		},
		{
			name: "zero round",
			mutate: func(r *model.AdmissionRecord) {
				r.Round = 0
			},
			wantErr: "round must be a positive integer",
		},
		{
			name: "negative seats",
			mutate: func(r *model.AdmissionRecord) {
				r.SeatsTotal = -1
			},
			wantErr: "seats_total is negative",
		},
		{
			name: "unknown category",
			mutate: func(r *model.AdmissionRecord) {
				r.Category = "GOPENS"
			},
			wantErr: `unknown category "GOPENS"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := rankRecord(1, 101, model.CategoryOpen, 1, 4200)
			tt.mutate(&r)

			err := ValidateRecord(7, &r)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, 7, ve.Row)
			assert.Equal(t, tt.wantErr, ve.Reason)
		})
	}
}

func TestQueryUnloadedTable(t *testing.T) {
	table := NewCutoffTable()

	_, err := table.Query(RecordFilter{})

	var unavailable *DataUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 0, table.Len())
}

func TestLoadReplacesRecordSharingKey(t *testing.T) {
	table := NewCutoffTable()

	report := table.Load([]model.AdmissionRecord{rankRecord(1, 101, model.CategoryOpen, 1, 4000)})
	require.Equal(t, 1, report.Accepted)

	// Same (college, course, category, round) key: replaced, not duplicated.
	report = table.Load([]model.AdmissionRecord{rankRecord(1, 101, model.CategoryOpen, 1, 4500)})
	require.Equal(t, 1, report.Accepted)

	assert.Equal(t, 1, table.Len())
	records, err := table.Query(RecordFilter{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 4500, *records[0].ClosingRank)
}

func TestLoadRejectsBadRowsAndKeepsGoodOnes(t *testing.T) {
	table := NewCutoffTable()

	bad := rankRecord(2, 101, model.CategoryOpen, 1, 3000)
	bad.ClosingRank = nil

	report := table.Load([]model.AdmissionRecord{
		rankRecord(1, 101, model.CategoryOpen, 1, 4000),
		bad,
		rankRecord(3, 101, model.CategoryOpen, 1, 5000),
	})

	assert.Equal(t, 2, report.Accepted)
	require.Len(t, report.Rejected, 1)
	assert.Equal(t, 1, report.Rejected[0].Row)
	assert.Equal(t, 2, table.Len())
}

func TestReplaceAllDiscardsPreviousContents(t *testing.T) {
	table := NewCutoffTable()
	table.Load([]model.AdmissionRecord{
		rankRecord(1, 101, model.CategoryOpen, 1, 4000),
		rankRecord(2, 101, model.CategoryOpen, 1, 5000),
	})

	report := table.ReplaceAll([]model.AdmissionRecord{rankRecord(3, 102, model.CategorySC, 2, 9000)})

	require.Equal(t, 1, report.Accepted)
	assert.Equal(t, 1, table.Len())

	records, err := table.Query(RecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, records[0].CollegeID)
}

func TestQueryFilters(t *testing.T) {
	table := NewCutoffTable()
	table.Load([]model.AdmissionRecord{
		rankRecord(1, 101, model.CategoryOpen, 1, 4000),
		rankRecord(1, 102, model.CategoryOBC, 1, 5000),
		rankRecord(2, 101, model.CategoryOpen, 1, 6000),
	})

	byCollege, err := table.Query(RecordFilter{CollegeID: intp(1)})
	require.NoError(t, err)
	assert.Len(t, byCollege, 2)

	cat := model.CategoryOBC
	byCategory, err := table.Query(RecordFilter{Category: &cat})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, 102, byCategory[0].CourseID)
}

func TestSnapshotOrderIsDeterministic(t *testing.T) {
	// Two tables loaded with the same rows in different orders must hand
	// queries the exact same sequence.
	rows := []model.AdmissionRecord{
		rankRecord(2, 101, model.CategoryOpen, 1, 6000),
		rankRecord(1, 102, model.CategoryOBC, 2, 5000),
		rankRecord(1, 101, model.CategoryOpen, 1, 4000),
		rankRecord(1, 102, model.CategoryOBC, 1, 5500),
	}
	reversed := make([]model.AdmissionRecord, len(rows))
	for i, r := range rows {
		reversed[len(rows)-1-i] = r
	}

	a, b := NewCutoffTable(), NewCutoffTable()
	a.Load(rows)
	b.Load(reversed)

	got, err := a.Query(RecordFilter{})
	require.NoError(t, err)
	want, err := b.Query(RecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
