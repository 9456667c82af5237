package repository

import (
	"context"

	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CutoffRepository interface {
	GetAll(ctx context.Context) ([]model.AdmissionRecord, error)
	UpsertBatch(ctx context.Context, records []model.AdmissionRecord) error
	// Version returns an opaque string that changes whenever the cutoffs
	// table content changes; used by the snapshot worker to detect drift.
	Version(ctx context.Context) (string, error)
}

type cutoffRepository struct {
	db *pgxpool.Pool
}

func NewCutoffRepository(db *pgxpool.Pool) CutoffRepository {
	return &cutoffRepository{db: db}
}

func (r *cutoffRepository) GetAll(ctx context.Context) ([]model.AdmissionRecord, error) {
	query := `
		SELECT id, college_id, course_id, category, round,
		       closing_rank, closing_percentile, seats_total, year, updated_at
		FROM cutoffs
		ORDER BY college_id, course_id, category, round
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AdmissionRecord
	for rows.Next() {
		var m model.AdmissionRecord
		if err := rows.Scan(
			&m.ID, &m.CollegeID, &m.CourseID, &m.Category, &m.Round,
			&m.ClosingRank, &m.ClosingPercentile, &m.SeatsTotal, &m.Year, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, m)
	}
	return records, rows.Err()
}

// UpsertBatch writes records in one transaction. A record replaces the
// existing row sharing its (college, course, category, round) key.
func (r *cutoffRepository) UpsertBatch(ctx context.Context, records []model.AdmissionRecord) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO cutoffs (college_id, course_id, category, round,
			                     closing_rank, closing_percentile, seats_total, year)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (college_id, course_id, category, round) DO UPDATE
			SET closing_rank = EXCLUDED.closing_rank,
			    closing_percentile = EXCLUDED.closing_percentile,
			    seats_total = EXCLUDED.seats_total,
			    year = EXCLUDED.year,
			    updated_at = CURRENT_TIMESTAMP
		`
		for i := range records {
			m := &records[i]
			if _, err := tx.Exec(ctx, query,
				m.CollegeID, m.CourseID, m.Category, m.Round,
				m.ClosingRank, m.ClosingPercentile, m.SeatsTotal, m.Year,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *cutoffRepository) Version(ctx context.Context) (string, error) {
	var version string
	query := `SELECT COALESCE(MAX(updated_at)::text, '') || ':' || COUNT(*)::text FROM cutoffs`
	if err := r.db.QueryRow(ctx, query).Scan(&version); err != nil {
		return "", err
	}
	return version, nil
}
