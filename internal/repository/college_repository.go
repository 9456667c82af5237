package repository

import (
	"context"

	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CollegeRepository interface {
	GetAll(ctx context.Context) ([]*model.College, error)
	GetByID(ctx context.Context, id int) (*model.College, error)
	GetByCode(ctx context.Context, code int) (*model.College, error)
	Upsert(ctx context.Context, college *model.College) error
}

type collegeRepository struct {
	db *pgxpool.Pool
}

func NewCollegeRepository(db *pgxpool.Pool) CollegeRepository {
	return &collegeRepository{db: db}
}

const collegeColumns = `id, code, name, type, region_id, fee_band, created_at, updated_at`

func (r *collegeRepository) GetAll(ctx context.Context) ([]*model.College, error) {
	rows, err := r.db.Query(ctx, `SELECT `+collegeColumns+` FROM colleges ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var colleges []*model.College
	for rows.Next() {
		m := &model.College{}
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.Type, &m.RegionID, &m.FeeBand, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		colleges = append(colleges, m)
	}
	return colleges, rows.Err()
}

func (r *collegeRepository) GetByID(ctx context.Context, id int) (*model.College, error) {
	m := &model.College{}
	err := r.db.QueryRow(ctx, `SELECT `+collegeColumns+` FROM colleges WHERE id = $1`, id).
		Scan(&m.ID, &m.Code, &m.Name, &m.Type, &m.RegionID, &m.FeeBand, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *collegeRepository) GetByCode(ctx context.Context, code int) (*model.College, error) {
	m := &model.College{}
	err := r.db.QueryRow(ctx, `SELECT `+collegeColumns+` FROM colleges WHERE code = $1`, code).
		Scan(&m.ID, &m.Code, &m.Name, &m.Type, &m.RegionID, &m.FeeBand, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *collegeRepository) Upsert(ctx context.Context, college *model.College) error {
	query := `
		INSERT INTO colleges (code, name, type, region_id, fee_band)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE
		SET name = EXCLUDED.name, type = EXCLUDED.type,
		    region_id = EXCLUDED.region_id, fee_band = EXCLUDED.fee_band,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		college.Code, college.Name, college.Type, college.RegionID, college.FeeBand,
	).Scan(&college.ID, &college.CreatedAt, &college.UpdatedAt)
}
