package repository

import (
	"context"

	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RegionRepository interface {
	GetAll(ctx context.Context) ([]*model.Region, error)
	GetByID(ctx context.Context, id int) (*model.Region, error)
	Create(ctx context.Context, region *model.Region) error
}

type regionRepository struct {
	db *pgxpool.Pool
}

func NewRegionRepository(db *pgxpool.Pool) RegionRepository {
	return &regionRepository{db: db}
}

func (r *regionRepository) GetAll(ctx context.Context) ([]*model.Region, error) {
	query := `SELECT id, name, parent_id, created_at FROM regions ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regions []*model.Region
	for rows.Next() {
		m := &model.Region{}
		if err := rows.Scan(&m.ID, &m.Name, &m.ParentID, &m.CreatedAt); err != nil {
			return nil, err
		}
		regions = append(regions, m)
	}
	return regions, rows.Err()
}

func (r *regionRepository) GetByID(ctx context.Context, id int) (*model.Region, error) {
	query := `SELECT id, name, parent_id, created_at FROM regions WHERE id = $1`
	m := &model.Region{}
	if err := r.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.ParentID, &m.CreatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *regionRepository) Create(ctx context.Context, region *model.Region) error {
	query := `
		INSERT INTO regions (name, parent_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, region.Name, region.ParentID).Scan(&region.ID, &region.CreatedAt)
}
