package repository

import (
	"context"

	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CourseRepository interface {
	GetAll(ctx context.Context) ([]*model.Course, error)
	GetByID(ctx context.Context, id int) (*model.Course, error)
	GetByCode(ctx context.Context, code int) (*model.Course, error)
	Upsert(ctx context.Context, course *model.Course) error
}

type courseRepository struct {
	db *pgxpool.Pool
}

func NewCourseRepository(db *pgxpool.Pool) CourseRepository {
	return &courseRepository{db: db}
}

const courseColumns = `id, code, name, field, created_at, updated_at`

func (r *courseRepository) GetAll(ctx context.Context) ([]*model.Course, error) {
	rows, err := r.db.Query(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		m := &model.Course{}
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.Field, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, m)
	}
	return courses, rows.Err()
}

func (r *courseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	m := &model.Course{}
	err := r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id).
		Scan(&m.ID, &m.Code, &m.Name, &m.Field, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *courseRepository) GetByCode(ctx context.Context, code int) (*model.Course, error) {
	m := &model.Course{}
	err := r.db.QueryRow(ctx, `SELECT `+courseColumns+` FROM courses WHERE code = $1`, code).
		Scan(&m.ID, &m.Code, &m.Name, &m.Field, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *courseRepository) Upsert(ctx context.Context, course *model.Course) error {
	query := `
		INSERT INTO courses (code, name, field)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE
		SET name = EXCLUDED.name, field = EXCLUDED.field, updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, course.Code, course.Name, course.Field).
		Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
}
