package repository

import (
	"context"

	"github.com/collegeconnect/suggester-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoryRuleRepository interface {
	GetAll(ctx context.Context) ([]model.CategoryRule, error)
	Replace(ctx context.Context, rules []model.CategoryRule) error
}

type categoryRuleRepository struct {
	db *pgxpool.Pool
}

func NewCategoryRuleRepository(db *pgxpool.Pool) CategoryRuleRepository {
	return &categoryRuleRepository{db: db}
}

func (r *categoryRuleRepository) GetAll(ctx context.Context) ([]model.CategoryRule, error) {
	query := `SELECT id, category, qualifies_for FROM category_rules ORDER BY category, qualifies_for`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []model.CategoryRule
	for rows.Next() {
		var m model.CategoryRule
		if err := rows.Scan(&m.ID, &m.Category, &m.QualifiesFor); err != nil {
			return nil, err
		}
		rules = append(rules, m)
	}
	return rules, rows.Err()
}

// Replace swaps the whole relation; the hierarchy changes as one unit
// when an exam authority publishes new reservation rules.
func (r *categoryRuleRepository) Replace(ctx context.Context, rules []model.CategoryRule) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM category_rules`); err != nil {
		return err
	}
	for _, rule := range rules {
		if _, err := tx.Exec(ctx,
			`INSERT INTO category_rules (category, qualifies_for) VALUES ($1, $2)`,
			rule.Category, rule.QualifiesFor,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}
