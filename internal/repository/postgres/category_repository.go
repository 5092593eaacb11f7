package postgres

import (
	"context"
	"database/sql"
	"errors"

	"jobboard/internal/common"
	"jobboard/internal/domain/category"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list categories", err)
	}
	defer rows.Close()
	var items []category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan category", err)
		}
		items = append(items, c)
	}
	return items, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id common.UUID) (*category.Category, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, slug FROM categories WHERE id = $1`, id)
	var c category.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "category not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load category", err)
	}
	return &c, nil
}
