package postgres

import (
	"context"
	"database/sql"

	"readbooks-backend/internal/domain"
	"readbooks-backend/internal/logger"
	"readbooks-backend/internal/repository"
)

type categoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	query := `SELECT id, name, image FROM categories ORDER BY name`
	logger.DatabaseCall("categories.list", query)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("categories.list", 0, err)
		return nil, domain.StoreError("list categories", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Image); err != nil {
			return nil, domain.StoreError("scan category", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError("iterate categories", err)
	}
	return categories, nil
}
