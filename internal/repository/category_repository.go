package repository

import (
	"context"
	"fmt"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/config"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/util"
	"github.com/lib/pq"
)

type CategoryRepository struct {
	*config.Database
}

func NewCategoryRepository(database *config.Database) *CategoryRepository {
	return &CategoryRepository{database}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `INSERT INTO categories (type, color) VALUES ($1, $2)`

	if _, err := r.DB.ExecContext(ctx, query, category.Type, category.Color); err != nil {
		return translate(util.LogError("[CategoryRepo] failed to insert category", err))
	}
	return nil
}

// List : every category, oldest first
func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	query := `SELECT type, color, created_at FROM categories ORDER BY created_at ASC, type ASC`

	var categories []model.Category
	if err := r.DB.SelectContext(ctx, &categories, query); err != nil {
		return nil, util.LogError("[CategoryRepo] failed to list categories", err)
	}
	return categories, nil
}

func (r *CategoryRepository) FindByType(ctx context.Context, categoryType string) (*model.Category, error) {
	query := `SELECT type, color, created_at FROM categories WHERE type = $1`

	var category model.Category
	if err := r.DB.GetContext(ctx, &category, query, categoryType); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// Update : renames/recolors oldType and re-tags its transactions, returns how many were re-tagged
func (r *CategoryRepository) Update(ctx context.Context, oldType string, category *model.Category) (int64, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, util.LogError("[CategoryRepo] failed to begin transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE categories SET type = $2, color = $3 WHERE type = $1`,
		oldType, category.Type, category.Color)
	if err != nil {
		return 0, translate(util.LogError("[CategoryRepo] failed to update category", err))
	}
	if rows, err := result.RowsAffected(); err != nil {
		return 0, fmt.Errorf("[CategoryRepo] counting updated categories: %w", err)
	} else if rows == 0 {
		return 0, model.ErrNotFound
	}

	result, err = tx.ExecContext(ctx, `UPDATE transactions SET type = $2 WHERE type = $1`, oldType, category.Type)
	if err != nil {
		return 0, util.LogError("[CategoryRepo] failed to re-tag transactions", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("[CategoryRepo] counting re-tagged transactions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, util.LogError("[CategoryRepo] failed to commit", err)
	}
	return count, nil
}

// DeleteAndReassign : deletes types and moves their transactions to fallback
func (r *CategoryRepository) DeleteAndReassign(ctx context.Context, types []string, fallback string) (int64, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, util.LogError("[CategoryRepo] failed to begin transaction", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE transactions SET type = $2 WHERE type = ANY($1)`, pq.Array(types), fallback)
	if err != nil {
		return 0, util.LogError("[CategoryRepo] failed to reassign transactions", err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("[CategoryRepo] counting reassigned transactions: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE type = ANY($1)`, pq.Array(types)); err != nil {
		return 0, util.LogError("[CategoryRepo] failed to delete categories", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, util.LogError("[CategoryRepo] failed to commit", err)
	}
	return count, nil
}
