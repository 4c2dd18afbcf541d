package ports

import (
	"context"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	List(ctx context.Context) ([]model.Category, error)
	FindByType(ctx context.Context, categoryType string) (*model.Category, error)
	Update(ctx context.Context, oldType string, category *model.Category) (int64, error)
	DeleteAndReassign(ctx context.Context, types []string, fallback string) (int64, error)
}

type CategoryService interface {
	CreateCategory(ctx context.Context, categoryType, color string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, oldType, newType, color string) (int64, error)
	DeleteCategories(ctx context.Context, types []string) (int64, error)
}
