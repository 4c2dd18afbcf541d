package ports

import (
	"context"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
)

// CacheRepository : redis layer in front of the category table
type CacheRepository interface {
	SetCategories(ctx context.Context, categories []model.Category) error
	GetCategories(ctx context.Context) ([]model.Category, error)
	InvalidateCategories(ctx context.Context) error
}
