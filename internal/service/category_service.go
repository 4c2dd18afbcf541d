package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/ports"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/util"
)

type CategoryService struct {
	categories ports.CategoryRepository
	cache      ports.CacheRepository
}

func NewCategoryService(categories ports.CategoryRepository, cache ports.CacheRepository) *CategoryService {
	return &CategoryService{categories: categories, cache: cache}
}

func (s *CategoryService) CreateCategory(ctx context.Context, categoryType, color string) (*model.Category, error) {
	if util.Blank(categoryType, color) {
		return nil, ErrMissingAttributes
	}

	category := &model.Category{Type: categoryType, Color: color}
	if err := s.categories.Create(ctx, category); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("[CategoryService] creating category: %w", err)
	}

	s.invalidate(ctx)
	return category, nil
}

// ListCategories : served from the cache when warm, otherwise from the database
func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	cached, err := s.cache.GetCategories(ctx)
	if err != nil {
		log.Printf("[CategoryService] cache unavailable, reading database: %v", err)
	} else if cached != nil {
		return cached, nil
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("[CategoryService] listing categories: %w", err)
	}
	if categories == nil {
		categories = []model.Category{}
	}

	if err := s.cache.SetCategories(ctx, categories); err != nil {
		log.Printf("[CategoryService] failed to warm cache: %v", err)
	}
	return categories, nil
}

// UpdateCategory : returns the number of transactions moved to the new type
func (s *CategoryService) UpdateCategory(ctx context.Context, oldType, newType, color string) (int64, error) {
	if util.Blank(oldType, newType, color) {
		return 0, ErrMissingAttributes
	}

	count, err := s.categories.Update(ctx, oldType, &model.Category{Type: newType, Color: color})
	switch {
	case errors.Is(err, model.ErrNotFound):
		return 0, ErrCategoryNotFound
	case errors.Is(err, model.ErrAlreadyExists):
		return 0, ErrCategoryExists
	case err != nil:
		return 0, fmt.Errorf("[CategoryService] updating category: %w", err)
	}

	s.invalidate(ctx)
	return count, nil
}

// DeleteCategories : at least one category always survives. When every category is named
// the oldest one is kept. Transactions of deleted categories move to the oldest survivor.
func (s *CategoryService) DeleteCategories(ctx context.Context, types []string) (int64, error) {
	if len(types) == 0 || util.Blank(types...) {
		return 0, ErrMissingAttributes
	}

	all, err := s.categories.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("[CategoryService] listing categories: %w", err)
	}
	if len(all) <= 1 {
		return 0, ErrLastCategory
	}

	existing := make(map[string]bool, len(all))
	for _, c := range all {
		existing[c.Type] = true
	}
	for _, t := range types {
		if !existing[t] {
			return 0, ErrCategoryNotFound
		}
	}

	// all is oldest first
	var fallback string
	for _, c := range all {
		if !slices.Contains(types, c.Type) {
			fallback = c.Type
			break
		}
	}
	doomed := slices.Compact(slices.Sorted(slices.Values(types)))
	if fallback == "" {
		fallback = all[0].Type
		doomed = slices.DeleteFunc(doomed, func(t string) bool { return t == fallback })
	}

	count, err := s.categories.DeleteAndReassign(ctx, doomed, fallback)
	if err != nil {
		return 0, fmt.Errorf("[CategoryService] deleting categories: %w", err)
	}

	s.invalidate(ctx)
	return count, nil
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateCategories(ctx); err != nil {
		log.Printf("[CategoryService] failed to invalidate cache: %v", err)
	}
}
