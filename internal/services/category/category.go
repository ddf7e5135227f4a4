// Package services содержит бизнес-логику справочника категорий.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/subscore/subscore-api/internal/models"
)

const categoriesCacheKey = "categories:all"

// CategoryRepository определяет методы чтения справочника категорий.
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	ListCategoriesByIDs(ctx context.Context, ids []string) ([]*models.Category, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// CategoryService отдаёт справочник категорий, кешируя его целиком:
// записи меняются только миграциями.
type CategoryService struct {
	repo  CategoryRepository
	cache Cache
	log   *slog.Logger
}

// NewCategoryService создает новый экземпляр CategoryService.
func NewCategoryService(repo CategoryRepository, cache Cache, log *slog.Logger) *CategoryService {
	return &CategoryService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListAll возвращает весь справочник категорий.
func (s *CategoryService) ListAll(ctx context.Context) ([]*models.Category, error) {
	var cached []*models.Category
	found, err := s.cache.Get(categoriesCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read categories from cache", slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(categoriesCacheKey, categories, 12*time.Hour); err != nil {
		s.log.Warn("failed to cache categories", slog.Any("err", err))
	}
	return categories, nil
}

// ListByIDs возвращает категории по набору идентификаторов.
func (s *CategoryService) ListByIDs(ctx context.Context, ids []string) ([]*models.Category, error) {
	return s.repo.ListCategoriesByIDs(ctx, ids)
}
