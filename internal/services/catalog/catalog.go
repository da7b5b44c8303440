// Package services содержит бизнес-логику каталога тарифных планов с кешированием.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-commerce/internal/lib/sl"
	"github.com/magabrotheeeer/subscription-commerce/internal/models"
)

const (
	plansCacheKey = "plans:active"
	plansCacheTTL = 5 * time.Minute
)

// PlanRepository определяет методы для работы с тарифными планами в хранилище.
type PlanRepository interface {
	// ListActivePlans возвращает активные планы по возрастанию цены.
	ListActivePlans(ctx context.Context) ([]*models.Plan, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CatalogService отдаёт каталог активных тарифных планов, используя кеш.
// Ошибки кеша не фатальны: каталог деградирует до чтения из базы.
type CatalogService struct {
	repo  PlanRepository
	cache Cache
	log   *slog.Logger
}

// NewCatalogService создает новый экземпляр CatalogService.
func NewCatalogService(repo PlanRepository, cache Cache, log *slog.Logger) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// ListActivePlans возвращает активные планы из кеша либо из хранилища.
func (s *CatalogService) ListActivePlans(ctx context.Context) ([]*models.Plan, error) {
	var cached []*models.Plan
	found, err := s.cache.Get(plansCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read plans from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	plans, err := s.repo.ListActivePlans(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(plansCacheKey, plans, plansCacheTTL); err != nil {
		s.log.Warn("failed to cache plans", slog.String("key", plansCacheKey), sl.Err(err))
	}
	return plans, nil
}
