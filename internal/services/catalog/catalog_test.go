package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/subscription-commerce/internal/models"
)

// MockPlanRepository реализует интерфейс PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) ListActivePlans(ctx context.Context) ([]*models.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Plan), args.Error(1)
}

// MockCache реализует интерфейс Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if args.Bool(0) {
		if plans, ok := result.(*[]*models.Plan); ok {
			*plans = []*models.Plan{{ID: 1, Name: "Cached", Price: 50, Days: 30, IsActive: true}}
		}
	}
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestCatalogService_ListActivePlans(t *testing.T) {
	plans := []*models.Plan{
		{ID: 1, Name: "Basic", Price: 50, Days: 30, IsActive: true},
		{ID: 2, Name: "Premium", Price: 120, Days: 90, IsActive: true},
	}

	t.Run("попадание в кеш", func(t *testing.T) {
		repo := new(MockPlanRepository)
		cache := new(MockCache)
		cache.On("Get", "plans:active", mock.Anything).Return(true, nil)

		service := NewCatalogService(repo, cache, newTestLogger())

		got, err := service.ListActivePlans(context.Background())

		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, "Cached", got[0].Name)
		repo.AssertNotCalled(t, "ListActivePlans")
	})

	t.Run("промах кеша читает из базы и кеширует", func(t *testing.T) {
		repo := new(MockPlanRepository)
		repo.On("ListActivePlans", mock.Anything).Return(plans, nil)
		cache := new(MockCache)
		cache.On("Get", "plans:active", mock.Anything).Return(false, nil)
		cache.On("Set", "plans:active", plans, 5*time.Minute).Return(nil)

		service := NewCatalogService(repo, cache, newTestLogger())

		got, err := service.ListActivePlans(context.Background())

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		cache.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("ошибка кеша не фатальна", func(t *testing.T) {
		repo := new(MockPlanRepository)
		repo.On("ListActivePlans", mock.Anything).Return(plans, nil)
		cache := new(MockCache)
		cache.On("Get", "plans:active", mock.Anything).Return(false, errors.New("redis down"))
		cache.On("Set", "plans:active", plans, 5*time.Minute).Return(errors.New("redis down"))

		service := NewCatalogService(repo, cache, newTestLogger())

		got, err := service.ListActivePlans(context.Background())

		assert.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("ошибка базы пробрасывается", func(t *testing.T) {
		repo := new(MockPlanRepository)
		repo.On("ListActivePlans", mock.Anything).Return(nil, errors.New("db error"))
		cache := new(MockCache)
		cache.On("Get", "plans:active", mock.Anything).Return(false, nil)

		service := NewCatalogService(repo, cache, newTestLogger())

		got, err := service.ListActivePlans(context.Background())

		assert.Error(t, err)
		assert.Nil(t, got)
		cache.AssertNotCalled(t, "Set")
	})
}
