// Package services содержит бизнес-логику покупки подписок и просмотра
// истории подписок пользователя.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/subscription-commerce/internal/models"
)

// SubscriptionRepository определяет методы хранилища, участвующие в покупке.
type SubscriptionRepository interface {
	// GetActivePlan возвращает активный тарифный план по ID
	// или repository.ErrPlanNotFound.
	GetActivePlan(ctx context.Context, planID int64) (*models.Plan, error)
	// PurchaseEntry выполняет покупку плана одной транзакцией базы данных.
	PurchaseEntry(ctx context.Context, userUID string, plan models.Plan) (*models.PurchaseReceipt, error)
	// ListEntrys возвращает подписки пользователя вместе с тарифными планами.
	ListEntrys(ctx context.Context, userUID string) ([]*models.SubscriptionView, error)
}

// SubscriptionService реализует покупку тарифного плана и просмотр подписок.
type SubscriptionService struct {
	repo SubscriptionRepository
	log  *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriptionRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		log:  log,
	}
}

// Purchase покупает тарифный план для пользователя.
//
// Проверка плана выполняется до каких-либо изменений; само списание баланса,
// создание подписки и деактивация прежних активных подписок происходят
// атомарно внутри транзакции хранилища. Ошибки хранилища
// (repository.ErrPlanNotFound, *repository.InsufficientBalanceError)
// пробрасываются вызывающему без изменений.
func (s *SubscriptionService) Purchase(ctx context.Context, userUID string, planID int64) (*models.PurchaseResult, error) {
	plan, err := s.repo.GetActivePlan(ctx, planID)
	if err != nil {
		return nil, err
	}

	receipt, err := s.repo.PurchaseEntry(ctx, userUID, *plan)
	if err != nil {
		return nil, err
	}

	s.log.Info("subscription purchased",
		slog.String("user_uid", userUID),
		slog.Int64("subscription_id", receipt.SubscriptionID),
		slog.String("plan_name", plan.Name),
		slog.Time("expires_at", receipt.ExpiresAt))

	return &models.PurchaseResult{
		SubscriptionID: receipt.SubscriptionID,
		PlanName:       plan.Name,
		ExpiresAt:      receipt.ExpiresAt,
		Balance:        receipt.Balance,
	}, nil
}

// List возвращает все подписки пользователя, новые первыми.
func (s *SubscriptionService) List(ctx context.Context, userUID string) ([]*models.SubscriptionView, error) {
	return s.repo.ListEntrys(ctx, userUID)
}
