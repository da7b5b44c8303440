package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/subscription-commerce/internal/models"
)

// ListActivePlans возвращает все активные тарифные планы по возрастанию цены.
// Пустой список — корректный результат.
func (s *Storage) ListActivePlans(ctx context.Context) ([]*models.Plan, error) {
	const op = "storage.ListActivePlans"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, days, is_active, created_at, updated_at
			  FROM subscription_plans
			  WHERE is_active = true
			  ORDER BY price`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Plan
	for rows.Next() {
		var item models.Plan
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Days,
			&item.IsActive, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetActivePlan возвращает активный тарифный план по ID.
// План с is_active = false неотличим от несуществующего: оба дают ErrPlanNotFound.
func (s *Storage) GetActivePlan(ctx context.Context, planID int64) (*models.Plan, error) {
	const op = "storage.GetActivePlan"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, days, is_active, created_at, updated_at
			  FROM subscription_plans
			  WHERE id = $1
			    AND is_active = true`
	var plan models.Plan
	row := s.DB.QueryRowContext(ctx, query, planID)
	if err := row.Scan(&plan.ID, &plan.Name, &plan.Price, &plan.Days,
		&plan.IsActive, &plan.CreatedAt, &plan.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrPlanNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &plan, nil
}
