package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/subscription-commerce/internal/lib/expiry"
	"github.com/magabrotheeeer/subscription-commerce/internal/models"
)

// PurchaseEntry выполняет покупку тарифного плана одной транзакцией базы данных:
// блокирует строку пользователя, проверяет баланс, вычисляет дату истечения
// (продлевая действующую подписку, если она есть), списывает цену, создаёт
// новую подписку и деактивирует все остальные активные подписки пользователя.
//
// Строка пользователя берётся под SELECT ... FOR UPDATE, поэтому две
// одновременные покупки одного пользователя сериализуются на блокировке.
// Любая ошибка внутри откатывает все изменения.
func (s *Storage) PurchaseEntry(ctx context.Context, userUID string, plan models.Plan) (*models.PurchaseReceipt, error) {
	const op = "storage.PurchaseEntry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var balance float64
	query := `SELECT balance FROM users WHERE uid = $1 FOR UPDATE`
	if err := tx.QueryRowContext(ctx, query, userUID).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if balance < plan.Price {
		return nil, &InsufficientBalanceError{Balance: balance, Price: plan.Price}
	}

	now := time.Now().UTC()

	var current *time.Time
	query = `SELECT expires_at
			 FROM subscriptions
			 WHERE user_uid = $1
			   AND is_active = true
			   AND expires_at > $2
			 ORDER BY expires_at DESC
			 LIMIT 1`
	var latest time.Time
	err = tx.QueryRowContext(ctx, query, userUID, now).Scan(&latest)
	switch {
	case err == nil:
		current = &latest
	case errors.Is(err, sql.ErrNoRows):
		// Действующей подписки нет, отсчёт пойдёт от текущего момента.
	default:
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	expiresAt := expiry.Count(current, plan.Days, now)

	var newBalance float64
	query = `UPDATE users
			 SET balance = balance - $1
			 WHERE uid = $2
			 RETURNING balance`
	if err := tx.QueryRowContext(ctx, query, plan.Price, userUID).Scan(&newBalance); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var newID int64
	query = `INSERT INTO subscriptions (user_uid, plan_id, purchased_at, expires_at, is_active)
			 VALUES ($1, $2, $3, $4, true)
			 RETURNING id`
	if err := tx.QueryRowContext(ctx, query, userUID, plan.ID, now, expiresAt).Scan(&newID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query = `UPDATE subscriptions
			 SET is_active = false
			 WHERE user_uid = $1
			   AND is_active = true
			   AND id <> $2`
	if _, err := tx.ExecContext(ctx, query, userUID, newID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.PurchaseReceipt{
		SubscriptionID: newID,
		ExpiresAt:      expiresAt,
		Balance:        newBalance,
	}, nil
}

// ListEntrys возвращает подписки пользователя вместе с данными тарифного плана,
// новые первыми.
func (s *Storage) ListEntrys(ctx context.Context, userUID string) ([]*models.SubscriptionView, error) {
	const op = "storage.ListEntrys"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.purchased_at, s.expires_at, s.is_active,
			      p.id, p.name, p.price, p.days, p.is_active
			  FROM subscriptions s
			  JOIN subscription_plans p ON s.plan_id = p.id
			  WHERE s.user_uid = $1
			  ORDER BY s.purchased_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.SubscriptionView
	for rows.Next() {
		var item models.SubscriptionView
		if err := rows.Scan(&item.ID, &item.PurchasedAt, &item.ExpiresAt, &item.IsActive,
			&item.Plan.ID, &item.Plan.Name, &item.Plan.Price, &item.Plan.Days,
			&item.Plan.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
