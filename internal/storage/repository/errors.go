package repository

import (
	"errors"
	"fmt"
	"strconv"
)

// Сигнальные ошибки хранилища. Сервисы пробрасывают их наверх,
// HTTP-обработчики сопоставляют им коды ответов.
var (
	// ErrUserNotFound возвращается, когда пользователь не найден по UID или телефону.
	ErrUserNotFound = errors.New("user not found")
	// ErrPlanNotFound возвращается, когда тарифный план не существует или неактивен.
	// Неактивный план неотличим для вызывающего от несуществующего.
	ErrPlanNotFound = errors.New("subscription plan not found or inactive")
)

// InsufficientBalanceError возвращается транзакцией покупки, когда баланса
// пользователя не хватает на цену плана. Содержит оба значения для ответа клиенту.
type InsufficientBalanceError struct {
	Balance float64
	Price   float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient balance. Balance: %s, Price: %s",
		formatAmount(e.Balance), formatAmount(e.Price))
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
