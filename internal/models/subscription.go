package models

import "time"

// Subscription представляет купленную подписку пользователя.
// Записи не удаляются этим модулем: отмена моделируется как IsActive = false.
// После завершения покупки активной остаётся ровно одна подписка пользователя.
type Subscription struct {
	ID          int64     // Идентификатор подписки
	UserUID     string    // Владелец подписки
	PlanID      int64     // Купленный тарифный план
	PurchasedAt time.Time // Момент покупки, назначается системой
	ExpiresAt   time.Time // Момент истечения, после создания не редактируется
	IsActive    bool      // Флаг активности, поддерживается транзакцией покупки
}

// SubscriptionView — представление подписки для выдачи клиенту,
// содержит вложенный тарифный план.
type SubscriptionView struct {
	ID          int64     `json:"id"`
	Plan        Plan      `json:"plan"`
	PurchasedAt time.Time `json:"purchased_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	IsActive    bool      `json:"is_active"`
}

// DummyPurchase используется для приёма запроса на покупку подписки из JSON.
type DummyPurchase struct {
	PlanID int64 `json:"plan_id"`
}

// PurchaseReceipt — результат успешно выполненной транзакции покупки.
type PurchaseReceipt struct {
	SubscriptionID int64     // ID созданной подписки
	ExpiresAt      time.Time // Вычисленная дата истечения
	Balance        float64   // Баланс пользователя после списания
}

// PurchaseResult — итог покупки для выдачи клиенту, включает название плана.
type PurchaseResult struct {
	SubscriptionID int64
	PlanName       string
	ExpiresAt      time.Time
	Balance        float64
}
