package models

import "time"

// Plan представляет тарифный план подписки, управляемый администратором.
// Из потока покупки план доступен только для чтения.
type Plan struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Days      int       `json:"days"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
