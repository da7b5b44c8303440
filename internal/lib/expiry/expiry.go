// Package expiry содержит расчёт даты истечения подписки при покупке тарифного плана.
package expiry

import "time"

// Count вычисляет новую дату истечения подписки.
//
// Если у пользователя есть действующая подписка (current не nil и позже now),
// новый срок продлевает её: current + days дней. Иначе отсчёт идёт от now.
func Count(current *time.Time, days int, now time.Time) time.Time {
	if current != nil && current.After(now) {
		return current.AddDate(0, 0, days)
	}
	return now.AddDate(0, 0, days)
}
