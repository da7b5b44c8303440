// Package models содержит доменные структуры пользователя, тарифных планов
// и подписок, а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Баланс хранится как десятичное число (NUMERIC в базе) и не может быть отрицательным.
type User struct {
	UID          string     // Уникальный идентификатор пользователя
	Phone        string     // Номер телефона (уникальный)
	PasswordHash string     // Хэш пароля пользователя
	FirstName    string     // Имя
	LastName     string     // Фамилия
	BirthDate    *time.Time // Дата рождения, может отсутствовать
	Balance      float64    // Внутренний баланс пользователя
	CreatedAt    time.Time  // Дата создания учётной записи
}

// UserView — представление профиля для выдачи клиенту.
// Поля id, phone и balance доступны только для чтения.
type UserView struct {
	UID       string  `json:"id"`
	Phone     string  `json:"phone"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Balance   float64 `json:"balance"`
	BirthDate *string `json:"birth_date"`
}

// View конвертирует User в UserView, форматируя дату рождения как YYYY-MM-DD.
func (u *User) View() UserView {
	view := UserView{
		UID:       u.UID,
		Phone:     u.Phone,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Balance:   u.Balance,
	}
	if u.BirthDate != nil {
		s := u.BirthDate.Format("2006-01-02")
		view.BirthDate = &s
	}
	return view
}

// DummyProfileUpdate используется для приёма данных обновления профиля из JSON-запроса.
// Структура закрытая: любые другие ключи в теле запроса отбрасываются при декодировании.
// Указатели различают "поле не передано" и "поле передано пустым".
type DummyProfileUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	BirthDate *string `json:"birth_date"` // Дата в формате 2006-01-02
}
