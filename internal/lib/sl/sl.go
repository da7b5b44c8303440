// Package sl содержит вспомогательные функции для работы с логгером slog.
// Используется обработчиками и сервисами для единообразной передачи ошибок в лог.
package sl

import "log/slog"

// Err возвращает slog.Attr с ключом "error" и значением текста ошибки.
//
// Пример:
//
//	log.Error("failed to purchase subscription", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
