// Package services содержит бизнес-логику управления профилем пользователя:
// чтение, частичное и полное обновление разрешённых полей, удаление аккаунта.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/subscription-commerce/internal/models"
)

// Ошибки валидации даты рождения. Обработчик сопоставляет их
// полю birth_date в ответе клиенту.
var (
	// ErrInvalidBirthDate возвращается, если дата не в формате 2006-01-02.
	ErrInvalidBirthDate = errors.New("birth_date must be a valid date in format YYYY-MM-DD")
	// ErrBirthDateInFuture возвращается для даты рождения в будущем.
	ErrBirthDateInFuture = errors.New("birth date cannot be in the future")
)

// UserRepository определяет методы для работы с профилем пользователя в хранилище.
type UserRepository interface {
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	// UpdateProfile перезаписывает редактируемые поля профиля.
	UpdateProfile(ctx context.Context, userUID, firstName, lastName string, birthDate *time.Time) (*models.User, error)
	// DeleteUser безвозвратно удаляет пользователя вместе с подписками.
	DeleteUser(ctx context.Context, userUID string) (int, error)
}

// ProfileService реализует операции над профилем текущего пользователя.
// Телефон, баланс и UID из запросов не принимаются: структура запроса
// содержит только три редактируемых поля, остальные ключи отбрасываются.
type ProfileService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo UserRepository, log *slog.Logger) *ProfileService {
	return &ProfileService{
		repo: repo,
		log:  log,
	}
}

// Get возвращает профиль пользователя по UID.
func (s *ProfileService) Get(ctx context.Context, userUID string) (*models.User, error) {
	return s.repo.GetUser(ctx, userUID)
}

// Update обновляет профиль пользователя.
//
// При partial = true изменяются только переданные поля; при false выполняется
// полное обновление: не переданные поля сбрасываются в пустые значения.
// Дата рождения не может быть в будущем.
func (s *ProfileService) Update(ctx context.Context, userUID string, req models.DummyProfileUpdate, partial bool) (*models.User, error) {
	current, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}

	firstName, lastName := "", ""
	var birthDate *time.Time
	if partial {
		firstName = current.FirstName
		lastName = current.LastName
		birthDate = current.BirthDate
	}

	if req.FirstName != nil {
		firstName = *req.FirstName
	}
	if req.LastName != nil {
		lastName = *req.LastName
	}
	if req.BirthDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, ErrInvalidBirthDate
		}
		today := time.Now().UTC().Truncate(24 * time.Hour)
		if parsed.After(today) {
			return nil, ErrBirthDateInFuture
		}
		birthDate = &parsed
	}

	updated, err := s.repo.UpdateProfile(ctx, userUID, firstName, lastName, birthDate)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated user profile", slog.String("user_uid", userUID))
	return updated, nil
}

// Delete безвозвратно удаляет аккаунт пользователя вместе с его подписками.
func (s *ProfileService) Delete(ctx context.Context, userUID string) error {
	count, err := s.repo.DeleteUser(ctx, userUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("delete profile: no user with uid %s", userUID)
	}
	s.log.Info("deleted user account", slog.String("user_uid", userUID))
	return nil
}
