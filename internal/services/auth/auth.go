// Package services содержит логику бизнес-уровня для регистрации и аутентификации пользователей.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/subscription-commerce/internal/lib/jwt"
	"github.com/magabrotheeeer/subscription-commerce/internal/lib/password"
	"github.com/magabrotheeeer/subscription-commerce/internal/models"
)

// ErrInvalidCredentials возвращается при неверном телефоне или пароле.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByPhone возвращает пользователя по телефону или ошибку, если не найден.
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
}

// AuthService отвечает за регистрацию пользователей и выдачу JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и нулевым балансом.
func (s *AuthService) Register(ctx context.Context, phone, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Phone:        phone,
		PasswordHash: hashed,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, phone, rawPassword string) (string, error) {
	user, err := s.users.GetUserByPhone(ctx, phone)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.jwtMaker.GenerateToken(user.UID, user.Phone)
}
