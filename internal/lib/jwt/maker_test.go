package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name  string
		phone string
	}{
		{
			name:  "обычный телефон",
			phone: "992900000001",
		},
		{
			name:  "телефон с плюсом",
			phone: "+992900000002",
		},
		{
			name:  "короткий номер",
			phone: "900001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userUID := uuid.New().String()
			token, err := maker.GenerateToken(userUID, tt.phone)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, userUID, claims.UserUID)
			assert.Equal(t, tt.phone, claims.Phone)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", 15*time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "пустой токен",
			token: "",
		},
		{
			name:  "мусорная строка",
			token: "not.a.jwt",
		},
		{
			name: "токен с чужой подписью",
			token: func() string {
				other := NewJWTMaker("another_secret_key", 15*time.Minute)
				token, err := other.GenerateToken(uuid.New().String(), "992900000001")
				require.NoError(t, err)
				return token
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_ExpiredToken(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", -time.Minute)

	token, err := maker.GenerateToken(uuid.New().String(), "992900000001")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}
