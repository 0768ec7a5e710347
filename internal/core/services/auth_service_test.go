package services

import (
	"context"
	"testing"

	"campus-keyledger/internal/adapters/persistence/repositories"
	"campus-keyledger/internal/config"
	"campus-keyledger/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
	return NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		cfg,
	)
}

func TestAuthService_Register(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthService(db)
	ctx := context.Background()

	t.Run("rejects short passwords", func(t *testing.T) {
		_, err := service.Register(ctx, &RegisterInput{Username: "alice", Password: "short"})
		assert.ErrorIs(t, err, domain.ErrInvalidPassword)
	})

	t.Run("creates a user", func(t *testing.T) {
		user, err := service.Register(ctx, &RegisterInput{Username: "alice", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.NotEqual(t, "correct-horse", user.Password)
	})

	t.Run("rejects taken usernames", func(t *testing.T) {
		_, err := service.Register(ctx, &RegisterInput{Username: "alice", Password: "another-pass"})
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthService(db)
	ctx := context.Background()

	_, err := service.Register(ctx, &RegisterInput{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	t.Run("valid credentials yield a token pair", func(t *testing.T) {
		resp, err := service.Login(ctx, &LoginInput{Username: "alice", Password: "correct-horse"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "alice", resp.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginInput{Username: "alice", Password: "wrong-horse"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := service.Login(ctx, &LoginInput{Username: "bob", Password: "correct-horse"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshRotation(t *testing.T) {
	db := setupTestDB(t)
	service := newAuthService(db)
	ctx := context.Background()

	_, err := service.Register(ctx, &RegisterInput{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)
	login, err := service.Login(ctx, &LoginInput{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	refreshed, err := service.Refresh(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.RefreshToken)

	t.Run("old token is revoked after rotation", func(t *testing.T) {
		_, err := service.Refresh(ctx, login.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.Refresh(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("logout revokes everything", func(t *testing.T) {
		require.NoError(t, service.Logout(ctx, refreshed.User.ID))
		_, err := service.Refresh(ctx, refreshed.RefreshToken)
		assert.ErrorIs(t, err, ErrTokenRevoked)
	})
}
