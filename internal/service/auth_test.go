package service

import (
	"context"
	"testing"

	"stockdash/internal/config"
	"stockdash/internal/dto"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*AuthService, *stubUserRepo) {
	t.Helper()
	users := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return NewAuthService(users, cfg, zerolog.Nop()), users
}

func TestLoginAndRefresh(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "admin",
		Name:     "Administrator",
		Password: "correct horse",
		Role:     "admin",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "admin", resp.User.Role)

	refreshed, err := svc.Refresh(ctx, dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "admin", Name: "Administrator", Password: "correct horse", Role: "admin",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Unknown user produces the same error as a bad password.
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefreshRejectsGarbageToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	_, err := svc.Refresh(context.Background(), dto.RefreshRequest{RefreshToken: "not-a-jwt"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDeactivatedUserCannotLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "staff", Name: "Staff", Password: "some password", Role: "staff",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateUser(ctx, user.ID))
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "staff", Password: "some password"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "admin", Name: "A", Password: "password123", Role: "admin",
	})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "admin", Name: "B", Password: "password456", Role: "staff",
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestUpdateUserChangesPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		Username: "admin", Name: "A", Password: "old password", Role: "admin",
	})
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, user.ID, dto.UpdateUserRequest{Password: "new password"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "old password"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "new password"})
	assert.NoError(t, err)
}
