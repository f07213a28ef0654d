package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/xylem-api/internal/domain/entity"
	"github.com/sangkips/xylem-api/internal/testutil"
	"github.com/sangkips/xylem-api/pkg/apperror"
	"github.com/sangkips/xylem-api/pkg/utils"
)

func newAuth(t *testing.T) (*AuthService, *entity.User, *utils.JWTManager) {
	t.Helper()
	store := testutil.NewStore()
	hash, err := utils.HashPassword("s3cret-pass")
	require.NoError(t, err)
	user := &entity.User{Username: "admin", Email: "admin@xylem.io", Password: hash, IsAdmin: true}
	require.NoError(t, store.Users().Create(context.Background(), user))
	jwt := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	return NewAuthService(store.Users(), jwt), user, jwt
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, user, jwt := newAuth(t)

	for _, login := range []string{"admin", "admin@xylem.io"} {
		out, err := svc.Login(ctx, &LoginInput{Username: login, Password: "s3cret-pass"})
		require.NoError(t, err, login)
		claims, err := jwt.ValidateAccessToken(out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.True(t, claims.IsAdmin)
	}

	_, err := svc.Login(ctx, &LoginInput{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
	_, err = svc.Login(ctx, &LoginInput{Username: "ghost", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc, user, _ := newAuth(t)

	out, err := svc.Login(ctx, &LoginInput{Username: "admin", Password: "s3cret-pass"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, out.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, refreshed.User.ID)

	_, err = svc.RefreshToken(ctx, out.AccessToken)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, user, _ := newAuth(t)

	err := svc.ChangePassword(ctx, user.ID, &ChangePasswordInput{CurrentPassword: "nope", NewPassword: "another-pass"})
	assert.True(t, apperror.IsInvalidArgument(err))

	err = svc.ChangePassword(ctx, user.ID, &ChangePasswordInput{CurrentPassword: "s3cret-pass", NewPassword: "short"})
	assert.True(t, apperror.IsInvalidArgument(err))

	require.NoError(t, svc.ChangePassword(ctx, user.ID, &ChangePasswordInput{CurrentPassword: "s3cret-pass", NewPassword: "another-pass"}))
	_, err = svc.Login(ctx, &LoginInput{Username: "admin", Password: "another-pass"})
	assert.NoError(t, err)
}
