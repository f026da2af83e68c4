package services

import (
	"context"
	"testing"
	"time"
	"voidwebsite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_LoginAndParse(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(&fakeUsers{users: map[string]models.AdminUser{}})
	admin, created, err := users.EnsureAdmin(ctx, "Admin@VoidEsports.gg", "Admin", "admin123")
	require.NoError(t, err)
	require.True(t, created)
	assert.Equal(t, models.SuperAdmin, admin.Role)

	_, created, err = users.EnsureAdmin(ctx, "admin@voidesports.gg", "Admin", "other-password")
	require.NoError(t, err)
	assert.False(t, created)

	auth := NewAuthService(users, "test-secret")

	_, err = auth.Login(ctx, "admin@voidesports.gg", "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = auth.Login(ctx, "nobody@voidesports.gg", "admin123")
	assert.ErrorIs(t, err, ErrUnauthorized)

	result, err := auth.Login(ctx, " admin@voidesports.gg ", "admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	claims, err := auth.ParseToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.Subject)
	assert.Equal(t, models.SuperAdmin, claims.Role)

	other := NewAuthService(users, "another-secret")
	_, err = other.ParseToken(result.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	users := NewUserService(&fakeUsers{users: map[string]models.AdminUser{}})
	_, _, err := users.EnsureAdmin(ctx, "admin@voidesports.gg", "Admin", "admin123")
	require.NoError(t, err)

	issuer := &authService{users: users, secret: []byte("s"), now: func() time.Time {
		return time.Now().Add(-2 * tokenTTL)
	}}
	result, err := issuer.Login(ctx, "admin@voidesports.gg", "admin123")
	require.NoError(t, err)

	_, err = NewAuthService(users, "s").ParseToken(result.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUserService_ShortPassword(t *testing.T) {
	users := NewUserService(&fakeUsers{users: map[string]models.AdminUser{}})
	err := users.CreateAdmin(context.Background(), &models.AdminUser{Email: "a@b.c"}, "short")
	assert.ErrorIs(t, err, ErrValidation)
}
