package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ievents_backend/internals/configs"
	"ievents_backend/internals/databases/dbtest"
	"ievents_backend/internals/features/users/auth/dto"
	helper "ievents_backend/internals/helpers"
)

func TestRegisterAndLogin(t *testing.T) {
	configs.JWTSecret = "unit-secret"
	configs.JWTTTL = time.Hour
	db := dbtest.Open(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	u, err := svc.Register(ctx, dto.RegisterRequest{FullName: "Ana", Email: "ana@school.test", Password: "password1", Role: "student"})
	require.NoError(t, err)
	assert.NotEqual(t, "password1", u.Password)

	_, err = svc.Register(ctx, dto.RegisterRequest{FullName: "Ana 2", Email: "ana@school.test", Password: "password1", Role: "student"})
	assert.True(t, helper.IsKind(err, helper.KindConflict))

	_, err = svc.Register(ctx, dto.RegisterRequest{FullName: "X", Email: "x@school.test", Password: "password1", Role: "admin"})
	assert.True(t, helper.IsKind(err, helper.KindInvalidInput))

	_, _, err = svc.Login(ctx, dto.LoginRequest{Email: "ana@school.test", Password: "nope"})
	assert.True(t, helper.IsKind(err, helper.KindInvalidInput))

	resp, got, err := svc.Login(ctx, dto.LoginRequest{Email: "ana@school.test", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Bearer", resp.TokenType)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(resp.AccessToken, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("unit-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID.String(), claims["id"])
	assert.Equal(t, "student", claims["role"])

	require.NoError(t, db.Model(got).Update("is_active", false).Error)
	_, _, err = svc.Login(ctx, dto.LoginRequest{Email: "ana@school.test", Password: "password1"})
	assert.True(t, helper.IsKind(err, helper.KindForbidden))
}

func TestChangePassword(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	u, err := svc.Register(ctx, dto.RegisterRequest{FullName: "Tono", Email: "tono@school.test", Password: "old-password", Role: "teacher"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "new-password"})
	assert.True(t, helper.IsKind(err, helper.KindInvalidInput))

	require.NoError(t, svc.ChangePassword(ctx, u.ID, dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"}))
	me, err := svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, CheckPassword(me.Password, "new-password"))
}

func TestRegister_OnlyFirstMethodistSignsUpThemself(t *testing.T) {
	db := dbtest.Open(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	first, err := svc.Register(ctx, dto.RegisterRequest{FullName: "Mila", Email: "mila@school.test", Password: "password1", Role: "methodist"})
	require.NoError(t, err)
	assert.Equal(t, "methodist", first.Role)

	_, err = svc.Register(ctx, dto.RegisterRequest{FullName: "Eve", Email: "eve@school.test", Password: "password1", Role: "methodist"})
	require.Error(t, err)
	assert.True(t, helper.IsKind(err, helper.KindForbidden))

	var n int64
	require.NoError(t, db.Table("users").Where("email = ?", "eve@school.test").Count(&n).Error)
	assert.Zero(t, n)

	// teacher dan student tetap bebas daftar
	_, err = svc.Register(ctx, dto.RegisterRequest{FullName: "Tono", Email: "tono@school.test", Password: "password1", Role: "teacher"})
	assert.NoError(t, err)
}
