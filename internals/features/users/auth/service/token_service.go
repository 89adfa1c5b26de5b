package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"ievents_backend/internals/configs"
	userModel "ievents_backend/internals/features/users/user/model"
)

const accessTTLDefault = 24 * time.Hour

// IssueAccessToken: HS256 dengan klaim id, role, email, exp.
func IssueAccessToken(u *userModel.UserModel, now time.Time) (string, time.Time, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", time.Time{}, errors.New("JWT_SECRET belum diset")
	}
	ttl := configs.JWTTTL
	if ttl <= 0 {
		ttl = accessTTLDefault
	}
	exp := now.Add(ttl)

	claims := jwt.MapClaims{
		"id":    u.ID.String(),
		"role":  u.Role,
		"email": u.Email,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
