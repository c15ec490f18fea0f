package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	AccessTokenValidity  = time.Hour * 24
	RefreshTokenValidity = time.Hour * 24 * 7
	ResetTokenValidity   = time.Minute * 30
)

var ErrInvalidToken = errors.New("invalid token")

// GenerateTokenPair returns an access and a refresh token carrying the
// user's identity claims.
func GenerateTokenPair(email string, secret string, isAdmin bool, id uint, role string) (string, string, error) {
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       id,
		"email":    email,
		"role":     role,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(AccessTokenValidity).Unix(),
	})
	accessTokenString, err := accessToken.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  id,
		"sub": email,
		"exp": time.Now().Add(RefreshTokenValidity).Unix(),
	})
	refreshTokenString, err := refreshToken.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}

	return accessTokenString, refreshTokenString, nil
}

// ValidateAndGetClaims checks the token signature and expiry and returns
// its claims.
func ValidateAndGetClaims(tokenString string, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func GeneratePasswordResetToken(id uint, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    id,
		"reset": true,
		"exp":   time.Now().Add(ResetTokenValidity).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ValidatePasswordResetToken returns the user id embedded in a reset token.
func ValidatePasswordResetToken(tokenString string, secret string) (uint, error) {
	claims, err := ValidateAndGetClaims(tokenString, secret)
	if err != nil {
		return 0, err
	}
	if isReset, ok := claims["reset"].(bool); !ok || !isReset {
		return 0, ErrInvalidToken
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
