package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionDuration is how long issued tokens (and their session rows) live.
const SessionDuration = 7 * 24 * time.Hour

func GenerateJWT(userID uint, secret string) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(SessionDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
