package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateJWTRoundTrip(t *testing.T) {
	secret := "test-secret"

	tokenString, err := GenerateJWT(42, secret)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token did not validate: %v", err)
	}

	claims := token.Claims.(jwt.MapClaims)
	if id := claims["userId"].(float64); uint(id) != 42 {
		t.Errorf("expected userId 42, got %v", id)
	}

	exp := int64(claims["exp"].(float64))
	want := time.Now().Add(SessionDuration).Unix()
	if exp < want-60 || exp > want+60 {
		t.Errorf("exp %d not within a minute of %d", exp, want)
	}
}

func TestGenerateJWTRejectsWrongSecret(t *testing.T) {
	tokenString, err := GenerateJWT(1, "right-secret")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	_, err = jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	if err == nil {
		t.Fatal("expected validation failure with wrong secret")
	}
}
