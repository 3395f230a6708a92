package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("password stored in plain text")
	}
	if !CheckPasswordHash("s3cret-pass", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Error("wrong password accepted")
	}
}

func TestGenerateJWTCarriesIdentityClaims(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	signed, err := GenerateJWT(42, "a@b.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token did not verify: %v", err)
	}

	claims := token.Claims.(jwt.MapClaims)
	if claims["userId"].(float64) != 42 {
		t.Errorf("userId claim = %v", claims["userId"])
	}
	if claims["email"] != "a@b.com" {
		t.Errorf("email claim = %v", claims["email"])
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("missing exp claim")
	}
}

func TestGenerateRandomToken(t *testing.T) {
	a := GenerateRandomToken(16)
	b := GenerateRandomToken(16)
	if len(a) != 32 {
		t.Errorf("token length = %d hex chars, want 32", len(a))
	}
	if a == b {
		t.Error("two tokens should not collide")
	}
}
