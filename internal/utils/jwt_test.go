package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenClaims(t *testing.T) {
	access, err := NewAccessToken("secret", 42, "a@b.com", 15)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if access.Exp.Before(time.Now().UTC()) {
		t.Fatal("expiry must be in the future")
	}

	tok, err := jwt.Parse(access.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse: %v", err)
	}
	claims := tok.Claims.(jwt.MapClaims)
	if claims["sub"].(float64) != 42 {
		t.Fatalf("unexpected sub: %v", claims["sub"])
	}
	if claims["email"] != "a@b.com" {
		t.Fatalf("unexpected email: %v", claims["email"])
	}
}

func TestRefreshTokenHashing(t *testing.T) {
	r1, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	r2, err := NewRefreshToken(7)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if r1.Raw == r2.Raw {
		t.Fatal("refresh tokens must be unique")
	}
	if len(r1.Raw) != 96 { // 48 random bytes, hex encoded
		t.Fatalf("unexpected raw length %d", len(r1.Raw))
	}
	if HashRefreshRaw(r1.Raw) != HashRefreshRaw(r1.Raw) {
		t.Fatal("hash must be deterministic")
	}
	if len(HashRefreshRaw(r1.Raw)) != 64 { // sha256 hex
		t.Fatal("unexpected hash length")
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("test1234", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(hash, "test1234") {
		t.Fatal("correct password must verify")
	}
	if VerifyPassword(hash, "wrong-pass") {
		t.Fatal("wrong password must not verify")
	}
}
