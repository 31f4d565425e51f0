package util

import (
	"testing"
	"time"
)

const testSecret = "unit-test-secret"

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(42, "ada@example.com", TokenAccess, testSecret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, testSecret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Email != "ada@example.com" {
		t.Errorf("Email = %q", claims.Email)
	}
	if claims.TokenType != TokenAccess {
		t.Errorf("TokenType = %q, want %q", claims.TokenType, TokenAccess)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(1, "a@b.c", TokenAccess, testSecret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "some-other-secret"); err == nil {
		t.Error("token accepted with the wrong secret")
	}
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(1, "a@b.c", TokenAccess, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, testSecret); err == nil {
		t.Error("expired token accepted")
	}
}

func TestParseJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("not-a-token", testSecret); err == nil {
		t.Error("garbage accepted")
	}
}

func TestTokenTypesAreDistinct(t *testing.T) {
	access, _ := GenerateJWT(1, "a@b.c", TokenAccess, testSecret, time.Minute)
	refresh, _ := GenerateJWT(1, "a@b.c", TokenRefresh, testSecret, time.Minute)

	ac, err := ParseJWT(access, testSecret)
	if err != nil {
		t.Fatalf("ParseJWT(access): %v", err)
	}
	rc, err := ParseJWT(refresh, testSecret)
	if err != nil {
		t.Fatalf("ParseJWT(refresh): %v", err)
	}
	if ac.TokenType == rc.TokenType {
		t.Error("access and refresh tokens carry the same type claim")
	}
}
