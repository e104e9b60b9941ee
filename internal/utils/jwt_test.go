package utils

import (
	"testing"
)

func init() {
	SetJWTSecret("test-secret-for-jwt-testing")
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, "testuser", 24)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, expected 42", claims.UserID)
	}
	if claims.Username != "testuser" {
		t.Errorf("Username = %q, expected %q", claims.Username, "testuser")
	}
	if claims.TokenType != TokenTypeAccess {
		t.Errorf("TokenType = %q, expected %q", claims.TokenType, TokenTypeAccess)
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	token, err := GenerateRefreshToken(7, "refresher", 168)
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.TokenType != TokenTypeRefresh {
		t.Errorf("TokenType = %q, expected %q", claims.TokenType, TokenTypeRefresh)
	}
	if claims.UserID != 7 {
		t.Errorf("UserID = %d, expected 7", claims.UserID)
	}
}

func TestGenerateToken_DefaultExpiry(t *testing.T) {
	token, err := GenerateToken(1, "user", 0)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if claims.ExpiresAt == nil {
		t.Fatal("expected ExpiresAt to be set")
	}
	if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Error("expected expiry after issue time")
	}
}

func TestParseToken_Invalid(t *testing.T) {
	testCases := []string{
		"",
		"not-a-token",
		"header.payload.signature",
	}

	for _, tokenString := range testCases {
		if _, err := ParseToken(tokenString); err == nil {
			t.Errorf("token %q: expected error, got nil", tokenString)
		}
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(1, "user", 24)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	SetJWTSecret("a-different-secret")
	defer SetJWTSecret("test-secret-for-jwt-testing")

	if _, err := ParseToken(token); err == nil {
		t.Error("expected signature verification to fail")
	}
}
