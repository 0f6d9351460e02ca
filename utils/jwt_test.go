package utils

import (
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateToken(42, "student1@nie.ac.in", "student")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != 42 || claims.Email != "student1@nie.ac.in" || claims.Role != "student" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	SetJWTSecret("secret-a")
	token, err := GenerateToken(1, "user@nie.ac.in", "student")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	SetJWTSecret("secret-b")
	if _, err := ValidateToken(token); err == nil {
		t.Fatal("expected validation to fail with a different key")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Fatal("expected validation to fail for garbage input")
	}
}
