package util

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"

	token, err := GenerateJWT(42, RoleTeacher, "teacher@example.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ParseJWT(token, secret)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != RoleTeacher {
		t.Errorf("Role = %q, want %q", claims.Role, RoleTeacher)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(1, RoleAdmin, "admin@example.com", "0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, "another-secret-another-secret-00"); err == nil {
		t.Error("ParseJWT accepted a token signed with a different secret")
	}
}

func TestParseJWTExpired(t *testing.T) {
	secret := "0123456789abcdef0123456789abcdef"
	token, err := GenerateJWT(1, RoleTeacher, "t@example.com", secret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ParseJWT(token, secret); err == nil {
		t.Error("ParseJWT accepted an expired token")
	}
}
