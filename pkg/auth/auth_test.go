package auth

import (
	"testing"
	"time"

	"maison/pkg/model"
)

func testResident() *model.Resident {
	return &model.Resident{
		ID:        "res-001",
		Name:      "Maria Silva",
		Role:      "RESIDENT",
		Apartment: "12B",
	}
}

func TestCreateAndParseSessionToken(t *testing.T) {
	signer := NewSigner("test-secret", time.Hour)

	tokenString, expiresAt, err := signer.CreateSessionToken(testResident())
	if err != nil {
		t.Fatalf("CreateSessionToken() error = %v", err)
	}
	if tokenString == "" {
		t.Fatal("CreateSessionToken() returned empty token")
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("CreateSessionToken() expiry %v is in the past", expiresAt)
	}

	claims, err := signer.ParseSessionToken(tokenString)
	if err != nil {
		t.Fatalf("ParseSessionToken() error = %v", err)
	}

	if claims.Subject != "res-001" {
		t.Errorf("claims.Subject = %q, want %q", claims.Subject, "res-001")
	}
	if claims.Name != "Maria Silva" {
		t.Errorf("claims.Name = %q, want %q", claims.Name, "Maria Silva")
	}
	if claims.Role != "RESIDENT" {
		t.Errorf("claims.Role = %q, want %q", claims.Role, "RESIDENT")
	}
	if claims.Apartment != "12B" {
		t.Errorf("claims.Apartment = %q, want %q", claims.Apartment, "12B")
	}
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	signer := NewSigner("real-secret", time.Hour)
	other := NewSigner("other-secret", time.Hour)

	tokenString, _, err := signer.CreateSessionToken(testResident())
	if err != nil {
		t.Fatalf("CreateSessionToken() error = %v", err)
	}

	if _, err := other.ParseSessionToken(tokenString); err == nil {
		t.Error("ParseSessionToken() with wrong secret should fail")
	}
}

func TestParseSessionTokenExpired(t *testing.T) {
	signer := NewSigner("test-secret", -2*time.Minute)

	tokenString, _, err := signer.CreateSessionToken(testResident())
	if err != nil {
		t.Fatalf("CreateSessionToken() error = %v", err)
	}

	if _, err := signer.ParseSessionToken(tokenString); err == nil {
		t.Error("ParseSessionToken() with expired token should fail")
	}
}

func TestParseSessionTokenGarbage(t *testing.T) {
	signer := NewSigner("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "whitespace", token: "   "},
		{name: "not a jwt", token: "nonsense"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := signer.ParseSessionToken(tt.token); err == nil {
				t.Errorf("ParseSessionToken(%q) should fail", tt.token)
			}
		})
	}
}
