package jwt

import (
	"testing"
	"time"

	"provider-directory/config"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "s3cret", AccessExpiry: time.Hour})

	token, tokenID, err := svc.GenerateAccessToken("ops@clinic")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "ops@clinic" {
		t.Fatalf("expected subject ops@clinic, got %q", claims.Subject)
	}
	if claims.TokenID != tokenID {
		t.Fatalf("expected token id %q, got %q", tokenID, claims.TokenID)
	}
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	issuer := NewJWTService(config.JWTConfig{Secret: "one", AccessExpiry: time.Hour})
	verifier := NewJWTService(config.JWTConfig{Secret: "two", AccessExpiry: time.Hour})

	token, _, err := issuer.GenerateAccessToken("x")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestGenerateWithoutSecret(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{AccessExpiry: time.Hour})
	if _, _, err := svc.GenerateAccessToken("x"); err == nil {
		t.Fatalf("expected error without secret")
	}
}
