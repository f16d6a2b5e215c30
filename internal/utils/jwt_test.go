package utils

import (
	"testing"

	"coffeeshop-app/config"
)

func setupTestConfig() {
	config.AppConfig = &config.Config{
		Server: config.ServerConfig{
			JWTSecret:          "test-secret",
			JWTExpirationHours: 1,
		},
	}
}

func TestTokenRoundTrip(t *testing.T) {
	setupTestConfig()

	token, err := GenerateToken(42, "barista")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != "barista" {
		t.Errorf("expected role barista, got %q", claims.Role)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	setupTestConfig()

	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("expected an error for a malformed token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	setupTestConfig()
	token, err := GenerateToken(1, "admin")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	config.AppConfig.Server.JWTSecret = "different-secret"
	if _, err := ValidateToken(token); err == nil {
		t.Error("expected an error when the signing secret changed")
	}
}
