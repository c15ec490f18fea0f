package jwt

import "testing"

const testSecret = "test-secret"

func TestGenerateTokenPairRoundTrip(t *testing.T) {
	access, refresh, err := GenerateTokenPair("ada@example.com", testSecret, false, 42, "customer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatal("expected both tokens to be generated")
	}

	claims, err := ValidateAndGetClaims(access, testSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims["email"] != "ada@example.com" {
		t.Fatalf("email claim = %v", claims["email"])
	}
	if claims["role"] != "customer" {
		t.Fatalf("role claim = %v", claims["role"])
	}
	if id, ok := claims["id"].(float64); !ok || uint(id) != 42 {
		t.Fatalf("id claim = %v", claims["id"])
	}
	if isAdmin, ok := claims["is_admin"].(bool); !ok || isAdmin {
		t.Fatalf("is_admin claim = %v", claims["is_admin"])
	}
}

func TestValidateWithWrongSecret(t *testing.T) {
	access, _, err := GenerateTokenPair("ada@example.com", testSecret, false, 42, "customer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ValidateAndGetClaims(access, "other-secret"); err == nil {
		t.Fatal("expected validation to fail with wrong secret")
	}
}

func TestPasswordResetTokenRoundTrip(t *testing.T) {
	token, err := GeneratePasswordResetToken(7, testSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id, err := ValidatePasswordResetToken(token, testSecret)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 7 {
		t.Fatalf("id = %d, want 7", id)
	}
}

func TestAccessTokenIsNotResetToken(t *testing.T) {
	access, _, err := GenerateTokenPair("ada@example.com", testSecret, false, 42, "customer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ValidatePasswordResetToken(access, testSecret); err == nil {
		t.Fatal("an access token must not pass reset-token validation")
	}
}
