package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, []string{"ADMIN"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "ADMIN" {
		t.Errorf("Roles = %v, want [ADMIN]", claims.Roles)
	}
	if ttl := RemainingTTL(claims); ttl <= 0 || ttl > JWTExpirationTime {
		t.Errorf("RemainingTTL = %v, want within (0, %v]", ttl, JWTExpirationTime)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	expired := &UserClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			Issuer:    jwtIssuer,
		},
	}
	expiredToken, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString(jwtSecret)

	foreign := &UserClaims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{Issuer: jwtIssuer}}
	foreignToken, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, foreign).SignedString([]byte("other-secret"))

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"expired", expiredToken},
		{"wrong secret", foreignToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateToken(tt.token); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestExtractSignature(t *testing.T) {
	token, _ := GenerateToken(7, nil)
	sig, err := ExtractSignature(token)
	if err != nil {
		t.Fatalf("ExtractSignature: %v", err)
	}
	if !strings.HasSuffix(token, "."+sig) {
		t.Errorf("signature %q is not the last segment of %q", sig, token)
	}
	if _, err = ExtractSignature("a.b"); err == nil {
		t.Error("expected error for two-segment token")
	}
}
