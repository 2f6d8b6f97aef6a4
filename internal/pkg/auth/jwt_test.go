package auth_test

import (
	"strings"
	"testing"

	"github.com/your-org/inventory-backend/internal/pkg/auth"
	"github.com/your-org/inventory-backend/internal/testutil"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	mgr := auth.NewJWTManager(testutil.TestConfig())

	token, err := mgr.GenerateAccessToken(42, "admin@example.com", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := mgr.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("expected user ID 42, got %d", claims.UserID)
	}
	if claims.Email != "admin@example.com" {
		t.Errorf("unexpected email: %q", claims.Email)
	}
	if !claims.IsAdmin {
		t.Error("expected admin claim")
	}
	if claims.TokenType != "access" {
		t.Errorf("unexpected token type: %q", claims.TokenType)
	}
}

func TestRefreshTokenNeverCarriesAdmin(t *testing.T) {
	mgr := auth.NewJWTManager(testutil.TestConfig())

	token, err := mgr.GenerateRefreshToken(42, "admin@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	claims, err := mgr.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if claims.IsAdmin {
		t.Error("refresh tokens must not carry admin status")
	}
}

func TestTokenTypeMismatch(t *testing.T) {
	mgr := auth.NewJWTManager(testutil.TestConfig())

	access, err := mgr.GenerateAccessToken(1, "user@example.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}
	refresh, err := mgr.GenerateRefreshToken(1, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, err := mgr.ValidateRefreshToken(access); err == nil {
		t.Error("access token accepted as refresh token")
	}
	if _, err := mgr.ValidateAccessToken(refresh); err == nil {
		t.Error("refresh token accepted as access token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	mgr := auth.NewJWTManager(testutil.TestConfig())

	other := testutil.TestConfig()
	other.JWT.Secret = "a-completely-different-secret"
	otherMgr := auth.NewJWTManager(other)

	token, err := otherMgr.GenerateAccessToken(1, "user@example.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := mgr.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret accepted")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	mgr := auth.NewJWTManager(testutil.TestConfig())

	if _, err := mgr.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"missing prefix", "abc.def.ghi", ""},
		{"empty header", "", ""},
		{"prefix only", "Bearer ", ""},
		{"wrong scheme", "Basic abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := auth.ExtractTokenFromHeader(tt.header); got != tt.want {
				t.Errorf("ExtractTokenFromHeader(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestPasswordHashAndVerify(t *testing.T) {
	mgr := auth.NewPasswordManager(testutil.TestConfig())

	hash, err := mgr.HashPassword("correct-horse-1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct-horse-1" {
		t.Fatal("password stored in plain text")
	}

	if err := mgr.VerifyPassword("correct-horse-1", hash); err != nil {
		t.Errorf("VerifyPassword rejected the correct password: %v", err)
	}
	if err := mgr.VerifyPassword("wrong-horse-2", hash); err == nil {
		t.Error("VerifyPassword accepted the wrong password")
	}
}

func TestValidatePassword(t *testing.T) {
	mgr := auth.NewPasswordManager(testutil.TestConfig())

	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "password1", ""},
		{"too short", "abc1", "at least 8 characters"},
		{"too long", strings.Repeat("a1", 65), "no more than 128 characters"},
		{"no number", "passwordonly", "at least one number"},
		{"no letter", "12345678", "at least one letter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mgr.ValidatePassword(tt.password)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
