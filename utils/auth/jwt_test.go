package auth

import (
	"errors"
	"testing"
	"time"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager(TokenConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
		Issuer:        "test-issuer",
	})
}

func TestIssueAndVerifyAccessToken(t *testing.T) {
	tm := newTestTokenManager()

	token, err := tm.IssueAccessToken(42, "admin")
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	claims, err := tm.Verify(token, TokenKindAccess)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("expected role admin, got %q", claims.Role)
	}
	if claims.TokenType != TokenKindAccess {
		t.Errorf("expected token type access, got %q", claims.TokenType)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("expected issuer test-issuer, got %q", claims.Issuer)
	}
}

func TestIssueAndVerifyRefreshToken(t *testing.T) {
	tm := newTestTokenManager()

	token, err := tm.IssueRefreshToken(7)
	if err != nil {
		t.Fatalf("IssueRefreshToken failed: %v", err)
	}

	claims, err := tm.Verify(token, TokenKindRefresh)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}

	if claims.UserID != 7 {
		t.Errorf("expected user id 7, got %d", claims.UserID)
	}
	if claims.Role != "" {
		t.Errorf("refresh token should not carry a role, got %q", claims.Role)
	}
}

func TestVerifyRejectsWrongKind(t *testing.T) {
	tm := newTestTokenManager()

	accessToken, err := tm.IssueAccessToken(1, "student")
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}
	refreshToken, err := tm.IssueRefreshToken(1)
	if err != nil {
		t.Fatalf("IssueRefreshToken failed: %v", err)
	}

	// An access token must never pass as a refresh token and vice versa.
	// The secrets differ, so the signature check alone rejects the swap.
	if _, err := tm.Verify(accessToken, TokenKindRefresh); err == nil {
		t.Error("access token verified as refresh token")
	}
	if _, err := tm.Verify(refreshToken, TokenKindAccess); err == nil {
		t.Error("refresh token verified as access token")
	}
}

func TestVerifyRejectsWrongKindSameSecret(t *testing.T) {
	// Even with identical secrets the token_type claim must gate the kind
	tm := NewTokenManager(TokenConfig{
		AccessSecret:  "shared-secret",
		RefreshSecret: "shared-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "test-issuer",
	})

	accessToken, err := tm.IssueAccessToken(1, "student")
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	if _, err := tm.Verify(accessToken, TokenKindRefresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for kind mismatch, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager(TokenConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  -time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "test-issuer",
	})

	token, err := tm.IssueAccessToken(1, "admin")
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	if _, err := tm.Verify(token, TokenKindAccess); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	tm := newTestTokenManager()

	token, err := tm.IssueAccessToken(1, "admin")
	if err != nil {
		t.Fatalf("IssueAccessToken failed: %v", err)
	}

	tampered := token + "x"
	if _, err := tm.Verify(tampered, TokenKindAccess); err == nil {
		t.Error("tampered token passed verification")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := newTestTokenManager()

	if _, err := tm.Verify("not.a.jwt", TokenKindAccess); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
	if _, err := tm.Verify("", TokenKindAccess); err == nil {
		t.Error("empty token passed verification")
	}
}
