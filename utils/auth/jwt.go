package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// TokenKind selects which secret and expiry a token is signed and verified with.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenConfig holds JWT configuration. Access and refresh tokens use independent
// secrets so a leaked refresh secret cannot mint access tokens and either can be
// rotated on its own.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

// Claims represents JWT claims
type Claims struct {
	UserID    uint      `json:"user_id"`
	Role      string    `json:"role,omitempty"`
	TokenType TokenKind `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenManager handles JWT token operations
type TokenManager struct {
	config TokenConfig
}

// NewTokenManager creates a new token manager
func NewTokenManager(config TokenConfig) *TokenManager {
	return &TokenManager{
		config: config,
	}
}

// IssueAccessToken signs a short-lived token carrying the user's id and role
func (t *TokenManager) IssueAccessToken(userID uint, role string) (string, error) {
	return t.sign(Claims{UserID: userID, Role: role, TokenType: TokenKindAccess},
		t.config.AccessSecret, t.config.AccessExpiry)
}

// IssueRefreshToken signs a long-lived token carrying only the user's id
func (t *TokenManager) IssueRefreshToken(userID uint) (string, error) {
	return t.sign(Claims{UserID: userID, TokenType: TokenKindRefresh},
		t.config.RefreshSecret, t.config.RefreshExpiry)
}

func (t *TokenManager) sign(claims Claims, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		// The jti makes every token unique even when two are minted for the
		// same user within the same second; rotation depends on that.
		ID:        uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    t.config.Issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Verify validates a token of the given kind and returns its claims
func (t *TokenManager) Verify(tokenString string, kind TokenKind) (*Claims, error) {
	secret := t.config.AccessSecret
	if kind == TokenKindRefresh {
		secret = t.config.RefreshSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.TokenType != kind {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
