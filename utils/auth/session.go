package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrSessionNotFound means no refresh token is stored for the (user, tokenID) slot.
var ErrSessionNotFound = errors.New("refresh session not found")

// KV is the slice of the redis cache the registry needs. Injected so tests can
// run against an in-memory map.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
}

// SessionRegistry tracks the currently valid refresh token per (user, tokenID)
// device slot. The stored entry is the sole authority on whether a presented
// refresh token is still live: absence always means invalid.
type SessionRegistry struct {
	kv KV
}

// NewSessionRegistry creates a registry backed by the given key-value store
func NewSessionRegistry(kv KV) *SessionRegistry {
	return &SessionRegistry{kv: kv}
}

func sessionKey(userID uint, tokenID string) string {
	return fmt.Sprintf("refresh:%d:%s", userID, tokenID)
}

// Put stores or overwrites the refresh token for one device slot
func (s *SessionRegistry) Put(ctx context.Context, userID uint, tokenID, refreshToken string, ttl time.Duration) error {
	return s.kv.Set(ctx, sessionKey(userID, tokenID), refreshToken, ttl)
}

// Get returns the stored refresh token, or ErrSessionNotFound
func (s *SessionRegistry) Get(ctx context.Context, userID uint, tokenID string) (string, error) {
	return s.kv.Get(ctx, sessionKey(userID, tokenID))
}

// Revoke deletes one device slot. Revoking an absent slot is not an error.
func (s *SessionRegistry) Revoke(ctx context.Context, userID uint, tokenID string) error {
	return s.kv.Delete(ctx, sessionKey(userID, tokenID))
}

// RevokeAll deletes every session for the user. Used when refresh token reuse is
// detected and on password change. A session created concurrently with the scan
// survives; it was issued after the compromise window this targets.
func (s *SessionRegistry) RevokeAll(ctx context.Context, userID uint) error {
	keys, err := s.kv.Keys(ctx, fmt.Sprintf("refresh:%d:*", userID))
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.kv.Delete(ctx, keys...)
}
