package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// memoryKV is an in-memory stand-in for the redis cache. Expirations are
// ignored; TTL behavior belongs to redis, not the registry.
type memoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryKV() *memoryKV {
	return &memoryKV{data: make(map[string]string)}
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", ErrSessionNotFound
	}
	return val, nil
}

func (m *memoryKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value.(string)
	return nil
}

func (m *memoryKV) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func TestSessionRegistryPutAndGet(t *testing.T) {
	ctx := context.Background()
	registry := NewSessionRegistry(newMemoryKV())

	if err := registry.Put(ctx, 1, "slot-a", "token-1", time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := registry.Get(ctx, 1, "slot-a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "token-1" {
		t.Errorf("expected token-1, got %q", got)
	}

	// Each (user, slot) pair is independent
	if _, err := registry.Get(ctx, 1, "slot-b"); err == nil {
		t.Error("expected missing slot to error")
	}
	if _, err := registry.Get(ctx, 2, "slot-a"); err == nil {
		t.Error("expected other user's slot to error")
	}
}

func TestSessionRegistryPutOverwrites(t *testing.T) {
	ctx := context.Background()
	registry := NewSessionRegistry(newMemoryKV())

	if err := registry.Put(ctx, 1, "slot-a", "token-1", time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := registry.Put(ctx, 1, "slot-a", "token-2", time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := registry.Get(ctx, 1, "slot-a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "token-2" {
		t.Errorf("rotation did not overwrite the slot, got %q", got)
	}
}

func TestSessionRegistryRevoke(t *testing.T) {
	ctx := context.Background()
	registry := NewSessionRegistry(newMemoryKV())

	if err := registry.Put(ctx, 1, "slot-a", "token-1", time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := registry.Revoke(ctx, 1, "slot-a"); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if _, err := registry.Get(ctx, 1, "slot-a"); err == nil {
		t.Error("revoked slot still readable")
	}

	// Revoking an absent slot is a no-op
	if err := registry.Revoke(ctx, 1, "slot-gone"); err != nil {
		t.Errorf("revoking absent slot errored: %v", err)
	}
}

func TestSessionRegistryRevokeAll(t *testing.T) {
	ctx := context.Background()
	registry := NewSessionRegistry(newMemoryKV())

	for _, slot := range []string{"phone", "laptop", "tablet"} {
		if err := registry.Put(ctx, 1, slot, "token-"+slot, time.Hour); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	if err := registry.Put(ctx, 2, "phone", "other-user", time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if err := registry.RevokeAll(ctx, 1); err != nil {
		t.Fatalf("RevokeAll failed: %v", err)
	}

	for _, slot := range []string{"phone", "laptop", "tablet"} {
		if _, err := registry.Get(ctx, 1, slot); err == nil {
			t.Errorf("slot %s survived RevokeAll", slot)
		}
	}

	// Other users are untouched
	if _, err := registry.Get(ctx, 2, "phone"); err != nil {
		t.Errorf("RevokeAll deleted another user's session: %v", err)
	}
}

func TestSessionRegistryRevokeAllEmpty(t *testing.T) {
	ctx := context.Background()
	registry := NewSessionRegistry(newMemoryKV())

	if err := registry.RevokeAll(ctx, 99); err != nil {
		t.Errorf("RevokeAll on user with no sessions errored: %v", err)
	}
}
