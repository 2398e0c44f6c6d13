package auth

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/student-management-api/model"
	"github.com/sahilchouksey/student-management-api/services"
	"github.com/sahilchouksey/student-management-api/utils/auth"
)

// memoryUserStore backs the handler tests without a database
type memoryUserStore struct {
	nextID uint
	byID   map[uint]*model.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{nextID: 1, byID: make(map[uint]*model.User)}
}

func (m *memoryUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range m.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, services.ErrUserNotFound
}

func (m *memoryUserStore) FindByID(ctx context.Context, id uint) (*model.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memoryUserStore) Create(ctx context.Context, user *model.User) error {
	for _, existing := range m.byID {
		if existing.Email == user.Email {
			return services.ErrDuplicateUser
		}
	}
	user.ID = m.nextID
	m.nextID++
	copied := *user
	m.byID[user.ID] = &copied
	return nil
}

func (m *memoryUserStore) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	user, ok := m.byID[id]
	if !ok {
		return services.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// memoryKV backs the session registry in handler tests
type memoryKV struct {
	data map[string]string
}

func (m *memoryKV) Get(ctx context.Context, key string) (string, error) {
	val, ok := m.data[key]
	if !ok {
		return "", auth.ErrSessionNotFound
	}
	return val, nil
}

func (m *memoryKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.data[key] = value.(string)
	return nil
}

func (m *memoryKV) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// newTestApp mounts the auth routes exactly as the router does: register and
// login take no auth middleware.
func newTestApp() *fiber.App {
	tokens := auth.NewTokenManager(auth.TokenConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "test",
	})
	registry := auth.NewSessionRegistry(&memoryKV{data: make(map[string]string)})
	svc := services.NewAuthService(newMemoryUserStore(), registry, tokens)
	handler := NewAuthHandler(svc)

	app := fiber.New()
	app.Post("/api/v1/auth/register", handler.Register)
	app.Post("/api/v1/auth/login", handler.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	// No timeout: bcrypt hashing at production cost can exceed the default 1s
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestRegisterWithoutAuthorizationHeader(t *testing.T) {
	app := newTestApp()

	// No Authorization header anywhere: registration must still reach the
	// workflow and create the account
	status := postJSON(t, app, "/api/v1/auth/register",
		`{"email":"new@example.com","password":"s3cret-password","role":"admin"}`)
	if status != 201 {
		t.Fatalf("expected 201 for unauthenticated register, got %d", status)
	}

	// Same email again is a conflict, not an auth failure
	status = postJSON(t, app, "/api/v1/auth/register",
		`{"email":"new@example.com","password":"s3cret-password","role":"admin"}`)
	if status != 409 {
		t.Fatalf("expected 409 for duplicate register, got %d", status)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	app := newTestApp()

	if status := postJSON(t, app, "/api/v1/auth/register",
		`{"email":"user@example.com","password":"s3cret-password","role":"student"}`); status != 201 {
		t.Fatalf("register returned %d", status)
	}

	if status := postJSON(t, app, "/api/v1/auth/login",
		`{"email":"user@example.com","password":"s3cret-password"}`); status != 200 {
		t.Fatalf("login after register returned %d", status)
	}
}

func TestLoginEmptyPasswordReturns401(t *testing.T) {
	app := newTestApp()

	if status := postJSON(t, app, "/api/v1/auth/register",
		`{"email":"user@example.com","password":"s3cret-password","role":"admin"}`); status != 201 {
		t.Fatalf("register returned %d", status)
	}

	// An empty password must come back as invalid credentials, not as a
	// 400 from body validation
	status := postJSON(t, app, "/api/v1/auth/login",
		`{"email":"user@example.com","password":""}`)
	if status != 401 {
		t.Fatalf("expected 401 for empty password, got %d", status)
	}
}
