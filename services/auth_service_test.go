package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sahilchouksey/student-management-api/model"
	"github.com/sahilchouksey/student-management-api/utils/apperror"
	"github.com/sahilchouksey/student-management-api/utils/auth"
)

// fakeUserStore is an in-memory UserStore for exercising the auth workflow
// without a database.
type fakeUserStore struct {
	nextID uint
	byID   map[uint]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, byID: make(map[uint]*model.User)}
}

func (f *fakeUserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range f.byID {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeUserStore) FindByID(ctx context.Context, id uint) (*model.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	for _, existing := range f.byID {
		if existing.Email == user.Email {
			return ErrDuplicateUser
		}
	}
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.byID[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	user, ok := f.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// fakeKV backs the session registry in tests
type fakeKV struct {
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	val, ok := f.data[key]
	if !ok {
		return "", auth.ErrSessionNotFound
	}
	return val, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeKV) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeKV) Keys(ctx context.Context, pattern string) ([]string, error) {
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for key := range f.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeKV) {
	users := newFakeUserStore()
	kv := newFakeKV()
	tokens := auth.NewTokenManager(auth.TokenConfig{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
		Issuer:        "test",
	})
	return NewAuthService(users, auth.NewSessionRegistry(kv), tokens), users, kv
}

func registerTestUser(t *testing.T, svc *AuthService, email, password, role string) *model.User {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: password,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	return user
}

func expectStatus(t *testing.T, err error, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected status %d error, got nil", status)
	}
	if !apperror.IsStatus(err, status) {
		t.Fatalf("expected status %d, got %v", status, err)
	}
}

func TestRegister(t *testing.T) {
	svc, users, _ := newTestAuthService()

	user := registerTestUser(t, svc, "Admin@Example.com", "s3cret-password", model.RoleAdmin)

	if user.Email != "admin@example.com" {
		t.Errorf("email not lowercased: %q", user.Email)
	}
	if user.PasswordHash == "s3cret-password" {
		t.Error("password stored in plaintext")
	}
	if !user.IsActive {
		t.Error("new user should be active")
	}

	stored, err := users.FindByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if err := auth.VerifyPassword(stored.PasswordHash, "s3cret-password"); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	registerTestUser(t, svc, "dup@example.com", "s3cret-password", model.RoleAdmin)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "dup@example.com",
		Password: "another-password",
		Role:     model.RoleAdmin,
	})
	expectStatus(t, err, 409)
}

func TestRegisterInvalidRole(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "x@example.com",
		Password: "s3cret-password",
		Role:     "superuser",
	})
	expectStatus(t, err, 400)
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "x@example.com",
		Password: "short",
		Role:     model.RoleAdmin,
	})
	expectStatus(t, err, 400)
}

func TestRegisterRejectsMismatchedProfileLink(t *testing.T) {
	svc, _, _ := newTestAuthService()
	profileID := uint(5)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:        "s@example.com",
		Password:     "s3cret-password",
		Role:         model.RoleStudent,
		InstructorID: &profileID,
	})
	expectStatus(t, err, 400)

	_, err = svc.Register(context.Background(), RegisterInput{
		Email:     "a@example.com",
		Password:  "s3cret-password",
		Role:      model.RoleAdmin,
		StudentID: &profileID,
	})
	expectStatus(t, err, 400)
}

func TestLogin(t *testing.T) {
	svc, _, kv := newTestAuthService()
	registerTestUser(t, svc, "user@example.com", "s3cret-password", model.RoleAdmin)

	result, err := svc.Login(context.Background(), "USER@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("login returned empty tokens")
	}
	if result.AccessToken == result.RefreshToken {
		t.Error("access and refresh tokens are identical")
	}
	if result.TokenID == "" {
		t.Error("login returned no tokenId")
	}
	if result.Role != model.RoleAdmin {
		t.Errorf("expected role admin, got %q", result.Role)
	}

	// The refresh token must be registered under the slot
	if len(kv.data) != 1 {
		t.Fatalf("expected 1 stored session, got %d", len(kv.data))
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc, "user@example.com", "s3cret-password", model.RoleAdmin)

	_, err := svc.Login(context.Background(), "user@example.com", "wrong-password")
	expectStatus(t, err, 401)
}

func TestLoginEmptyPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc, "user@example.com", "s3cret-password", model.RoleAdmin)

	// An empty password is just another wrong password: 401, never a
	// validation error and never a bypass
	_, err := svc.Login(context.Background(), "user@example.com", "")
	expectStatus(t, err, 401)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _, _ := newTestAuthService()

	// Unknown email and wrong password must be indistinguishable
	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever-password")
	expectStatus(t, err, 401)
}

func TestLoginDeactivatedUser(t *testing.T) {
	svc, users, _ := newTestAuthService()
	user := registerTestUser(t, svc, "user@example.com", "s3cret-password", model.RoleAdmin)

	users.byID[user.ID].IsActive = false

	_, err := svc.Login(context.Background(), "user@example.com", "s3cret-password")
	expectStatus(t, err, 401)
}

func TestLoginOpensIndependentSlots(t *testing.T) {
	svc, _, kv := newTestAuthService()
	registerTestUser(t, svc, "user@example.com", "s3cret-password", model.RoleAdmin)

	first, err := svc.Login(context.Background(), "user@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("first login failed: %v", err)
	}
	second, err := svc.Login(context.Background(), "user@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	if first.TokenID == second.TokenID {
		t.Error("two logins shared a tokenId")
	}
	if len(kv.data) != 2 {
		t.Errorf("expected 2 stored sessions, got %d", len(kv.data))
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc, "user@example.com", "s3cret-password", model.RoleAdmin)

	login, err := svc.Login(context.Background(), "user@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), login.RefreshToken, login.TokenID)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("refresh returned empty tokens")
	}

	// The rotated token stays in the same slot and keeps working
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken, login.TokenID); err != nil {
		t.Errorf("rotated token did not refresh: %v", err)
	}
}

func TestRefreshMissingTokenID(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc, "user@example.com", "s3cret-password", model.RoleAdmin)

	login, err := svc.Login(context.Background(), "user@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	_, err = svc.Refresh(context.Background(), login.RefreshToken, "")
	expectStatus(t, err, 400)
}

func TestRefreshReuseDetection(t *testing.T) {
	svc, _, kv := newTestAuthService()
	registerTestUser(t, svc, "user@example.com", "s3cret-password", model.RoleAdmin)

	ctx := context.Background()
	login, err := svc.Login(ctx, "user@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// A second device holds its own session; reuse must kill it too
	other, err := svc.Login(ctx, "user@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	pair, err := svc.Refresh(ctx, login.RefreshToken, login.TokenID)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	// Replaying the rotated-out token is reuse: 401 and every session gone
	_, err = svc.Refresh(ctx, login.RefreshToken, login.TokenID)
	expectStatus(t, err, 401)

	if len(kv.data) != 0 {
		t.Errorf("expected all sessions revoked after reuse, %d remain", len(kv.data))
	}

	// Both the new token and the other device's token are now dead
	if _, err := svc.Refresh(ctx, pair.RefreshToken, login.TokenID); err == nil {
		t.Error("rotated token survived reuse revocation")
	}
	if _, err := svc.Refresh(ctx, other.RefreshToken, other.TokenID); err == nil {
		t.Error("other device's token survived reuse revocation")
	}
}

func TestRefreshWrongTokenID(t *testing.T) {
	svc, _, _ := newTestAuthService()
	registerTestUser(t, svc, "user@example.com", "s3cret-password", model.RoleAdmin)

	login, err := svc.Login(context.Background(), "user@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	_, err = svc.Refresh(context.Background(), login.RefreshToken, "not-the-slot")
	expectStatus(t, err, 401)
}

func TestRefreshInvalidToken(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Refresh(context.Background(), "garbage", "some-slot")
	expectStatus(t, err, 401)
}

func TestRefreshDeactivatedUser(t *testing.T) {
	svc, users, _ := newTestAuthService()
	user := registerTestUser(t, svc, "user@example.com", "s3cret-password", model.RoleAdmin)

	login, err := svc.Login(context.Background(), "user@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	users.byID[user.ID].IsActive = false

	_, err = svc.Refresh(context.Background(), login.RefreshToken, login.TokenID)
	expectStatus(t, err, 401)
}

func TestLogout(t *testing.T) {
	svc, _, _ := newTestAuthService()
	user := registerTestUser(t, svc, "user@example.com", "s3cret-password", model.RoleAdmin)

	ctx := context.Background()
	login, err := svc.Login(ctx, "user@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := svc.Logout(ctx, user.ID, login.TokenID); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	// The refresh token is dead after logout
	_, err = svc.Refresh(ctx, login.RefreshToken, login.TokenID)
	expectStatus(t, err, 401)

	// Logout is idempotent
	if err := svc.Logout(ctx, user.ID, login.TokenID); err != nil {
		t.Errorf("second logout errored: %v", err)
	}
}

func TestLogoutMissingTokenID(t *testing.T) {
	svc, _, _ := newTestAuthService()

	err := svc.Logout(context.Background(), 1, "")
	expectStatus(t, err, 400)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestAuthService()
	user := registerTestUser(t, svc, "user@example.com", "old-password-1", model.RoleAdmin)

	ctx := context.Background()
	login, err := svc.Login(ctx, "user@example.com", "old-password-1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "old-password-1", "new-password-1"); err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}

	// Old password dead, new one live
	_, err = svc.Login(ctx, "user@example.com", "old-password-1")
	expectStatus(t, err, 401)
	if _, err := svc.Login(ctx, "user@example.com", "new-password-1"); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}

	// Every pre-change refresh session is revoked
	_, err = svc.Refresh(ctx, login.RefreshToken, login.TokenID)
	expectStatus(t, err, 401)
}

func TestChangePasswordWrongOldPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()
	user := registerTestUser(t, svc, "user@example.com", "old-password-1", model.RoleAdmin)

	err := svc.ChangePassword(context.Background(), user.ID, "not-the-old-one", "new-password-1")
	expectStatus(t, err, 400)
}

func TestChangePasswordUnknownUser(t *testing.T) {
	svc, _, _ := newTestAuthService()

	err := svc.ChangePassword(context.Background(), 404, "old-password-1", "new-password-1")
	expectStatus(t, err, 404)
}

func TestChangePasswordTooShort(t *testing.T) {
	svc, _, _ := newTestAuthService()
	user := registerTestUser(t, svc, "user@example.com", "old-password-1", model.RoleAdmin)

	err := svc.ChangePassword(context.Background(), user.ID, "old-password-1", "short")
	expectStatus(t, err, 400)
}
