package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sahilchouksey/student-management-api/model"
	"github.com/sahilchouksey/student-management-api/utils/apperror"
	"github.com/sahilchouksey/student-management-api/utils/auth"
)

// RefreshSessionTTL is how long a refresh session slot stays valid without rotation
const RefreshSessionTTL = 7 * 24 * time.Hour

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)

// UserStore is the credential persistence the auth workflow depends on.
// The GORM implementation lives in user_store.go; tests use an in-memory fake.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// AuthService orchestrates register / login / refresh / logout / change-password
type AuthService struct {
	users    UserStore
	sessions *auth.SessionRegistry
	tokens   *auth.TokenManager
}

// NewAuthService wires the auth workflow. All collaborators are injected so
// tests can substitute fakes.
func NewAuthService(users UserStore, sessions *auth.SessionRegistry, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
	}
}

// RegisterInput carries a validated registration request
type RegisterInput struct {
	Email        string
	Password     string
	Role         string
	StudentID    *uint
	InstructorID *uint
}

// Register creates a credential record with a freshly salted hash. The password
// is hashed right here, before persisting; there is no ORM hook doing it behind
// the scenes.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if !model.ValidRole(in.Role) {
		return nil, apperror.BadRequest("Invalid role")
	}

	// Profile links form a tagged union with the role: students link to a
	// student profile, instructors to an instructor profile, admins to neither.
	switch in.Role {
	case model.RoleStudent:
		if in.InstructorID != nil {
			return nil, apperror.BadRequest("Student accounts cannot link an instructor profile")
		}
	case model.RoleInstructor:
		if in.StudentID != nil {
			return nil, apperror.BadRequest("Instructor accounts cannot link a student profile")
		}
	case model.RoleAdmin:
		if in.StudentID != nil || in.InstructorID != nil {
			return nil, apperror.BadRequest("Admin accounts cannot link a profile")
		}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return nil, apperror.BadRequest("Password must be at least 8 characters")
		}
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
		StudentID:    in.StudentID,
		InstructorID: in.InstructorID,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return nil, apperror.Conflict("User already exists")
		}
		return nil, err
	}

	return user, nil
}

// LoginResult is returned on a successful login. TokenID names the refresh
// session slot and must be presented back on refresh and logout, which is what
// lets multiple devices hold independent sessions.
type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenID      string `json:"tokenId"`
	Role         string `json:"role"`
}

// Login verifies credentials and opens a new refresh session slot
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperror.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperror.Unauthorized("Account is deactivated")
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("Invalid credentials")
	}

	tokenID := uuid.NewString()

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Put(ctx, user.ID, tokenID, refreshToken, RefreshSessionTTL); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenID:      tokenID,
		Role:         user.Role,
	}, nil
}

// TokenPair is returned on a successful refresh
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Refresh rotates the refresh token for one session slot. A presented token
// that does not match the stored one is treated as replay of a rotated-out
// token: every session for that user is revoked before the 401 goes out.
// Rotation keeps the same tokenID slot; only the token value and TTL change.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, tokenID string) (*TokenPair, error) {
	if tokenID == "" {
		return nil, apperror.BadRequest("tokenId is required")
	}

	claims, err := s.tokens.Verify(refreshToken, auth.TokenKindRefresh)
	if err != nil {
		return nil, apperror.Unauthorized("Invalid or expired refresh token")
	}

	stored, err := s.sessions.Get(ctx, claims.UserID, tokenID)
	if err != nil || stored != refreshToken {
		// Reuse or tampering. Revoke the whole session set; a stolen token must
		// not stay exchangeable on any device slot.
		if revokeErr := s.sessions.RevokeAll(ctx, claims.UserID); revokeErr != nil {
			log.Println("failed to revoke sessions after reuse detection:", revokeErr)
		}
		return nil, apperror.Unauthorized("Refresh token reuse detected")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, apperror.Unauthorized("Account is deactivated")
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	newRefreshToken, err := s.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Put(ctx, user.ID, tokenID, newRefreshToken, RefreshSessionTTL); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout revokes one session slot. Revoking an absent slot is not an error.
func (s *AuthService) Logout(ctx context.Context, userID uint, tokenID string) error {
	if tokenID == "" {
		return apperror.BadRequest("tokenId is required")
	}
	return s.sessions.Revoke(ctx, userID, tokenID)
}

// ChangePassword re-hashes and persists the new password, then revokes every
// refresh session: a password change after suspected compromise must not leave
// previously issued refresh tokens exchangeable.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return apperror.NotFound("User not found")
		}
		return err
	}

	if err := auth.VerifyPassword(user.PasswordHash, oldPassword); err != nil {
		return apperror.BadRequest("Old password is incorrect")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			return apperror.BadRequest("Password must be at least 8 characters")
		}
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	if err := s.sessions.RevokeAll(ctx, userID); err != nil {
		log.Println("failed to revoke sessions after password change:", err)
	}

	return nil
}
