package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"interno-chat/internal/model"
	"interno-chat/internal/pkg/jwtutil"
	"interno-chat/internal/repository"
)

var ErrUsernameExists = errors.New("username already exists")

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	now           func() time.Time
}

type LoginInput struct {
	Username string
	Password string
}

type CreateUserInput struct {
	Username string
	Email    string
	FullName string
	Password string
	Role     string
}

type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		now:           time.Now,
	}
}

// CreateUser is used by the provisioning command; there is no public sign-up.
func (s *AuthService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fieldError("username", "is required")
	}
	if err := checkPassword("password", input.Password); err != nil {
		return nil, err
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = model.UserRoleUser
	}
	switch role {
	case model.UserRoleSuperAdmin, model.UserRoleAdmin, model.UserRoleUser:
	default:
		return nil, fieldError("role", "must be one of super_admin, admin, user")
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		FullName:     strings.TrimSpace(input.FullName),
		PasswordHash: hash,
		Role:         role,
	}
	if email := strings.TrimSpace(strings.ToLower(input.Email)); email != "" {
		user.Email = &email
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	password := input.Password
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	now := s.now()
	if err := s.userRepo.MarkLoggedIn(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now
	user.IsActive = true

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.userRepo.GetByID(ctx, id)
}

// ChangePassword replaces the stored hash once the current password checks out.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, input ChangePasswordInput) error {
	if input.OldPassword == "" {
		return fieldError("old_password", "is required")
	}
	if err := checkPassword("new_password", input.NewPassword); err != nil {
		return err
	}

	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)); err != nil {
		return fieldError("old_password", "incorrect current password")
	}

	hash, err := hashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePasswordHash(ctx, user.ID, hash)
}

// Logout flags the user inactive. Issued tokens stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.userRepo.MarkLoggedOut(ctx, user.ID)
}

func (s *AuthService) requireUser(ctx context.Context, userID uint) (*model.User, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Passwords are checked and hashed as given; surrounding spaces are significant.
func checkPassword(field, password string) error {
	if len(password) < 8 {
		return fieldError(field, "must be at least 8 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}
