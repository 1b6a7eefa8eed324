package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tutor-marketplace/internal/auth"
	"github.com/spec-kit/tutor-marketplace/internal/config"
	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/repository"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokens:     auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL()),
		bcryptCost: cfg.BcryptCost,
	}
}

// RegisterInput describes a new account request.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      domain.UserRole
}

// Register creates a new account. The email pre-check is a fast path; the
// unique index on LOWER(email) is the authoritative guard.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("role must be student, tutor or admin")
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewBadRequest("user with this email already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err, "users_email_lower_key") {
			return nil, apperrors.NewBadRequest("user with this email already exists")
		}
		return nil, err
	}
	return user, nil
}

// Login authenticates an account and issues a bearer token. Unknown email,
// wrong password and a row miss are all reported with the same message.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewAuthenticationError("invalid email or password")
		}
		return nil, "", time.Time{}, err
	}
	if !user.IsActive {
		return nil, "", time.Time{}, apperrors.NewAuthenticationError("account is deactivated")
	}
	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, "", time.Time{}, apperrors.NewAuthenticationError("invalid email or password")
	}

	token, exp, err := s.tokens.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
