package services

import (
	"errors"
	"log/slog"
	"strings"

	"snapspend-api/internal/dto"
	"snapspend-api/internal/models"
	"snapspend-api/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

type authService struct {
	userRepo repositories.UserRepositoryInterface
	password PasswordServiceInterface
	tokens   TokenServiceInterface
	metrics  MetricsRecorderInterface
	logger   *slog.Logger
}

// NewAuthService creates a new AuthServiceInterface instance
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	password PasswordServiceInterface,
	tokens TokenServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &authService{
		userRepo: userRepo,
		password: password,
		tokens:   tokens,
		metrics:  metrics,
		logger:   logger,
	}
}

// Signup registers a new user and returns a signed session token
func (s *authService) Signup(req *dto.SignupRequest) (*models.User, string, error) {
	if err := s.password.ValidateStrength(req.Password); err != nil {
		return nil, "", err
	}

	hash, err := s.password.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	s.metrics.RecordAuthEvent("signup")
	s.logger.Info("user signed up", "user_id", user.ID, "email", user.Email)

	return user, token, nil
}

// Login verifies credentials and returns a signed session token.
// A missing user and a wrong password produce the same error so the
// response never reveals which emails are registered.
func (s *authService) Login(req *dto.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.metrics.RecordAuthEvent("login_failure")
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.password.VerifyPassword(user.PasswordHash, req.Password) {
		s.metrics.RecordAuthEvent("login_failure")
		s.logger.Warn("failed login attempt", "email", req.Email)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, "", err
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		s.logger.Warn("failed to record last login", "user_id", user.ID, "error", err)
	}

	s.metrics.RecordAuthEvent("login_success")
	s.logger.Info("user logged in", "user_id", user.ID)

	return user, token, nil
}

// GetUser returns the profile for an authenticated user
func (s *authService) GetUser(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
