package services

import (
	"testing"
	"time"

	"snapspend-api/internal/config"
	"snapspend-api/internal/dto"
	"snapspend-api/internal/models"
	"snapspend-api/internal/repositories"
	"snapspend-api/internal/repositories/repository_mocks"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockUserRepo *repository_mocks.MockUserRepositoryInterface
	service      AuthServiceInterface
	tokens       TokenServiceInterface
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockUserRepo = repository_mocks.NewMockUserRepositoryInterface(s.ctrl)
	s.tokens = NewTokenService(&config.SessionConfig{
		CookieName: "snapspend_session",
		Secret:     "test-secret",
		TTL:        time.Hour,
	})
	// Minimum bcrypt cost keeps the suite fast
	password := NewPasswordService(bcrypt.MinCost, 8)
	s.service = NewAuthService(s.mockUserRepo, password, s.tokens, nopMetrics{}, testLogger())
}

func (s *AuthServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) TestSignup_Success() {
	email := gofakeit.Email()
	s.mockUserRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(user *models.User) error {
		s.NotEqual("password123", user.PasswordHash)
		user.ID = uuid.New()
		return nil
	})

	user, token, err := s.service.Signup(&dto.SignupRequest{
		Email:    email,
		Password: "password123",
	})

	s.NoError(err)
	s.NotNil(user)
	s.NotEmpty(token)

	claims, err := s.tokens.ValidateToken(token)
	s.NoError(err)
	s.Equal(user.ID.String(), claims.UserID)
}

func (s *AuthServiceTestSuite) TestSignup_NormalizesEmail() {
	s.mockUserRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(user *models.User) error {
		s.Equal("someone@example.com", user.Email)
		user.ID = uuid.New()
		return nil
	})

	_, _, err := s.service.Signup(&dto.SignupRequest{
		Email:    "  Someone@Example.COM ",
		Password: "password123",
	})

	s.NoError(err)
}

func (s *AuthServiceTestSuite) TestSignup_WeakPassword() {
	_, _, err := s.service.Signup(&dto.SignupRequest{
		Email:    gofakeit.Email(),
		Password: "short",
	})

	s.ErrorIs(err, ErrPasswordTooShort)
}

func (s *AuthServiceTestSuite) TestSignup_EmailTaken() {
	s.mockUserRepo.EXPECT().Create(gomock.Any()).Return(repositories.ErrUserAlreadyExists)

	_, _, err := s.service.Signup(&dto.SignupRequest{
		Email:    gofakeit.Email(),
		Password: "password123",
	})

	s.ErrorIs(err, ErrEmailTaken)
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	s.NoError(err)
	user := &models.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: string(hash)}

	s.mockUserRepo.EXPECT().GetByEmail("user@example.com").Return(user, nil)
	s.mockUserRepo.EXPECT().UpdateLastLogin(user.ID).Return(nil)

	got, token, err := s.service.Login(&dto.LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})

	s.NoError(err)
	s.Equal(user.ID, got.ID)
	s.NotEmpty(token)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPasswordAndUnknownEmailIndistinguishable() {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	s.NoError(err)
	user := &models.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: string(hash)}

	s.mockUserRepo.EXPECT().GetByEmail("user@example.com").Return(user, nil)
	_, _, wrongPassErr := s.service.Login(&dto.LoginRequest{
		Email:    "user@example.com",
		Password: "not-the-password",
	})

	s.mockUserRepo.EXPECT().GetByEmail("ghost@example.com").
		Return(nil, repositories.ErrUserNotFound)
	_, _, unknownErr := s.service.Login(&dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	s.ErrorIs(wrongPassErr, ErrInvalidCredentials)
	s.ErrorIs(unknownErr, ErrInvalidCredentials)
	s.Equal(wrongPassErr, unknownErr)
}

func (s *AuthServiceTestSuite) TestGetUser_NotFound() {
	userID := uuid.New()
	s.mockUserRepo.EXPECT().GetByID(userID).Return(nil, repositories.ErrUserNotFound)

	_, err := s.service.GetUser(userID)
	s.ErrorIs(err, ErrUserNotFound)
}
