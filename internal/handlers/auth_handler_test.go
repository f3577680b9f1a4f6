package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"snapspend-api/internal/config"
	"snapspend-api/internal/dto"
	"snapspend-api/internal/models"
	"snapspend-api/internal/services"
	"snapspend-api/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// AuthHandlerSuite defines the test suite for AuthHandler
type AuthHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockAuthServiceInterface
	handler     *AuthHandler
	echo        *echo.Echo
}

func (s *AuthHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockAuthServiceInterface(s.ctrl)
	s.handler = NewAuthHandler(s.mockService, config.SessionConfig{
		CookieName:   "snapspend_session",
		Secret:       "test-secret",
		TTL:          time.Hour,
		CookieSecure: false,
	})

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
}

func (s *AuthHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) createContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewBuffer(jsonBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	return s.echo.NewContext(req, rec), rec
}

func sessionCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := rec.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func (s *AuthHandlerSuite) TestSignup_SetsSessionCookie() {
	user := &models.User{ID: uuid.New(), Email: "maria@example.com"}

	s.mockService.EXPECT().
		Signup(gomock.Any()).
		DoAndReturn(func(req *dto.SignupRequest) (*models.User, string, error) {
			s.Equal("maria@example.com", req.Email)
			return user, "signed-token", nil
		})

	c, rec := s.createContext(http.MethodPost, "/api/auth/signup/", dto.SignupRequest{
		Email:    "maria@example.com",
		Password: "correct horse battery",
	})
	s.NoError(s.handler.Signup(c))
	s.Equal(http.StatusCreated, rec.Code)

	cookie := sessionCookie(rec, "snapspend_session")
	s.Require().NotNil(cookie)
	s.Equal("signed-token", cookie.Value)
	s.True(cookie.HttpOnly)
	s.Equal("/", cookie.Path)
	s.Positive(cookie.MaxAge)

	var resp dto.AuthResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("maria@example.com", resp.User.Email)
	s.NotContains(rec.Body.String(), "signed-token")
}

func (s *AuthHandlerSuite) TestSignup_EmailTaken() {
	s.mockService.EXPECT().
		Signup(gomock.Any()).
		Return(nil, "", services.ErrEmailTaken)

	c, rec := s.createContext(http.MethodPost, "/api/auth/signup/", dto.SignupRequest{
		Email:    "maria@example.com",
		Password: "correct horse battery",
	})
	s.NoError(s.handler.Signup(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("USER_001", resp.Error.Code)
}

func (s *AuthHandlerSuite) TestSignup_WeakPassword() {
	s.mockService.EXPECT().
		Signup(gomock.Any()).
		Return(nil, "", services.ErrPasswordTooShort)

	c, rec := s.createContext(http.MethodPost, "/api/auth/signup/", dto.SignupRequest{
		Email:    "maria@example.com",
		Password: "12345678",
	})
	s.NoError(s.handler.Signup(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *AuthHandlerSuite) TestSignup_InvalidEmail() {
	c, rec := s.createContext(http.MethodPost, "/api/auth/signup/", dto.SignupRequest{
		Email:    "not-an-email",
		Password: "correct horse battery",
	})
	s.NoError(s.handler.Signup(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AuthHandlerSuite) TestLogin_Success() {
	user := &models.User{ID: uuid.New(), Email: "maria@example.com"}
	s.mockService.EXPECT().
		Login(gomock.Any()).
		Return(user, "login-token", nil)

	c, rec := s.createContext(http.MethodPost, "/api/auth/login/", dto.LoginRequest{
		Email:    "maria@example.com",
		Password: "correct horse battery",
	})
	s.NoError(s.handler.Login(c))
	s.Equal(http.StatusOK, rec.Code)

	cookie := sessionCookie(rec, "snapspend_session")
	s.Require().NotNil(cookie)
	s.Equal("login-token", cookie.Value)
}

func (s *AuthHandlerSuite) TestLogin_InvalidCredentials() {
	s.mockService.EXPECT().
		Login(gomock.Any()).
		Return(nil, "", services.ErrInvalidCredentials)

	c, rec := s.createContext(http.MethodPost, "/api/auth/login/", dto.LoginRequest{
		Email:    "maria@example.com",
		Password: "wrong",
	})
	s.NoError(s.handler.Login(c))
	s.Equal(http.StatusUnauthorized, rec.Code)

	var resp ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal("AUTH_001", resp.Error.Code)
	s.Nil(sessionCookie(rec, "snapspend_session"))
}

func (s *AuthHandlerSuite) TestLogout_ClearsCookie() {
	c, rec := s.createContext(http.MethodPost, "/api/auth/logout/", nil)
	s.NoError(s.handler.Logout(c))
	s.Equal(http.StatusNoContent, rec.Code)

	cookie := sessionCookie(rec, "snapspend_session")
	s.Require().NotNil(cookie)
	s.Empty(cookie.Value)
	s.Negative(cookie.MaxAge)
}

func (s *AuthHandlerSuite) TestMe_Success() {
	userID := uuid.New()
	user := &models.User{ID: userID, Email: "maria@example.com", FirstName: "Maria"}

	s.mockService.EXPECT().
		GetUser(userID).
		Return(user, nil)

	c, rec := s.createContext(http.MethodGet, "/api/auth/me/", nil)
	c.Set("user_id", userID)

	s.NoError(s.handler.Me(c))
	s.Equal(http.StatusOK, rec.Code)

	var resp dto.AuthResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	s.Equal(userID.String(), resp.User.ID)
	s.Equal("Maria", resp.User.FirstName)
}

func (s *AuthHandlerSuite) TestMe_MissingSession() {
	c, rec := s.createContext(http.MethodGet, "/api/auth/me/", nil)
	s.NoError(s.handler.Me(c))
	s.Equal(http.StatusUnauthorized, rec.Code)
}
