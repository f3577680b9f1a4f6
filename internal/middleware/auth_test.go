package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"snapspend-api/internal/errors"
	"snapspend-api/internal/models"
	"snapspend-api/internal/services"
	"snapspend-api/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

const testCookieName = "snapspend_session"

// AuthMiddlewareSuite defines the test suite for the session middleware
type AuthMiddlewareSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	tokenService *service_mocks.MockTokenServiceInterface
	echo         *echo.Echo
}

func (s *AuthMiddlewareSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.tokenService = service_mocks.NewMockTokenServiceInterface(s.ctrl)
	s.echo = echo.New()
}

func (s *AuthMiddlewareSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareSuite))
}

func (s *AuthMiddlewareSuite) runMiddleware(cookie *http.Cookie, next echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/receipts/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	handler := RequireSession(s.tokenService, testCookieName)(next)
	s.NoError(handler(c))
	return rec
}

func (s *AuthMiddlewareSuite) errorCode(rec *httptest.ResponseRecorder) string {
	var resp errors.ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}

func (s *AuthMiddlewareSuite) TestRequireSession_ValidCookie() {
	userID := uuid.New()
	s.tokenService.EXPECT().
		ValidateToken("valid-token").
		Return(&models.SessionClaims{UserID: userID.String(), Email: "maria@example.com"}, nil)

	nextCalled := false
	rec := s.runMiddleware(&http.Cookie{Name: testCookieName, Value: "valid-token"}, func(c echo.Context) error {
		nextCalled = true
		s.Equal(userID, c.Get("user_id"))
		s.Equal("maria@example.com", c.Get("user_email"))
		return c.NoContent(http.StatusOK)
	})

	s.True(nextCalled)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *AuthMiddlewareSuite) TestRequireSession_MissingCookie() {
	rec := s.runMiddleware(nil, func(c echo.Context) error {
		s.Fail("next handler should not run")
		return nil
	})

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_002", s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireSession_ExpiredTokenClearsCookie() {
	s.tokenService.EXPECT().
		ValidateToken("stale-token").
		Return(nil, services.ErrExpiredToken)

	rec := s.runMiddleware(&http.Cookie{Name: testCookieName, Value: "stale-token"}, func(c echo.Context) error {
		s.Fail("next handler should not run")
		return nil
	})

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_003", s.errorCode(rec))

	res := rec.Result()
	defer res.Body.Close()
	cookies := res.Cookies()
	s.Require().Len(cookies, 1)
	s.Equal(testCookieName, cookies[0].Name)
	s.Empty(cookies[0].Value)
	s.Negative(cookies[0].MaxAge)
}

func (s *AuthMiddlewareSuite) TestRequireSession_TamperedToken() {
	s.tokenService.EXPECT().
		ValidateToken("tampered").
		Return(nil, services.ErrInvalidToken)

	rec := s.runMiddleware(&http.Cookie{Name: testCookieName, Value: "tampered"}, func(c echo.Context) error {
		s.Fail("next handler should not run")
		return nil
	})

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_004", s.errorCode(rec))
}

func (s *AuthMiddlewareSuite) TestRequireSession_MalformedUserID() {
	s.tokenService.EXPECT().
		ValidateToken("odd-claims").
		Return(&models.SessionClaims{UserID: "not-a-uuid"}, nil)

	rec := s.runMiddleware(&http.Cookie{Name: testCookieName, Value: "odd-claims"}, func(c echo.Context) error {
		s.Fail("next handler should not run")
		return nil
	})

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("AUTH_004", s.errorCode(rec))
}
