package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"snapspend-api/internal/config"
	"snapspend-api/internal/dto"
	"snapspend-api/internal/errors"
	"snapspend-api/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles signup, login and session HTTP requests
type AuthHandler struct {
	authService   services.AuthServiceInterface
	sessionConfig config.SessionConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthServiceInterface, sessionConfig config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		sessionConfig: sessionConfig,
	}
}

// Signup registers a new account and starts a session. The session token is
// delivered as an HttpOnly cookie, never in the response body.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req dto.SignupRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	user, token, err := h.authService.Signup(&req)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrEmailTaken):
			return SendError(c, errors.UserAlreadyExists)
		case stderrors.Is(err, services.ErrPasswordTooShort),
			stderrors.Is(err, services.ErrPasswordEmpty),
			stderrors.Is(err, services.ErrPasswordTooLong):
			return SendError(c, errors.UserWeakPassword, errors.WithDetails(err.Error()))
		default:
			return SendSystemError(c, err)
		}
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusCreated, dto.AuthResponse{User: toUserResponse(user)})
}

// Login authenticates an existing account and starts a session
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	user, token, err := h.authService.Login(&req)
	if err != nil {
		if stderrors.Is(err, services.ErrInvalidCredentials) {
			return SendError(c, errors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	h.setSessionCookie(c, token)
	return c.JSON(http.StatusOK, dto.AuthResponse{User: toUserResponse(user)})
}

// Logout clears the session cookie. Always succeeds, even without a session.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingSession)
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		if stderrors.Is(err, services.ErrUserNotFound) {
			return SendError(c, errors.UserNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AuthResponse{User: toUserResponse(user)})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     h.sessionConfig.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessionConfig.TTL),
		MaxAge:   int(h.sessionConfig.TTL.Seconds()),
		HttpOnly: true,
		Secure:   h.sessionConfig.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.sessionConfig.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.sessionConfig.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
