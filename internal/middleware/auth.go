package middleware

import (
	"errors"
	"net/http"

	apierrors "snapspend-api/internal/errors"
	"snapspend-api/internal/handlers"
	"snapspend-api/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequireSession creates a middleware that requires a valid session cookie.
// The cookie carries a signed token; on success the user id and email are
// placed into the request context for handlers.
func RequireSession(tokenService services.TokenServiceInterface, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return handlers.SendError(c, apierrors.AuthMissingSession)
			}

			claims, err := tokenService.ValidateToken(cookie.Value)
			if err != nil {
				if errors.Is(err, services.ErrExpiredToken) {
					clearSessionCookie(c, cookieName)
					return handlers.SendError(c, apierrors.AuthExpiredSession)
				}
				clearSessionCookie(c, cookieName)
				return handlers.SendError(c, apierrors.AuthInvalidSession)
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return handlers.SendError(c, apierrors.AuthInvalidSession, apierrors.WithDetails("Invalid user ID in session"))
			}

			c.Set("user_id", userID)
			c.Set("user_email", claims.Email)

			return next(c)
		}
	}
}

// clearSessionCookie expires the session cookie so a browser stops
// resending a dead session
func clearSessionCookie(c echo.Context, cookieName string) {
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
