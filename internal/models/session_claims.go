package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims represents the claims carried inside the session cookie
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}
