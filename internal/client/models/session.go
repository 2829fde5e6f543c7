// Package models defines the client-side data models of the member client.
package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the on-device proof of authentication: the bearer token plus
// the identity fields returned at login, cached for offline display.
//
// A Session with an empty Token is never persisted and never loaded; it is
// either fully present or absent.
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	FullName string `json:"fullName,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Valid reports whether s carries a token.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// ExpiresAt returns the exp claim of the token when the token is a JWT that
// carries one. The signature is not verified: the backend remains the only
// authority on validity, the value is informational.
func (s *Session) ExpiresAt() (time.Time, bool) {
	if !s.Valid() {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
