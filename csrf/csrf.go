// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package csrf

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
)

const (
	CookieName = "csrftoken"
	FormField  = "csrfmiddlewaretoken"
	HeaderName = "X-CSRFToken"

	tokenBytes = 32
)

var (
	ErrMissingToken = errors.New("CSRF token missing")
	ErrInvalidToken = errors.New("CSRF token incorrect")
)

// GenerateToken creates a random token for the csrftoken cookie
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSRF token: %w", err)
	}
	// URL-safe base64 without padding
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// WellFormed reports whether token looks like something GenerateToken made
func WellFormed(token string) bool {
	b, err := base64.RawURLEncoding.DecodeString(token)
	return err == nil && len(b) == tokenBytes
}

// ValidateToken checks a submitted token against the cookie token
func ValidateToken(cookieToken, submitted string) error {
	if cookieToken == "" || submitted == "" {
		return ErrMissingToken
	}
	if !WellFormed(cookieToken) || !WellFormed(submitted) {
		return ErrInvalidToken
	}
	if subtle.ConstantTimeCompare([]byte(cookieToken), []byte(submitted)) != 1 {
		return ErrInvalidToken
	}
	return nil
}
