// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateSecureToken returns a URL-safe random token with byteLength bytes
// of entropy from the operating system CSPRNG.
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buffer), nil
}

// HashToken returns the SHA-256 hex digest of a token.
//
// Session tokens are stored hashed so a leaked database snapshot cannot be
// replayed as live bearer credentials.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// # Session Principal

// Principal is the resolved identity attached to an authenticated request.
//
// It is a transport-safe projection of the Session and its owning User: it
// carries no secret material and can be cached or stored in request context.
type Principal struct {
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	SessionID     string    `json:"session_id"`
	ExpiresAt     time.Time `json:"expires_at"`
}
