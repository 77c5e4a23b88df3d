// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Account, Session) and the logic for
credential verification, session issuance, and session resolution.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import "time"

// # Domain Entities

// User represents an administrative account in the Registra platform.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	Image         *string   `json:"image"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Account links a User to one authentication method.
//
// A user may own several accounts (password today, OAuth providers later),
// but at most one credential-provider account — enforced by a partial unique
// index at the storage layer.
type Account struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Provider     string    `json:"provider"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session represents a server-issued proof of authentication bound to one User.
//
// The opaque bearer token is never stored: only its SHA-256 digest (TokenHash)
// is persisted, so a database snapshot cannot be replayed as live credentials.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Active reports whether the session is still valid at the given instant.
func (s *Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRemember = "remember"
	FieldMessage  = "message"
	FieldUser     = "user"
)
