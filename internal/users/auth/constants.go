// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

package auth

import "time"

// # Authentication Constraints

const (
	// ProviderCredential is the provider discriminator for password accounts.
	ProviderCredential = "credential"

	// SessionTokenLength is the byte length of the random session token
	// (32 bytes = 256 bits of entropy).
	SessionTokenLength = 32

	// SessionTTL is the default lifetime of a session without "remember me".
	SessionTTL = 24 * time.Hour

	// RememberMeSessionTTL is the extended lifetime for "remember me" logins.
	RememberMeSessionTTL = 30 * 24 * time.Hour

	// PrincipalCacheTTL bounds how long a resolved principal may be served
	// from cache. Explicit invalidation deletes the entry immediately, so
	// this only limits staleness for passively expired sessions.
	PrincipalCacheTTL = 30 * time.Second

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8
)
