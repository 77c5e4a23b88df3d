// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

package sec_test

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registra-app/registra/internal/platform/sec"
)

/*
TestHashPassword_VerifyRoundTrip verifies that a password always verifies
against its own hash and never against a different password.
*/
func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hashed, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(hashed, "$argon2id$"))
	assert.True(t, sec.VerifyPassword("correct horse battery staple", hashed))
	assert.False(t, sec.VerifyPassword("correct horse battery stapl", hashed))
	assert.False(t, sec.VerifyPassword("", hashed))
}

/*
TestHashPassword_UniqueSalt verifies that hashing the same password twice
produces different outputs (per-call random salt).
*/
func TestHashPassword_UniqueSalt(t *testing.T) {
	first, err := sec.HashPassword("hunter2hunter2")
	require.NoError(t, err)

	second, err := sec.HashPassword("hunter2hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	// Both still verify.
	assert.True(t, sec.VerifyPassword("hunter2hunter2", first))
	assert.True(t, sec.VerifyPassword("hunter2hunter2", second))
}

/*
TestHashPasswordFallback verifies the degraded sha256 format round-trips and
is distinguishable by its prefix.
*/
func TestHashPasswordFallback(t *testing.T) {
	hashed := sec.HashPasswordFallback("fallback-password", slog.Default())

	assert.True(t, strings.HasPrefix(hashed, "$sha256$"))
	assert.True(t, sec.VerifyPassword("fallback-password", hashed))
	assert.False(t, sec.VerifyPassword("other-password", hashed))
}

/*
TestVerifyPassword_MalformedStored verifies that corrupt or unknown stored
formats never verify and never panic.
*/
func TestVerifyPassword_MalformedStored(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2id$",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$!!!",
		"$sha256$nothex$nothex",
		"$bcrypt$whatever",
	}

	for _, stored := range cases {
		assert.False(t, sec.VerifyPassword("password", stored), "stored=%q", stored)
	}
}

/*
TestGenerateSecureToken verifies token length, uniqueness, and URL safety.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	// 32 bytes => 43 chars of unpadded base64url.
	assert.Len(t, first, 43)
	assert.NotContains(t, first, "+")
	assert.NotContains(t, first, "/")
}

/*
TestHashToken verifies the digest is deterministic and hex-encoded.
*/
func TestHashToken(t *testing.T) {
	digest := sec.HashToken("some-token")

	assert.Equal(t, digest, sec.HashToken("some-token"))
	assert.NotEqual(t, digest, sec.HashToken("other-token"))
	assert.Len(t, digest, 64)
}
