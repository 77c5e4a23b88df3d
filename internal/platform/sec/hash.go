// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

// Package sec provides cryptographic primitives for credential and session
// handling.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, token
// generation) from the domain logic. It acts as an Infrastructure service
// consumed by the auth service layer.
package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. These match the widely published OWASP minimums for
// the id variant: 19 MiB memory, 2 passes, single lane, 32-byte key.
const (
	argonMemoryKiB  = 19456
	argonIterations = 2
	argonLanes      = 1
	argonKeyLen     = 32
	argonSaltLen    = 16
)

// Stored-hash format prefixes. VerifyPassword selects the algorithm per record
// from the prefix so both formats can coexist in the same column.
const (
	prefixArgon2id = "$argon2id$"
	prefixSHA256   = "$sha256$"
)

// HashPassword hashes a plain-text password using Argon2id and returns a
// PHC-formatted string: $argon2id$v=19$m=...,t=...,p=...$<salt>$<hash>.
//
// Each call draws a fresh random salt, so hashing the same password twice
// never produces the same output.
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plainTextPassword), salt, argonIterations, argonMemoryKiB, argonLanes, argonKeyLen)

	encoded := fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		prefixArgon2id,
		argon2.Version,
		argonMemoryKiB,
		argonIterations,
		argonLanes,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// HashPasswordFallback produces a salted SHA-256 digest tagged with the
// $sha256$ prefix.
//
// This is a degraded-availability mode only: it exists so account creation can
// still complete if the memory-hard primitive cannot commit its work buffer.
// Every use is logged as a security warning.
func HashPasswordFallback(plainTextPassword string, logger *slog.Logger) string {
	salt := make([]byte, argonSaltLen)
	// rand.Read on a crypto/rand source does not fail on supported platforms.
	_, _ = rand.Read(salt)

	sum := sha256.Sum256(append(salt, []byte(plainTextPassword)...))

	if logger != nil {
		logger.Warn("password_hash_fallback_engaged",
			slog.String("algorithm", "sha256"),
			slog.String("reason", "argon2id unavailable"),
		)
	}

	return prefixSHA256 + hex.EncodeToString(salt) + "$" + hex.EncodeToString(sum[:])
}

// VerifyPassword compares a plain-text password against a stored hash.
//
// The algorithm, parameters, and salt are decoded from the stored string, so
// records written with either the Argon2id or the fallback format verify
// correctly. Comparison is constant-time in both branches.
func VerifyPassword(plainTextPassword, stored string) bool {
	switch {
	case strings.HasPrefix(stored, prefixArgon2id):
		return verifyArgon2id(plainTextPassword, stored)
	case strings.HasPrefix(stored, prefixSHA256):
		return verifySHA256(plainTextPassword, stored)
	default:
		return false
	}
}

// verifyArgon2id recomputes the Argon2id key using the parameters embedded in
// the PHC string.
func verifyArgon2id(plainTextPassword, stored string) bool {
	// $argon2id$v=19$m=19456,t=2,p=1$<salt>$<hash>
	parts := strings.Split(stored, "$")
	if len(parts) != 6 {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory uint32
	var iterations uint32
	var lanes uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &lanes); err != nil {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	key := argon2.IDKey([]byte(plainTextPassword), salt, iterations, memory, lanes, uint32(len(expected)))
	return subtle.ConstantTimeCompare(key, expected) == 1
}

// verifySHA256 handles records written by the degraded fallback path.
func verifySHA256(plainTextPassword, stored string) bool {
	// $sha256$<salt-hex>$<hash-hex>
	rest := strings.TrimPrefix(stored, prefixSHA256)
	parts := strings.Split(rest, "$")
	if len(parts) != 2 {
		return false
	}

	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}

	expected, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}

	sum := sha256.Sum256(append(salt, []byte(plainTextPassword)...))
	return subtle.ConstantTimeCompare(sum[:], expected) == 1
}
