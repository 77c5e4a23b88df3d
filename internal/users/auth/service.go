// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

/*
Package auth implements the core identity and access management for Registra.

It handles user registration, secure password hashing, and the full session
lifecycle: issuance on successful credential verification, resolution on every
guarded request, and invalidation on sign-out.

Architecture:

  - Service: Orchestrates business logic (SignUp, SignIn, session lifecycle).
  - Repository: Abstracted interfaces for Postgres (users, sessions) and
    Redis (principal cache).
  - Security: Delegates to the sec package for Argon2id hashing and
    high-entropy opaque tokens.

The package ensures that identity data remains consistent and secure
throughout the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/registra-app/registra/internal/platform/apperr"
	"github.com/registra-app/registra/internal/platform/sec"
	"github.com/registra-app/registra/pkg/uuid"
)

// # Contracts & Types

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or session logic must be reviewed by the security team.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	sessionCache      SessionCache
	logger            *slog.Logger

	// now is injectable for deterministic expiry tests.
	now func() time.Time
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	cache SessionCache,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		sessionCache:      cache,
		logger:            logger,
		now:               time.Now,
	}
}

// IssuedSession carries a freshly minted session token back to the transport
// layer. The plaintext token exists only here and in the client's cookie.
type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
}

// # Registration Flow

// SignUpInput holds the data required to enroll a new administrative user.
type SignUpInput struct {
	Name      string
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

/*
SignUp creates a brand new user with a credential account and signs them in.

Description: Hashes the password, persists the user and its credential row in
one transaction, then issues a session so the browser lands authenticated.

Parameters:
  - context: context.Context
  - input: SignUpInput

Returns:
  - *User: Created entity
  - *IssuedSession: Session token for the cookie
  - error: Conflict (duplicate email) or storage errors
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (*User, *IssuedSession, error) {
	user, err := service.CreateUser(context, input.Name, input.Email, input.Password)
	if err != nil {
		return nil, nil, err
	}

	session, err := service.CreateSession(context, user.ID, false, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

/*
CreateUser validates, hashes, and persists a new user WITHOUT signing them in.

Description: Shared by self-service sign-up and the admin "create user"
dialog. The user row and its password-provider account row are written inside
one transaction; the storage-level unique index on email is the authority for
uniqueness.

Parameters:
  - context: context.Context
  - name: string
  - email: string
  - password: string (plain text, hashed here and never stored)

Returns:
  - *User: Created entity
  - error: Conflict (duplicate email) or storage errors
*/
func (service *Service) CreateUser(context context.Context, name, email, password string) (*User, error) {

	// Advisory pre-check for a friendly error message. The race with a
	// concurrent sign-up is closed by the unique index, not by this read.
	if _, err := service.userRepository.FindByEmail(context, email); err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	passwordHash := service.hashPassword(password)

	user := &User{
		ID:            uuid.New(),
		Name:          name,
		Email:         email,
		EmailVerified: false,
	}

	account := &Account{
		ID:           uuid.New(),
		UserID:       user.ID,
		Provider:     ProviderCredential,
		PasswordHash: passwordHash,
	}

	if err := service.userRepository.CreateWithCredential(context, user, account); err != nil {
		return nil, err
	}

	service.logger.Info("user_created", slog.String("user_id", user.ID))
	return user, nil
}

// hashPassword applies Argon2id, falling back to the tagged salted-SHA-256
// format only if the memory-hard primitive cannot complete. The fallback is a
// known weakening of the security contract and is logged as such.
func (service *Service) hashPassword(password string) string {
	hash, err := sec.HashPassword(password)
	if err != nil {
		service.logger.Warn("argon2id_unavailable_engaging_fallback", slog.Any("error", err))
		return sec.HashPasswordFallback(password, service.logger)
	}
	return hash
}

// # Authentication Flow

// SignInInput defines credentials for an authentication attempt.
type SignInInput struct {
	Email     string
	Password  string
	Remember  bool
	UserAgent string
	IPAddress string
}

/*
SignIn validates user credentials and issues a session.

Description: Verifies identity with a constant-time hash comparison and
initializes a new session bound to the user.

Parameters:
  - context: context.Context
  - input: SignInInput

Returns:
  - *User: Authenticated entity
  - *IssuedSession: Session token for the cookie
  - error: Unauthorized or internal failures
*/
func (service *Service) SignIn(context context.Context, input SignInInput) (*User, *IssuedSession, error) {
	user, err := service.userRepository.FindByEmail(context, input.Email)

	// Generic message on unknown email to prevent account enumeration.
	if err != nil {
		return nil, nil, apperr.Unauthorized("Invalid email or password")
	}

	credential, err := service.userRepository.FindCredential(context, user.ID)
	if err != nil {
		return nil, nil, apperr.Unauthorized("Invalid email or password")
	}

	// Constant-time comparison; the stored format prefix selects the algorithm.
	if !sec.VerifyPassword(input.Password, credential.PasswordHash) {
		return nil, nil, apperr.Unauthorized("Invalid email or password")
	}

	session, err := service.CreateSession(context, user.ID, input.Remember, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, nil, err
	}

	service.logger.Info("user_signed_in", slog.String("user_id", user.ID))
	return user, session, nil
}

// # Session Lifecycle

/*
CreateSession generates and persists a new session for the user.

Description: Mints a 256-bit random opaque token, stores only its SHA-256
digest, and applies the rememberMe expiry policy (30 days vs 24 hours).

Parameters:
  - context: context.Context
  - userID: string
  - rememberMe: bool
  - userAgent: string (audit metadata)
  - ipAddress: string (audit metadata)

Returns:
  - *IssuedSession: Plaintext token and expiry for the Set-Cookie header
  - error: Token generation or storage failures
*/
func (service *Service) CreateSession(context context.Context, userID string, rememberMe bool, userAgent, ipAddress string) (*IssuedSession, error) {
	token, err := sec.GenerateSecureToken(SessionTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_session_token_failed: %w", err)
	}

	timeToLive := SessionTTL
	if rememberMe {
		timeToLive = RememberMeSessionTTL
	}

	expiresAt := service.now().Add(timeToLive)
	session := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: sec.HashToken(token),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: expiresAt,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &IssuedSession{Token: token, ExpiresAt: expiresAt}, nil
}

/*
ResolveSession resolves an opaque token into a request principal.

Description: The sole read contract of the session service. A session resolves
only while it is unexpired AND its owning user still exists. Missing, expired,
revoked, and malformed tokens are indistinguishable to the caller: all return
Unauthorized. Resolution reads through the short-TTL cache.

Parameters:
  - context: context.Context
  - token: string (opaque bearer token from the cookie)

Returns:
  - *sec.Principal: Transport-safe identity projection
  - error: apperr.Unauthorized for any invalid state, or storage failures
*/
func (service *Service) ResolveSession(context context.Context, token string) (*sec.Principal, error) {
	if token == "" {
		return nil, apperr.Unauthorized("Invalid or expired session")
	}

	tokenHash := sec.HashToken(token)

	// Cache hit: still re-check expiry against the clock so a principal cached
	// moments before expiry cannot outlive it.
	if cached, err := service.sessionCache.Get(context, tokenHash); err == nil {
		if service.now().Before(cached.ExpiresAt) {
			return cached, nil
		}
		_ = service.sessionCache.Delete(context, tokenHash)
	}

	session, err := service.sessionRepository.FindByTokenHash(context, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired session")
	}

	// Passive expiry: no actor required, the clock decides.
	if !session.Active(service.now()) {
		return nil, apperr.Unauthorized("Invalid or expired session")
	}

	// The session must still point at a live user (cascade delete removes the
	// row, but the cache and in-flight reads make this check load-bearing).
	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired session")
	}

	principal := &sec.Principal{
		UserID:        user.ID,
		Name:          user.Name,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		SessionID:     session.ID,
		ExpiresAt:     session.ExpiresAt,
	}

	// Cache write failures degrade silently; the next request reads the DB.
	if err := service.sessionCache.Set(context, tokenHash, principal, PrincipalCacheTTL); err != nil {
		service.logger.Debug("session_cache_set_failed", slog.Any("error", err))
	}

	return principal, nil
}

/*
InvalidateSession deletes a session record and its cache entry.

Description: Explicit revocation (sign-out). Idempotent: invalidating an
already-invalid or unknown token is not an error.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Storage failures only
*/
func (service *Service) InvalidateSession(context context.Context, token string) error {
	if token == "" {
		return nil
	}

	tokenHash := sec.HashToken(token)

	// Evict the cache first so revocation is immediate even if the row
	// delete below races a concurrent resolution.
	if err := service.sessionCache.Delete(context, tokenHash); err != nil {
		service.logger.Debug("session_cache_evict_failed", slog.Any("error", err))
	}

	if err := service.sessionRepository.DeleteByTokenHash(context, tokenHash); err != nil {
		return fmt.Errorf("auth_service_sign_out_failed: %w", err)
	}

	return nil
}

/*
PurgeUserSessions evicts every cached principal belonging to a user.

Description: Called before a user delete so the cascade cannot leave a
still-authorizing cache entry behind.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Retrieval failures (eviction itself degrades silently)
*/
func (service *Service) PurgeUserSessions(context context.Context, userID string) error {
	hashes, err := service.sessionRepository.TokenHashesByUser(context, userID)
	if err != nil {
		return fmt.Errorf("auth_service_purge_sessions_failed: %w", err)
	}

	if len(hashes) == 0 {
		return nil
	}

	if err := service.sessionCache.Delete(context, hashes...); err != nil {
		service.logger.Debug("session_cache_purge_failed", slog.Any("error", err))
	}

	return nil
}
