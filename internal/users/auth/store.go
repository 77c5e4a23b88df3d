// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

package auth

import (
	"context"
	"time"

	"github.com/registra-app/registra/internal/platform/sec"
)

// # User Data Access

// UserRepository defines the data access contract for user records.
type UserRepository interface {

	/*
		FindByID returns the user with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the user with the given email (case-sensitive as stored).

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		CreateWithCredential persists a new user and its credential account
		inside a single transaction: both rows commit or neither does.

		The email uniqueness check is delegated to the storage-level unique
		constraint so two concurrent sign-ups with the same email cannot race
		past an application-level pre-check.

		Parameters:
		  - context: context.Context
		  - user: *User
		  - account: *Account (password-provider credential)

		Returns:
		  - error: apperr.Conflict on duplicate email, or persistence failures
	*/
	CreateWithCredential(context context.Context, user *User, account *Account) error

	/*
		FindCredential returns the credential-provider account for a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindCredential(context context.Context, userID string) (*Account, error)

	/*
		Update persists changes to the mutable profile fields (name, email).

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.NotFound if absent, apperr.Conflict if the new email
		    collides with a different user, or persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		Delete hard-deletes the user. Dependent Account and Session rows are
		removed by ON DELETE CASCADE foreign keys.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound if absent, or persistence failures
	*/
	Delete(context context.Context, id string) error

	/*
		List returns all users ordered by creation time ascending.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*User: All user records
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]*User, error)
}

// # Session Data Access

// SessionRepository defines the data access contract for session records.
type SessionRepository interface {

	/*
		Create persists a new session for an authenticated login.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByTokenHash returns the session matching the given token digest.
		Expiry is NOT evaluated here; the service applies the clock.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *Session: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	/*
		DeleteByTokenHash removes a session record. Deleting an absent session
		is not an error (idempotent sign-out).

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteByTokenHash(context context.Context, tokenHash string) error

	/*
		TokenHashesByUser returns the token digests of all sessions owned by
		the user. Used to purge cache entries before a cascading user delete.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []string: Token digests
		  - error: Database retrieval failures
	*/
	TokenHashesByUser(context context.Context, userID string) ([]string, error)

	/*
		DeleteExpired physically removes sessions whose ExpiresAt is in the past.

		Parameters:
		  - context: context.Context

		Returns:
		  - error: Persistence failures
	*/
	DeleteExpired(context context.Context) error
}

// # Volatile Data Access

// SessionCache defines the contract for the short-TTL principal cache that
// spares the route guard a database round-trip per request.
type SessionCache interface {

	/*
		Get retrieves the cached principal for a token digest.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *sec.Principal: Cached principal
		  - error: apperr.NotFound on miss, or connectivity errors
	*/
	Get(context context.Context, tokenHash string) (*sec.Principal, error)

	/*
		Set stores a resolved principal for a bounded duration.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - principal: *sec.Principal
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, tokenHash string, principal *sec.Principal, ttl time.Duration) error

	/*
		Delete evicts cached principals. Used on sign-out and user deletion so
		revocation takes effect immediately rather than after the TTL.

		Parameters:
		  - context: context.Context
		  - tokenHashes: ...string

		Returns:
		  - error: Eviction failures
	*/
	Delete(context context.Context, tokenHashes ...string) error
}
