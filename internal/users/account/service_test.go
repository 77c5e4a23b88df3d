// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

package account

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registra-app/registra/internal/platform/apperr"
	"github.com/registra-app/registra/internal/platform/sec"
	"github.com/registra-app/registra/internal/users/auth"
)

// # In-Memory Fakes

type fakeUserRepository struct {
	users       map[string]*auth.User
	credentials map[string]*auth.Account
	order       []string
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		users:       map[string]*auth.User{},
		credentials: map[string]*auth.Account{},
	}
}

func (repository *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repository.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repository *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repository.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repository *fakeUserRepository) CreateWithCredential(_ context.Context, user *auth.User, account *auth.Account) error {
	for _, existing := range repository.users {
		if existing.Email == user.Email {
			return apperr.Conflict("Email is already registered")
		}
	}
	repository.users[user.ID] = user
	repository.credentials[account.UserID] = account
	repository.order = append(repository.order, user.ID)
	return nil
}

func (repository *fakeUserRepository) FindCredential(_ context.Context, userID string) (*auth.Account, error) {
	account, ok := repository.credentials[userID]
	if !ok {
		return nil, apperr.NotFound("Credential")
	}
	return account, nil
}

func (repository *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := repository.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	for _, other := range repository.users {
		if other.ID != user.ID && other.Email == user.Email {
			return apperr.Conflict("Email is already registered")
		}
	}
	repository.users[user.ID] = user
	return nil
}

func (repository *fakeUserRepository) Delete(_ context.Context, id string) error {
	if _, ok := repository.users[id]; !ok {
		return apperr.NotFound("User")
	}
	delete(repository.users, id)
	delete(repository.credentials, id)
	return nil
}

func (repository *fakeUserRepository) List(_ context.Context) ([]*auth.User, error) {
	users := []*auth.User{}
	for _, id := range repository.order {
		if user, ok := repository.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

type fakeSessionRepository struct {
	sessions map[string]*auth.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: map[string]*auth.Session{}}
}

func (repository *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	repository.sessions[session.TokenHash] = session
	return nil
}

func (repository *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := repository.sessions[tokenHash]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

func (repository *fakeSessionRepository) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	delete(repository.sessions, tokenHash)
	return nil
}

func (repository *fakeSessionRepository) TokenHashesByUser(_ context.Context, userID string) ([]string, error) {
	hashes := []string{}
	for hash, session := range repository.sessions {
		if session.UserID == userID {
			hashes = append(hashes, hash)
		}
	}
	return hashes, nil
}

func (repository *fakeSessionRepository) DeleteExpired(_ context.Context) error {
	return nil
}

type fakeSessionCache struct {
	entries map[string]*sec.Principal
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{entries: map[string]*sec.Principal{}}
}

func (cache *fakeSessionCache) Get(_ context.Context, tokenHash string) (*sec.Principal, error) {
	principal, ok := cache.entries[tokenHash]
	if !ok {
		return nil, apperr.NotFound("Cached session")
	}
	return principal, nil
}

func (cache *fakeSessionCache) Set(_ context.Context, tokenHash string, principal *sec.Principal, _ time.Duration) error {
	cache.entries[tokenHash] = principal
	return nil
}

func (cache *fakeSessionCache) Delete(_ context.Context, tokenHashes ...string) error {
	for _, hash := range tokenHashes {
		delete(cache.entries, hash)
	}
	return nil
}

// # Harness

type accountFixture struct {
	service     *Service
	authService *auth.Service
	users       *fakeUserRepository
	sessions    *fakeSessionRepository
	cache       *fakeSessionCache
}

func newAccountFixture() *accountFixture {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	cache := newFakeSessionCache()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	authService := auth.NewService(users, sessions, cache, logger)
	service := NewService(users, authService, logger)

	return &accountFixture{service: service, authService: authService, users: users, sessions: sessions, cache: cache}
}

// # Tests

/*
TestService_CreateUser verifies admin-driven provisioning: user and credential
exist afterwards, and no session was issued.
*/
func TestService_CreateUser(t *testing.T) {
	fixture := newAccountFixture()
	ctx := context.Background()

	user, err := fixture.service.CreateUser(ctx, "Grace Hopper", "grace@example.com", "a strong password")
	require.NoError(t, err)
	require.NotNil(t, user)

	stored, err := fixture.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", stored.Email)

	credential, err := fixture.users.FindCredential(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, credential.PasswordHash)

	hashes, err := fixture.sessions.TokenHashesByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, hashes)
}

/*
TestService_CreateUser_DuplicateEmail verifies the conflict contract.
*/
func TestService_CreateUser_DuplicateEmail(t *testing.T) {
	fixture := newAccountFixture()
	ctx := context.Background()

	_, err := fixture.service.CreateUser(ctx, "One", "same@example.com", "password-one")
	require.NoError(t, err)

	_, err = fixture.service.CreateUser(ctx, "Two", "same@example.com", "password-two")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_ListUsers verifies creation-order listing.
*/
func TestService_ListUsers(t *testing.T) {
	fixture := newAccountFixture()
	ctx := context.Background()

	_, err := fixture.service.CreateUser(ctx, "First", "first@example.com", "password-one")
	require.NoError(t, err)
	_, err = fixture.service.CreateUser(ctx, "Second", "second@example.com", "password-two")
	require.NoError(t, err)

	users, err := fixture.service.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "first@example.com", users[0].Email)
	assert.Equal(t, "second@example.com", users[1].Email)
}

/*
TestService_UpdateUser covers the partial-update semantics: name only, email
only, unknown ID, and an email collision with another user.
*/
func TestService_UpdateUser(t *testing.T) {
	fixture := newAccountFixture()
	ctx := context.Background()

	alpha, err := fixture.service.CreateUser(ctx, "Alpha", "alpha@example.com", "password-one")
	require.NoError(t, err)
	_, err = fixture.service.CreateUser(ctx, "Beta", "beta@example.com", "password-two")
	require.NoError(t, err)

	t.Run("rename_only", func(t *testing.T) {
		name := "Alpha Prime"
		updated, err := fixture.service.UpdateUser(ctx, alpha.ID, UpdateUserInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Alpha Prime", updated.Name)
		assert.Equal(t, "alpha@example.com", updated.Email)
	})

	t.Run("email_collision", func(t *testing.T) {
		email := "beta@example.com"
		_, err := fixture.service.UpdateUser(ctx, alpha.ID, UpdateUserInput{Email: &email})
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("unknown_id", func(t *testing.T) {
		name := "Ghost"
		_, err := fixture.service.UpdateUser(ctx, "0199b7a0-0000-7000-8000-000000000000", UpdateUserInput{Name: &name})
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestService_DeleteUser verifies the full teardown: cached session principals
are purged, the user's sessions stop resolving, and a second delete is a 404.
*/
func TestService_DeleteUser(t *testing.T) {
	fixture := newAccountFixture()
	ctx := context.Background()

	user, session, err := fixture.authService.SignUp(ctx, auth.SignUpInput{
		Name: "Target", Email: "target@example.com", Password: "a strong password",
	})
	require.NoError(t, err)

	// Warm the principal cache.
	_, err = fixture.authService.ResolveSession(ctx, session.Token)
	require.NoError(t, err)
	require.NotEmpty(t, fixture.cache.entries)

	require.NoError(t, fixture.service.DeleteUser(ctx, user.ID))

	assert.Empty(t, fixture.cache.entries)
	_, err = fixture.authService.ResolveSession(ctx, session.Token)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	err = fixture.service.DeleteUser(ctx, user.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
