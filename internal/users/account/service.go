// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/registra-app/registra/internal/users/auth"
)

// # Service Layer

// Service orchestrates administrative user management.
//
// Creation and deletion delegate to the auth domain so the credential and
// session invariants live in exactly one place: creation reuses the atomic
// user+credential transaction, deletion purges cached principals before the
// storage cascade removes the rows.
type Service struct {
	userRepository auth.UserRepository
	authService    *auth.Service
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	userRepo auth.UserRepository,
	authService *auth.Service,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		authService:    authService,
		logger:         logger,
	}
}

// # User Administration

/*
CreateUser provisions a new user from the admin dialog.

Description: Hashes the password and writes the user with its credential
account in one transaction. Unlike self-service sign-up, no session is issued:
the new user signs in on their own.

Parameters:
  - context: context.Context
  - name: string
  - email: string
  - password: string

Returns:
  - *auth.User: Created entity
  - error: apperr.Conflict on duplicate email, or storage errors
*/
func (service *Service) CreateUser(context context.Context, name, email, password string) (*auth.User, error) {
	return service.authService.CreateUser(context, name, email, password)
}

/*
ListUsers returns every user ordered by creation time.

Parameters:
  - context: context.Context

Returns:
  - []*auth.User: All users, oldest first
  - error: Retrieval failures
*/
func (service *Service) ListUsers(context context.Context) ([]*auth.User, error) {
	users, err := service.userRepository.List(context)
	if err != nil {
		return nil, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, nil
}

/*
GetUser retrieves a single user by ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *auth.User: Hydrated entity
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) GetUser(context context.Context, id string) (*auth.User, error) {
	return service.userRepository.FindByID(context, id)
}

// UpdateUserInput defines the mutable subset of user fields for admin edits.
type UpdateUserInput struct {
	Name  *string
	Email *string
}

/*
UpdateUser applies a partial update to a user's profile fields.

Description: Fetches the current state, overlays the provided fields, and
persists. An email change collides with the same unique index that guards
sign-up, so a duplicate maps to apperr.Conflict.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateUserInput

Returns:
  - *auth.User: The updated entity
  - error: apperr.NotFound, apperr.Conflict, or storage failures
*/
func (service *Service) UpdateUser(context context.Context, id string, input UpdateUserInput) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}

	if input.Email != nil {
		user.Email = *input.Email
	}

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.String("user_id", id))
	return user, nil
}

/*
DeleteUser removes a user and everything hanging off them.

Description: Cached session principals are purged BEFORE the row delete so the
cascade cannot leave a still-authorizing cache entry behind; credential and
session rows then go with the user via ON DELETE CASCADE.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound if absent, or storage failures
*/
func (service *Service) DeleteUser(context context.Context, id string) error {

	// Existence check up front so a 404 never triggers a cache purge.
	if _, err := service.userRepository.FindByID(context, id); err != nil {
		return err
	}

	if err := service.authService.PurgeUserSessions(context, id); err != nil {
		return fmt.Errorf("account_service_delete_purge_failed: %w", err)
	}

	if err := service.userRepository.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("user_deleted", slog.String("user_id", id))
	return nil
}
