// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

/*
Package account provides the HTTP delivery layer for administrative user
management.

It implements the RESTful interface the dashboard's user-management screen
talks to: create, list, inspect, update, and delete users.

# Security

All endpoints in this package require an active authentication session,
enforced by the RequireSession middleware at mount time.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/registra-app/registra/internal/platform/request"
	"github.com/registra-app/registra/internal/platform/respond"
	"github.com/registra-app/registra/internal/platform/validate"
	"github.com/registra-app/registra/internal/users/auth"
)

// Handler implements the HTTP layer for user administration.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with the user management endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createUser)
	router.Get("/", handler.listUsers)
	router.Get("/{id}", handler.getUser)
	router.Put("/{id}", handler.updateUser)
	router.Delete("/{id}", handler.deleteUser)

	return router
}

// # User Management Endpoints

// createUserRequest defines the expected JSON payload for user creation.
type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
POST /api/v1/users.

Description: Provisions a new user with a password credential. Does not sign
the new user in.

Request:
  - Body: createUserRequest

Response:
  - 201: message: "User created successfully"
  - 400: ErrInvalidJSON/Validation: Missing or malformed fields
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) createUser(writer http.ResponseWriter, request *http.Request) {
	var input createUserRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldName, input.Name).
		MaxLen(auth.FieldName, input.Name, 200).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		Required(auth.FieldPassword, input.Password).
		MinLen(auth.FieldPassword, input.Password, auth.MinPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.accountService.CreateUser(request.Context(), input.Name, input.Email, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.CreatedMessage(writer, "User created successfully")
}

/*
GET /api/v1/users.

Description: Lists every user, oldest first.

Response:
  - 200: []User: All user records
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.accountService.ListUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, users)
}

/*
GET /api/v1/users/{id}.

Description: Retrieves a single user record.

Response:
  - 200: User: Hydrated record
  - 404: ErrNotFound: Unknown ID
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	validator := &validate.Validator{}
	validator.UUID("id", id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetUser(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// updateUserRequest defines the expected JSON payload for user updates.
type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

/*
PUT /api/v1/users/{id}.

Description: Updates a user's name and/or email.

Request:
  - Body: updateUserRequest (partial)

Response:
  - 200: User: The updated record
  - 400: ErrInvalidJSON/Validation: Invalid input
  - 404: ErrNotFound: Unknown ID
  - 409: ErrConflict: Email already in use by another user
*/
func (handler *Handler) updateUser(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input updateUserRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.UUID("id", id)
	if input.Name != nil {
		validator.Required(auth.FieldName, *input.Name).MaxLen(auth.FieldName, *input.Name, 200)
	}
	if input.Email != nil {
		validator.Required(auth.FieldEmail, *input.Email).Email(auth.FieldEmail, *input.Email)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateUser(request.Context(), id, UpdateUserInput{
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/v1/users/{id}.

Description: Deletes a user. Their sessions and credential rows are removed
with them, and any cached session state is evicted first.

Response:
  - 200: message: "User deleted successfully"
  - 404: ErrNotFound: Unknown ID
*/
func (handler *Handler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	validator := &validate.Validator{}
	validator.UUID("id", id)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteUser(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "User deleted successfully")
}
