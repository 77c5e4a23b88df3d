// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle — from account
creation to session issuance and sign-out.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Issues and clears the HTTP-only session cookie.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/registra-app/registra/internal/platform/apperr"
	"github.com/registra-app/registra/internal/platform/constants"
	"github.com/registra-app/registra/internal/platform/middleware"
	requestutil "github.com/registra-app/registra/internal/platform/request"
	"github.com/registra-app/registra/internal/platform/respond"
	"github.com/registra-app/registra/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (sign-up, sign-in,
// sign-out) and the session resolution endpoint consumed by first-party
// clients.
type Handler struct {
	authService *Service

	// secureCookies controls the Secure attribute on the session cookie.
	// True in production; false allows plain-HTTP local development.
	secureCookies bool
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{authService: service, secureCookies: secureCookies}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /sign-up     : Creates an account and signs the browser in.
//   - POST /sign-in     : Authenticates and issues the session cookie.
//   - POST /sign-out    : Revokes the session and clears the cookie.
//   - GET  /get-session : Returns the principal for the current cookie.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/sign-up", handler.signUp)
	router.Post("/sign-in", handler.signIn)
	router.Post("/sign-out", handler.signOut)
	router.Get("/get-session", handler.getSession)

	return router
}

// # Request Payloads

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

/*
signUp handles self-service account creation.

POST /api/v1/auth/sign-up

Description: Validates input, persists a new user with a credential account,
and issues a session cookie so the browser lands authenticated.

Request:
  - Body: signUpRequest (Name, Email, Password)

Response:
  - 201: User: Created user profile (session cookie set)
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email already registered
*/
func (handler *Handler) signUp(writer http.ResponseWriter, request *http.Request) {
	var input signUpRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 200).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, session, err := handler.authService.SignUp(request.Context(), SignUpInput{
		Name:      input.Name,
		Email:     input.Email,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, session)
	respond.Created(writer, user)
}

/*
signIn authenticates a user and establishes a session.

POST /api/v1/auth/sign-in

Description: Verifies credentials and injects the opaque session token into an
HTTP-only cookie. The "remember" flag extends the session lifetime to 30 days.

Request:
  - Body: signInRequest (Email, Password, Remember)

Response:
  - 200: User: Authenticated profile (session cookie set)
  - 401: ErrUnauthorized: Invalid credentials
*/
func (handler *Handler) signIn(writer http.ResponseWriter, request *http.Request) {
	var input signInRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, session, err := handler.authService.SignIn(request.Context(), SignInInput{
		Email:     input.Email,
		Password:  input.Password,
		Remember:  input.Remember,
		UserAgent: request.UserAgent(),
		IPAddress: middleware.RealIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, session)
	respond.OK(writer, user)
}

/*
signOut terminates the current user session.

POST /api/v1/auth/sign-out

Description: Invalidates the session (if any) and clears the cookie from the
client. Idempotent: signing out without a session still returns 204.

Response:
  - 204: No Content: Session terminated
*/
func (handler *Handler) signOut(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.SessionCookieName)

	if err == nil && cookie.Value != "" {
		if err := handler.authService.InvalidateSession(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	handler.clearSessionCookie(writer)
	respond.NoContent(writer)
}

/*
getSession returns the principal bound to the current session cookie.

GET /api/v1/auth/get-session

Description: The session resolution endpoint. First-party clients (and the
original loopback-fetch pattern) use it to hydrate the signed-in user.

Response:
  - 200: Principal: Current session identity
  - 401: ErrUnauthorized: Missing, malformed, expired, or revoked session
*/
func (handler *Handler) getSession(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("No active session"))
		return
	}

	principal, err := handler.authService.ResolveSession(request.Context(), cookie.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, principal)
}

// # Cookie Helpers

// setSessionCookie writes the opaque session token as an HTTP-only,
// SameSite=Lax cookie. Lax (not Strict) so the guard's own redirects from
// external links still carry the session.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, session *IssuedSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    session.Token,
		Path:     constants.SessionCookiePath,
		Expires:  session.ExpiresAt,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie expires the session cookie on the client.
func (handler *Handler) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
