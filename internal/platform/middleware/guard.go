// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

// Package middleware provides the HTTP middleware chain for the Registra server.
//
// This file implements the route guard: the edge middleware that decides, for
// every inbound request, whether the caller may pass through, must be sent to
// sign-in, or must be bounced away from the auth pages.
package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/registra-app/registra/internal/platform/apperr"
	"github.com/registra-app/registra/internal/platform/constants"
	"github.com/registra-app/registra/internal/platform/ctxutil"
	"github.com/registra-app/registra/internal/platform/respond"
	"github.com/registra-app/registra/internal/platform/sec"
)

// SessionResolver resolves an opaque session token into a request principal.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the guard from the auth service
// implementation, allowing mocks to be injected during unit testing. Any
// error return — storage failure, expired session, malformed token — is
// treated identically by the guard: no session.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*sec.Principal, error)
}

// GuardPolicy holds the path classification sets consumed by the route guard.
//
// It is constructed once at process start from configuration and passed by
// value; the guard itself holds no mutable state.
type GuardPolicy struct {
	// ProtectedPrefixes are URL path prefixes that require an active session.
	ProtectedPrefixes []string

	// AuthOnlyPaths are exact-match paths (sign-in, sign-up) that are
	// inaccessible while already authenticated.
	AuthOnlyPaths []string

	// SignInPath is the redirect target for unauthenticated protected access.
	SignInPath string

	// DefaultLandingPath is where authenticated users land when they hit an
	// auth-only page.
	DefaultLandingPath string
}

// pathClass is the guard's classification of a requested path.
type pathClass int

const (
	classPublic pathClass = iota
	classProtected
	classAuthOnly
)

// classify determines which policy bucket a path falls into.
func (p GuardPolicy) classify(path string) pathClass {
	for _, exact := range p.AuthOnlyPaths {
		if path == exact {
			return classAuthOnly
		}
	}
	for _, prefix := range p.ProtectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return classProtected
		}
	}
	return classPublic
}

// Guard intercepts every inbound request before it reaches page handlers.
//
// # Flow
//  1. Classify the requested path: protected / auth-only / public.
//  2. Extract the session token from the cookie header (absence is not an error).
//  3. Resolve the session with a bounded timeout; any failure means "no session".
//  4. Apply the decision table:
//     protected  + session → pass    | protected  + none → 302 sign-in?callbackUrl=...
//     auth-only  + session → 302 landing | auth-only + none → pass
//     public     → always pass
//
// The guard never mutates session state and never surfaces an internal error
// to the browser; failures degrade to the unauthenticated branch (fail closed).
func Guard(policy GuardPolicy, resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			class := policy.classify(request.URL.Path)

			// Public paths skip session resolution entirely when no decision
			// depends on it; downstream handlers that want the principal use
			// RequireSession or resolve on demand.
			if class == classPublic {
				next.ServeHTTP(writer, request)
				return
			}

			principal := resolvePrincipal(request, resolver)

			switch class {
			case classProtected:
				if principal == nil {
					callback := url.QueryEscape(request.URL.RequestURI())
					http.Redirect(writer, request,
						policy.SignInPath+"?"+constants.GuardCallbackParam+"="+callback,
						http.StatusFound)
					return
				}
				// Attach the principal so page handlers and logging see it.
				ctx := ctxutil.WithPrincipal(request.Context(), principal)
				next.ServeHTTP(writer, request.WithContext(ctx))

			case classAuthOnly:
				if principal != nil {
					http.Redirect(writer, request, policy.DefaultLandingPath, http.StatusFound)
					return
				}
				next.ServeHTTP(writer, request)
			}
		})
	}
}

// RequireSession is the JSON-API variant of the guard.
//
// It resolves the session cookie and either injects the principal into the
// request context or aborts with a 401 envelope. Used to gate /api/v1
// management routes where a redirect would be meaningless.
func RequireSession(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := resolvePrincipal(request, resolver)
			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			ctx := ctxutil.WithPrincipal(request.Context(), principal)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// resolvePrincipal extracts the session cookie and resolves it with a bounded
// timeout. It returns nil for any failure: no cookie, malformed token,
// expired or revoked session, resolver transport error, or timeout.
func resolvePrincipal(request *http.Request, resolver SessionResolver) *sec.Principal {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(request.Context(), constants.SessionResolveTimeout)
	defer cancel()

	principal, err := resolver.ResolveSession(ctx, cookie.Value)
	if err != nil {
		return nil
	}
	return principal
}
