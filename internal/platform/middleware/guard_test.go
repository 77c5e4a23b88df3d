// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registra-app/registra/internal/platform/constants"
	"github.com/registra-app/registra/internal/platform/ctxutil"
	"github.com/registra-app/registra/internal/platform/middleware"
	"github.com/registra-app/registra/internal/platform/sec"
)

// stubResolver maps tokens to principals; unknown tokens return failErr.
type stubResolver struct {
	sessions map[string]*sec.Principal
	failErr  error
}

func (s *stubResolver) ResolveSession(_ context.Context, token string) (*sec.Principal, error) {
	if principal, ok := s.sessions[token]; ok {
		return principal, nil
	}
	if s.failErr != nil {
		return nil, s.failErr
	}
	return nil, errors.New("invalid session")
}

func testPolicy() middleware.GuardPolicy {
	return middleware.GuardPolicy{
		ProtectedPrefixes:  []string{"/dashboard"},
		AuthOnlyPaths:      []string{"/sign-in", "/sign-up"},
		SignInPath:         "/sign-in",
		DefaultLandingPath: "/dashboard/default",
	}
}

func activeResolver() *stubResolver {
	return &stubResolver{
		sessions: map[string]*sec.Principal{
			"valid-token": {
				UserID:    "user-1",
				Email:     "admin@example.edu",
				ExpiresAt: time.Now().Add(time.Hour),
			},
		},
	}
}

// serveThrough runs a request through the guard with a terminal 200 handler.
func serveThrough(t *testing.T, resolver middleware.SessionResolver, request *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	terminal := http.HandlerFunc(func(writer http.ResponseWriter, r *http.Request) {
		writer.WriteHeader(http.StatusOK)
	})

	recorder := httptest.NewRecorder()
	middleware.Guard(testPolicy(), resolver)(terminal).ServeHTTP(recorder, request)
	return recorder
}

/*
TestGuard_ProtectedWithoutSession verifies the redirect to sign-in with the
intended destination preserved as callbackUrl.
*/
func TestGuard_ProtectedWithoutSession(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/dashboard/default", nil)
	recorder := serveThrough(t, activeResolver(), request)

	require.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/sign-in?callbackUrl=%2Fdashboard%2Fdefault", recorder.Header().Get("Location"))
}

/*
TestGuard_ProtectedWithActiveSession verifies pass-through and context injection.
*/
func TestGuard_ProtectedWithActiveSession(t *testing.T) {
	var seen *sec.Principal
	terminal := http.HandlerFunc(func(writer http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetPrincipal(r.Context())
		writer.WriteHeader(http.StatusOK)
	})

	request := httptest.NewRequest(http.MethodGet, "/dashboard/students", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "valid-token"})

	recorder := httptest.NewRecorder()
	middleware.Guard(testPolicy(), activeResolver())(terminal).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.UserID)
}

/*
TestGuard_AuthOnlyWithSession verifies authenticated users are bounced from
sign-in to the default landing page.
*/
func TestGuard_AuthOnlyWithSession(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/sign-in", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "valid-token"})

	recorder := serveThrough(t, activeResolver(), request)

	require.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/dashboard/default", recorder.Header().Get("Location"))
}

/*
TestGuard_AuthOnlyWithoutSession verifies anonymous users reach the sign-in page.
*/
func TestGuard_AuthOnlyWithoutSession(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/sign-in", nil)
	recorder := serveThrough(t, activeResolver(), request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestGuard_PublicPath verifies public paths pass with or without a session.
*/
func TestGuard_PublicPath(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/about", nil)
	recorder := serveThrough(t, activeResolver(), request)
	assert.Equal(t, http.StatusOK, recorder.Code)

	withCookie := httptest.NewRequest(http.MethodGet, "/about", nil)
	withCookie.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "valid-token"})
	recorder = serveThrough(t, activeResolver(), withCookie)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestGuard_ResolverFailureFailsClosed verifies that a transport failure while
resolving the session denies protected access instead of admitting the request.
*/
func TestGuard_ResolverFailureFailsClosed(t *testing.T) {
	broken := &stubResolver{failErr: errors.New("connection refused")}

	request := httptest.NewRequest(http.MethodGet, "/dashboard/default", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "some-token"})

	recorder := serveThrough(t, broken, request)

	require.Equal(t, http.StatusFound, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Location"), "/sign-in?callbackUrl=")
}

/*
TestGuard_MalformedCookie verifies garbage tokens are treated as "no session".
*/
func TestGuard_MalformedCookie(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/dashboard/default", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "%%%garbage%%%"})

	recorder := serveThrough(t, activeResolver(), request)
	assert.Equal(t, http.StatusFound, recorder.Code)
}

/*
TestRequireSession verifies the JSON-API gate returns 401 without a session
and injects the principal with one.
*/
func TestRequireSession(t *testing.T) {
	terminal := http.HandlerFunc(func(writer http.ResponseWriter, r *http.Request) {
		require.NotNil(t, ctxutil.GetPrincipal(r.Context()))
		writer.WriteHeader(http.StatusOK)
	})

	// Without cookie → 401
	request := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	recorder := httptest.NewRecorder()
	middleware.RequireSession(activeResolver())(terminal).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	// With active session → 200
	request = httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "valid-token"})
	recorder = httptest.NewRecorder()
	middleware.RequireSession(activeResolver())(terminal).ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
