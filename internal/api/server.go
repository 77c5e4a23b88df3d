// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

Two route surfaces hang off the same router: the browser-facing page tree
(guarded by redirect semantics) and the JSON API under /api/v1 (guarded by
401 semantics where authentication is required).
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/registra-app/registra/internal/platform/config"
	"github.com/registra-app/registra/internal/platform/constants"
	"github.com/registra-app/registra/internal/platform/middleware"
	"github.com/registra-app/registra/internal/records/student"
	"github.com/registra-app/registra/internal/records/teacher"
	"github.com/registra-app/registra/internal/users/account"
	"github.com/registra-app/registra/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles the authentication routes (sign-up, sign-in, sign-out,
	// session resolution).
	Auth *auth.Handler

	// Account handles administrative user management.
	Account *account.Handler

	// Student handles the student records domain.
	Student *student.Handler

	// Teacher handles the faculty records domain.
	Teacher *teacher.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, resolver middleware.SessionResolver, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Page Surface
	// The browser-facing tree. The guard classifies every path (protected,
	// auth-only, public) and answers with redirects, never JSON errors.
	policy := middleware.GuardPolicy{
		ProtectedPrefixes:  cfg.ProtectedPrefixes,
		AuthOnlyPaths:      cfg.AuthOnlyPaths,
		SignInPath:         cfg.SignInPath,
		DefaultLandingPath: cfg.DefaultLandingPath,
	}

	r.Group(func(pages chi.Router) {
		pages.Use(middleware.Guard(policy, resolver))
		registerPageRoutes(pages, cfg)
	})

	// # Application API
	// Domain-specific route groups mounted under the versioned prefix. The
	// auth surface is public (it mints sessions); everything else requires one.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireSession(resolver))

			protected.Mount("/users", h.Account.Routes())
			protected.Mount("/students", h.Student.Routes())
			protected.Mount("/teachers", h.Teacher.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
