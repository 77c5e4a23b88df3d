// Copyright (c) 2026 Registra. All rights reserved.
// Author: dev@registra.app

package api

import (
	"fmt"
	"html"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/registra-app/registra/internal/platform/config"
	requestutil "github.com/registra-app/registra/internal/platform/request"
)

// registerPageRoutes mounts the browser-facing page tree behind the guard.
//
// These are minimal server-rendered placeholders: the production dashboard UI
// is a separate SPA served from a CDN. They exist so the guard's redirect
// targets are real, navigable pages in every environment.
func registerPageRoutes(router chi.Router, cfg *config.Config) {
	router.Get("/", func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, cfg.DefaultLandingPath, http.StatusFound)
	})

	router.Get(cfg.SignInPath, func(writer http.ResponseWriter, request *http.Request) {
		callback := request.URL.Query().Get("callbackUrl")
		extra := ""
		if callback != "" {
			extra = fmt.Sprintf("<p>You will be returned to %s.</p>", html.EscapeString(callback))
		}
		renderPage(writer, "Sign in", "<h1>Sign in</h1>"+extra)
	})

	router.Get("/sign-up", func(writer http.ResponseWriter, request *http.Request) {
		renderPage(writer, "Sign up", "<h1>Create your account</h1>")
	})

	router.Get("/dashboard/*", func(writer http.ResponseWriter, request *http.Request) {
		greeting := "<h1>Dashboard</h1>"
		if principal := requestutil.Principal(request); principal != nil {
			greeting = fmt.Sprintf("<h1>Dashboard</h1><p>Signed in as %s.</p>", html.EscapeString(principal.Name))
		}
		renderPage(writer, "Dashboard", greeting)
	})
}

func renderPage(writer http.ResponseWriter, title, body string) {
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(writer, "<!DOCTYPE html><html><head><title>%s · Registra</title></head><body>%s</body></html>", html.EscapeString(title), body)
}
