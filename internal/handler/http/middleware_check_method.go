// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-pass-vault/internal/service"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns a handler for [chi.Mux.MethodNotAllowed].
//
// A request whose path exists but whose method is not registered for it is
// answered with 404 and a not_found body instead of chi's default 405, so
// callers cannot probe which methods a route accepts. Requests the router
// can still match are forwarded to it unchanged.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			router.ServeHTTP(w, r)
			return
		}

		writeError(w, r, service.ErrNotFound)
	}
}

// notFound answers unknown paths with the same body as unknown methods.
func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, service.ErrNotFound)
}
