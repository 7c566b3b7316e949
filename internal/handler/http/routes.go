package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{"Authorization", traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Route("/auth", func(r chi.Router) {
		// routes without authorization
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		if h.services.IdentityResolver != nil {
			r.Get("/oauth/callback", h.oauthCallback)
		}

		// token only, the master password may still be missing
		r.Group(func(r chi.Router) {
			r.Use(h.identify)
			r.Post("/verify-password", h.verifyLoginPassword)
			r.Post("/setup-master-password", h.setupMasterPassword)
			r.Get("/check-master-password", h.checkMasterPassword)
		})
	})

	router.Route("/passwords", func(r chi.Router) {
		r.Use(h.authorize)
		r.Post("/", h.upsertCredential)
		r.Get("/", h.listCredentials)
		r.Put("/{id}", h.updateCredential)
		r.Delete("/{id}", h.deleteCredential)
		r.Get("/{id}/history", h.credentialHistory)
		r.Post("/{id}/verify", h.verifyCredential)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
