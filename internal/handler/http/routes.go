package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, withLogging)

	if len(h.cfg.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type", "Content-Encoding", traceIDHeader},
			ExposedHeaders: []string{traceIDHeader},
			MaxAge:         300,
		}))
	}
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	router.Use(middleware.Compress(5, "application/json", "text/plain"))
	router.Use(withGZipRequest)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/users", h.signUp)
		r.Post("/users/login", h.login)
		r.Get("/users/{id}/avatar", h.getAvatar)
		r.Get("/version", h.getServerVersion)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/users/logout", h.logout)
		r.Post("/users/logoutAll", h.logoutAll)
		r.Get("/users/me", h.me)
		r.Patch("/users/me", h.updateMe)
		r.Delete("/users/me", h.deleteMe)
		r.Post("/users/me/avatar", h.uploadAvatar)
		r.Delete("/users/me/avatar", h.deleteAvatar)

		r.Post("/tasks", h.createTask)
		r.Get("/tasks", h.listTasks)
		r.Get("/tasks/{id}", h.getTask)
		r.Patch("/tasks/{id}", h.updateTask)
		r.Delete("/tasks/{id}", h.deleteTask)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
