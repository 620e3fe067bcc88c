package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public site endpoints and the authenticated admin
// endpoints.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public endpoints consumed by the site
		r.Get("/api/health", handlers.healthHandler.status())
		r.Get("/api/projects", handlers.projectHandler.getAllProjects())
		r.Get("/api/projects/selected", handlers.projectHandler.getSelectedProjects())
		r.Get("/api/projects/{projectID}", handlers.projectHandler.getProject())
		r.Post("/api/auth/login", handlers.authHandler.login())

		// Admin endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/api/projects", handlers.projectHandler.createProject())
			r.Put("/api/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/api/projects/{projectID}", handlers.projectHandler.deleteProject())
			r.Post("/api/projects/selected", handlers.projectHandler.setSelectedProjects())
			r.Post("/api/upload", handlers.uploadHandler.uploadImage())
		})
	})
}
