package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// setupRoutes sets up the public and admin route groups
func setupRoutes(r chi.Router, handlers *routeHandlers, sessions sessionManager, startupTime time.Time) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public read endpoints
		r.Get("/api/projects", handlers.projectHandler.getAllProjects())
		r.Get("/api/projects/{projectID}", handlers.projectHandler.getProject())
		r.Get("/api/case-studies", handlers.caseStudyHandler.getAllCaseStudies())
		r.Get("/api/case-studies/{caseStudyID}", handlers.caseStudyHandler.getCaseStudy())

		// Contact form and audit requests
		r.Post("/api/contact", handlers.contactHandler.submitContact())
		r.Post("/api/request-audit", handlers.contactHandler.requestAudit())

		// Admin session endpoints
		r.Post("/api/admin/login", handlers.adminHandler.login())
		r.Post("/api/admin/logout", handlers.adminHandler.logout())

		r.Get("/health", healthCheck(startupTime))

		// Mutating endpoints require an admin session
		r.Group(func(r chi.Router) {
			r.Use(sessions.requireAdmin)

			r.Post("/api/projects", handlers.projectHandler.createProject())
			r.Put("/api/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/api/projects/{projectID}", handlers.projectHandler.deleteProject())

			r.Post("/api/case-studies", handlers.caseStudyHandler.createCaseStudy())
			r.Put("/api/case-studies/{caseStudyID}", handlers.caseStudyHandler.updateCaseStudy())
			r.Delete("/api/case-studies/{caseStudyID}", handlers.caseStudyHandler.deleteCaseStudy())

			r.Post("/api/upload", handlers.uploadHandler.uploadImage())
		})
	})
}

func healthCheck(startupTime time.Time) http.HandlerFunc {
	responder := NewResponder(log.Logger)
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, map[string]any{
			"status": "ok",
			"uptime": time.Since(startupTime).String(),
		})
	}
}
