package api

import (
	"path/filepath"
	"time"

	"github.com/shamim-001/portfolio-backend/config"
	"github.com/shamim-001/portfolio-backend/services"
	"github.com/shamim-001/portfolio-backend/store"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(st store.Store, c map[string]string, sessions sessionManager) *routeHandlers {
	uploadDir := config.GetString(c, "UPLOAD_DIR", filepath.Join("public", "uploads"))

	mailer := services.NewMailer(
		config.GetString(c, "RESEND_API_KEY", ""),
		config.GetString(c, "RESEND_FROM_EMAIL", ""),
	)
	contactRecipient := config.GetString(c, "CONTACT_RECIPIENT", "")

	// 5 submissions per hour per IP, same budget the site always had
	contactLimiter := services.NewMemoryRateLimiter(5, time.Hour)

	return &routeHandlers{
		projectHandler:   newProjectHandler(st.ProjectRepo()),
		caseStudyHandler: newCaseStudyHandler(st.CaseStudyRepo()),
		uploadHandler:    newUploadHandler(services.NewUploadRelay(uploadDir)),
		contactHandler:   newContactHandler(mailer, contactLimiter, contactRecipient),
		adminHandler:     newAdminHandler(sessions, services.NewLoginGuard()),
	}
}
