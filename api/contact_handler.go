package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shamim-001/portfolio-backend/errs"
	"github.com/shamim-001/portfolio-backend/services"
)

// ContactMessage is a contact form submission.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type contactHandler struct {
	responder Responder
	logger    zerolog.Logger
	mailer    *services.Mailer
	limiter   services.RateLimiter
	recipient string
}

func newContactHandler(mailer *services.Mailer, limiter services.RateLimiter, recipient string) contactHandler {
	logger := log.With().Str("handlerName", "contactHandler").Logger()

	return contactHandler{
		responder: NewResponder(logger),
		logger:    logger,
		mailer:    mailer,
		limiter:   limiter,
		recipient: recipient,
	}
}

// submitContact validates a contact form submission and relays it by email.
func (h contactHandler) submitContact() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.mailer.Configured() || h.recipient == "" {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "email service not configured"))
			return
		}

		var msg ContactMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("contact", err))
			return
		}

		if err := validateContact(msg); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if !h.limiter.Allow(clientIP(r)) {
			h.responder.WriteError(w, errs.NewTooManyRequestsError("Too many contact form submissions. Please try again later."))
			return
		}

		body := fmt.Sprintf("Name: %s\nEmail: %s\nSubject: %s\nMessage:\n%s\n",
			msg.Name, msg.Email, msg.Subject, msg.Message)

		subject := "New Contact Form Submission: " + msg.Subject
		if err := h.mailer.Send(subject, body, msg.Email, []string{h.recipient}); err != nil {
			h.logger.Error().Err(err).Msg("Failed to relay contact email")
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to send message", err))
			return
		}

		h.responder.WriteJSON(w, map[string]bool{"success": true})
	}
}

type auditRequest struct {
	WebsiteURL string `json:"websiteUrl"`
}

// requestAudit relays an SEO audit request for a website by email. It
// shares the contact form's per-IP submission budget.
func (h contactHandler) requestAudit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.mailer.Configured() || h.recipient == "" {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "email service not configured"))
			return
		}

		var req auditRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("audit request", err))
			return
		}

		if parsed, err := url.Parse(req.WebsiteURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
			h.responder.WriteError(w, errs.NewValidationError([]errs.FieldError{
				{Field: "websiteUrl", Message: "Must be a valid URL"},
			}))
			return
		}

		if !h.limiter.Allow(clientIP(r)) {
			h.responder.WriteError(w, errs.NewTooManyRequestsError("Too many audit requests. Please try again later."))
			return
		}

		body := fmt.Sprintf("New SEO audit request received!\n\nWebsite URL: %s\n\nPlease review and prepare the audit report.\n",
			req.WebsiteURL)

		if err := h.mailer.Send("New SEO Audit Request", body, "", []string{h.recipient}); err != nil {
			h.logger.Error().Err(err).Msg("Failed to relay audit request email")
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to send message", err))
			return
		}

		h.responder.WriteJSON(w, map[string]bool{"success": true})
	}
}

func validateContact(msg ContactMessage) error {
	var fields []errs.FieldError
	if len(strings.TrimSpace(msg.Name)) < 2 {
		fields = append(fields, errs.FieldError{Field: "name", Message: "Name must be at least 2 characters"})
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		fields = append(fields, errs.FieldError{Field: "email", Message: "Invalid email address"})
	}
	if len(strings.TrimSpace(msg.Subject)) < 5 {
		fields = append(fields, errs.FieldError{Field: "subject", Message: "Subject must be at least 5 characters"})
	}
	if len(strings.TrimSpace(msg.Message)) < 10 {
		fields = append(fields, errs.FieldError{Field: "message", Message: "Message must be at least 10 characters"})
	}

	if len(fields) > 0 {
		return errs.NewValidationError(fields)
	}
	return nil
}
