package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shamim-001/portfolio-backend/errs"
	"github.com/shamim-001/portfolio-backend/services"
)

type adminHandler struct {
	responder Responder
	logger    zerolog.Logger
	sessions  sessionManager
	guard     *services.LoginGuard
}

func newAdminHandler(sessions sessionManager, guard *services.LoginGuard) adminHandler {
	logger := log.With().Str("handlerName", "adminHandler").Logger()

	return adminHandler{
		responder: NewResponder(logger),
		logger:    logger,
		sessions:  sessions,
		guard:     guard,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

// login checks the admin password and issues a session cookie. Failed
// attempts are counted per client IP and lock the IP out temporarily.
func (h adminHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if err := h.guard.Check(ip); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("login", err))
			return
		}

		if !h.sessions.configured() {
			h.logger.Error().Msg("Admin password and session secret are not configured")
			h.responder.WriteError(w, errs.NewInternalError("server configuration error"))
			return
		}

		if !h.sessions.verifyPassword(req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid password"))
			return
		}

		h.guard.Reset(ip)

		if err := h.sessions.issue(w, time.Now()); err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to create session", err))
			return
		}

		h.responder.WriteJSON(w, map[string]bool{"success": true})
	}
}

// logout clears the session cookie.
func (h adminHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.sessions.clear(w)
		h.responder.WriteJSON(w, map[string]bool{"success": true})
	}
}
