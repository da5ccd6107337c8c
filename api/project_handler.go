package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shamim-001/portfolio-backend/errs"
	"github.com/shamim-001/portfolio-backend/store"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *store.ProjectRepo
}

func newProjectHandler(projectRepo *store.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// getAllProjects retrieves the whole projects collection
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a specific project by ID
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(r.Context(), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// createProject creates a new project
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input store.ProjectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		project, err := h.projectRepo.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject applies a partial update to an existing project
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		var patch store.ProjectPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}

		project, err := h.projectRepo.Update(r.Context(), projectID, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		if err := h.projectRepo.Delete(r.Context(), projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}
