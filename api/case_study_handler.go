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

type caseStudyHandler struct {
	responder     Responder
	logger        zerolog.Logger
	caseStudyRepo *store.CaseStudyRepo
}

func newCaseStudyHandler(caseStudyRepo *store.CaseStudyRepo) caseStudyHandler {
	logger := log.With().Str("handlerName", "caseStudyHandler").Logger()

	return caseStudyHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		caseStudyRepo: caseStudyRepo,
	}
}

// getAllCaseStudies retrieves the whole case-studies collection
func (h caseStudyHandler) getAllCaseStudies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studies, err := h.caseStudyRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, studies)
	}
}

// getCaseStudy retrieves a specific case study by ID
func (h caseStudyHandler) getCaseStudy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseStudyID, err := uuid.Parse(chi.URLParam(r, "caseStudyID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid caseStudyID"))
			return
		}

		study, err := h.caseStudyRepo.FindByID(r.Context(), caseStudyID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, study)
	}
}

// createCaseStudy creates a new case study
func (h caseStudyHandler) createCaseStudy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input store.CaseStudyInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode case study request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("case study", err))
			return
		}

		study, err := h.caseStudyRepo.Create(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, study)
	}
}

// updateCaseStudy applies a partial update to an existing case study
func (h caseStudyHandler) updateCaseStudy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseStudyID, err := uuid.Parse(chi.URLParam(r, "caseStudyID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid caseStudyID"))
			return
		}

		var patch store.CaseStudyPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode case study request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("case study", err))
			return
		}

		study, err := h.caseStudyRepo.Update(r.Context(), caseStudyID, patch)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, study)
	}
}

// deleteCaseStudy deletes a case study by ID
func (h caseStudyHandler) deleteCaseStudy() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caseStudyID, err := uuid.Parse(chi.URLParam(r, "caseStudyID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid caseStudyID"))
			return
		}

		if err := h.caseStudyRepo.Delete(r.Context(), caseStudyID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "case study deleted successfully",
		})
	}
}
