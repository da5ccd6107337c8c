package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shamim-001/portfolio-backend/errs"
	"github.com/shamim-001/portfolio-backend/services"
)

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	relay     *services.UploadRelay
}

func newUploadHandler(relay *services.UploadRelay) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		relay:     relay,
	}
}

// uploadImage accepts a multipart form with a single "file" field and
// relays it to the upload directory.
func (h uploadHandler) uploadImage() http.HandlerFunc {
	// headroom for the multipart framing around the payload
	const maxFormSize = services.MaxUploadSize + 1024*1024

	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)

		file, header, err := r.FormFile("file")
		if err != nil {
			// an oversized body trips the MaxBytesReader inside FormFile,
			// before the relay's own size check can run
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(services.MaxUploadSize))
				return
			}
			h.responder.WriteError(w, errs.NewBadRequestError("no file provided or invalid form data"))
			return
		}
		defer file.Close()

		result, err := h.relay.Save(header.Filename, header.Header.Get("Content-Type"), header.Size, file)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().
			Str("fileName", result.FileName).
			Int64("size", result.Size).
			Msg("Stored uploaded image")

		h.responder.WriteJSON(w, result)
	}
}
