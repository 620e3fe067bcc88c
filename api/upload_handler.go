package api

import (
	"io"
	"net/http"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes caps image uploads at 5 MiB.
const maxUploadBytes = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	blobStore *services.BlobStore
}

func newUploadHandler(blobStore *services.BlobStore) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blobStore: blobStore,
	}
}

// uploadImage accepts a multipart "file" field, pushes it to blob storage,
// and returns the public URL for use as a project image reference.
func (h uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.blobStore == nil {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "upload service not configured"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("file exceeds the 5MB upload limit or is not valid multipart data"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read uploaded file"))
			return
		}

		contentType := http.DetectContentType(data)
		if !allowedImageTypes[contentType] {
			h.responder.WriteError(w, errs.NewInvalidFieldError("file", "must be a png, jpeg, gif, or webp image"))
			return
		}

		url, err := h.blobStore.UploadImage(r.Context(), header.Filename, contentType, data)
		if err != nil {
			h.logger.Error().Err(err).Str("filename", header.Filename).Msg("blob upload failed")
			h.responder.WriteError(w, errs.NewInternalError("failed to store uploaded file"))
			return
		}

		h.responder.WriteSuccess(w, http.StatusOK, map[string]any{
			"url": url,
		})
	}
}
