package api

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rmedina-dev/inkwell-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// maxUploadSize caps blog image uploads at 10MB.
const maxUploadSize = 10 << 20

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploader  imageUploader
}

func newUploadHandler(uploader imageUploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploader:  uploader,
	}
}

// uploadImage accepts a multipart "image" part, stores it, and returns the
// public URL for use in a blog's image field. Unavailable when no object
// store is configured.
func (h uploadHandler) uploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.uploader == nil {
			h.responder.WriteError(w, errs.NewApiErr(http.StatusServiceUnavailable, "image uploads are not configured"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("image exceeds the maximum upload size"))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("image"))
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			h.responder.WriteError(w, errs.NewInvalidFieldError("image", "only image uploads are accepted"))
			return
		}

		key := "blog-images/" + uuid.New().String() + strings.ToLower(filepath.Ext(header.Filename))
		url, err := h.uploader.Upload(r.Context(), key, contentType, file)
		if err != nil {
			h.logger.Error().Err(err).Str("key", key).Msg("image upload failed")
			h.responder.WriteError(w, errs.NewInternalError("image upload failed"))
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, map[string]interface{}{
			"message": "Image uploaded successfully",
			"url":     url,
		})
	}
}
