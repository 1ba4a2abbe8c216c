// Package handlers exposes the lesson builder over HTTP
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/lessonbuilder/backend/internal/dataurl"
	"github.com/lessonbuilder/backend/internal/document"
	"github.com/lessonbuilder/backend/internal/export"
	"github.com/lessonbuilder/backend/internal/intake"
	"github.com/lessonbuilder/backend/internal/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler functionality
type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a JSON response
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// respondHTML sends an HTML fragment or page
func (h *BaseHandler) respondHTML(w http.ResponseWriter, status int, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(html)); err != nil {
		h.logger.Error("failed to write HTML response", zap.Error(err))
	}
}

// respondFile sends a download. Inline files are shown by the browser instead of saved.
func (h *BaseHandler) respondFile(w http.ResponseWriter, filename, contentType string, data []byte, inline bool) {
	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write file response", zap.String("filename", filename), zap.Error(err))
	}
}

// decodeJSON reads the request body into v
func (h *BaseHandler) decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// respondServiceError maps a service error onto a status code.
// Validation messages are shown to the user as is.
func (h *BaseHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve       *intake.ValidationError
		tooLarge *http.MaxBytesError
		badBody  *badRequestError
	)
	switch {
	case errors.As(err, &ve):
		h.respondJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, document.ErrSectionNotFound):
		h.respondError(w, http.StatusNotFound, "section not found")
	case errors.Is(err, document.ErrBlockNotFound):
		h.respondError(w, http.StatusNotFound, "block not found")
	case errors.Is(err, document.ErrProtectedSection):
		h.respondError(w, http.StatusConflict, "this section cannot be deleted")
	case errors.Is(err, document.ErrTypeChange):
		h.respondError(w, http.StatusUnprocessableEntity, intake.MsgTypeMismatch)
	case errors.Is(err, document.ErrInvalidPatch):
		h.respondError(w, http.StatusUnprocessableEntity, "invalid block fields")
	case errors.Is(err, export.ErrInvalidSaveFile):
		h.respondError(w, http.StatusBadRequest, "The file is not a valid lesson save file.")
	case errors.Is(err, dataurl.ErrEmptyFile),
		errors.Is(err, dataurl.ErrFileTooLarge),
		errors.Is(err, dataurl.ErrUnsupportedType):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &tooLarge):
		h.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.As(err, &badBody):
		h.respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
