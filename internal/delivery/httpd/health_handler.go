package httpd

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/RubachokBoss/lms-service/internal/storage"
)

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "lms-service",
		"database":  "up",
		"timestamp": time.Now().UTC(),
	}

	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Warn().Err(err).Msg("Database health check failed")
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
		response["database"] = "down"
	}

	writeJSON(w, status, response)
}

// ServeUpload streams a stored file back by the path saved in the database.
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	publicPath := h.uploadsPrefix + "/" + chi.URLParam(r, "*")

	content, size, err := h.files.Open(r.Context(), publicPath)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	defer content.Close()

	contentType := mime.TypeByExtension(path.Ext(publicPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, content); err != nil {
		h.logger.Warn().Err(err).Str("path", publicPath).Msg("Failed to stream file")
	}
}
