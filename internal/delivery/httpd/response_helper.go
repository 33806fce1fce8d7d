package httpd

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/RubachokBoss/lms-service/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, models.MessageResponse{
		Success: true,
		Message: message,
	})
}

var serviceErrors = []struct {
	err     error
	status  int
	message string
}{
	{service.ErrEmailExists, http.StatusBadRequest, "Email already exists"},
	{service.ErrAlreadyEnrolled, http.StatusBadRequest, "Already enrolled"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{service.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{service.ErrCourseNotFound, http.StatusNotFound, "Course not found"},
	{service.ErrMaterialNotFound, http.StatusNotFound, "Material not found"},
	{service.ErrAnnouncementNotFound, http.StatusNotFound, "Announcement not found"},
	{service.ErrAssignmentNotFound, http.StatusNotFound, "Assignment not found"},
	{service.ErrSubmissionNotFound, http.StatusNotFound, "Submission not found"},
}

// handleServiceError maps domain errors to their status codes. Anything else
// is a 500 carrying the raw error text.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, e := range serviceErrors {
		if errors.Is(err, e.err) {
			writeError(w, e.status, e.message)
			return
		}
	}

	h.logger.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("Request failed")
	writeError(w, http.StatusInternalServerError, err.Error())
}
