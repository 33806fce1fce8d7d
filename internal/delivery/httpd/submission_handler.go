package httpd

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/RubachokBoss/lms-service/internal/models"
)

func (h *Handler) GetAssignmentSubmissions(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	submissions, err := h.submissionService.GetAssignmentSubmissions(r.Context(), assignmentID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, submissions)
}

func (h *Handler) SubmitAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.parseForm(w, r); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	raw := r.FormValue("student_id")
	studentID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil && raw != "" {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid student_id: %q", raw))
		return
	}

	file, closeFile, err := formFile(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	defer closeFile()

	req := models.SubmitRequest{
		StudentID: studentID,
		Content:   r.FormValue("content"),
		File:      file,
	}
	if !h.validateRequest(w, &req) {
		return
	}

	submissionID, err := h.submissionService.Submit(r.Context(), assignmentID, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SubmitResponse{
		Success:      true,
		SubmissionID: submissionID,
		Message:      "Assignment submitted",
	})
}

func (h *Handler) GradeSubmission(w http.ResponseWriter, r *http.Request) {
	submissionID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var req models.GradeRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.submissionService.GradeSubmission(r.Context(), submissionID, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeMessage(w, "Submission graded")
}
