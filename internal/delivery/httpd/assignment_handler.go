package httpd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/RubachokBoss/lms-service/internal/models"
	"github.com/RubachokBoss/lms-service/internal/service"
)

func (h *Handler) GetCourseAssignments(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	studentID, err := optionalQueryID(r, "student_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if studentID != nil {
		assignments, err := h.assignmentService.GetStudentAssignments(r.Context(), courseID, *studentID)
		if err != nil {
			h.handleServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, assignments)
		return
	}

	assignments, err := h.assignmentService.GetCourseAssignments(r.Context(), courseID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, assignments)
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	req, closeFile, ok := h.bindAssignment(w, r)
	if !ok {
		return
	}
	defer closeFile()

	assignmentID, err := h.assignmentService.CreateAssignment(r.Context(), courseID, req)
	if errors.Is(err, service.ErrCourseNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Course with id %d not found", courseID))
		return
	}
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.CreateAssignmentResponse{
		Success:      true,
		AssignmentID: assignmentID,
		Message:      "Assignment created",
	})
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	studentID, err := optionalQueryID(r, "student_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	detail, err := h.assignmentService.GetAssignmentDetails(r.Context(), assignmentID, studentID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) UpdateAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	req, closeFile, ok := h.bindAssignment(w, r)
	if !ok {
		return
	}
	defer closeFile()

	if err := h.assignmentService.UpdateAssignment(r.Context(), assignmentID, req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeMessage(w, "Assignment updated")
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.assignmentService.DeleteAssignment(r.Context(), assignmentID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeMessage(w, "Assignment deleted")
}

func (h *Handler) bindAssignment(w http.ResponseWriter, r *http.Request) (*models.AssignmentRequest, func(), bool) {
	if err := h.parseForm(w, r); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, nil, false
	}

	dueDate, err := parseDueDate(r.FormValue("due_date"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, nil, false
	}

	file, closeFile, err := formFile(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, nil, false
	}

	req := &models.AssignmentRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		DueDate:     dueDate,
		File:        file,
	}
	if !h.validateRequest(w, req) {
		closeFile()
		return nil, nil, false
	}

	return req, closeFile, true
}
