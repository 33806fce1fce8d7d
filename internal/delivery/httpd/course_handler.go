package httpd

import (
	"net/http"

	"github.com/RubachokBoss/lms-service/internal/models"
)

func (h *Handler) GetAllCourses(w http.ResponseWriter, r *http.Request) {
	userID, err := optionalQueryID(r, "user_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	courses, err := h.courseService.ListCourses(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	instructorID, err := requiredQueryID(r, "instructor_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var req models.CreateCourseRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	courseID, err := h.courseService.CreateCourse(r.Context(), instructorID, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.CreateCourseResponse{
		Success:  true,
		CourseID: courseID,
		Message:  "Course created",
	})
}

func (h *Handler) GetInstructorCourses(w http.ResponseWriter, r *http.Request) {
	instructorID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	courses, err := h.courseService.GetInstructorCourses(r.Context(), instructorID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) GetStudentCourses(w http.ResponseWriter, r *http.Request) {
	studentID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	courses, err := h.courseService.GetStudentCourses(r.Context(), studentID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, courses)
}

func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	userID, err := optionalQueryID(r, "user_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	course, err := h.courseService.GetCourse(r.Context(), courseID, userID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, course)
}

func (h *Handler) EnrollCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	studentID, err := requiredQueryID(r, "student_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.courseService.Enroll(r.Context(), courseID, studentID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeMessage(w, "Enrolled successfully")
}
