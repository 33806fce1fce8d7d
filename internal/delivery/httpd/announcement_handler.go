package httpd

import (
	"net/http"

	"github.com/RubachokBoss/lms-service/internal/models"
)

func (h *Handler) GetCourseAnnouncements(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	announcements, err := h.announcementService.GetCourseAnnouncements(r.Context(), courseID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, announcements)
}

func (h *Handler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var req models.AnnouncementRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	announcementID, err := h.announcementService.CreateAnnouncement(r.Context(), courseID, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.CreateAnnouncementResponse{
		Success:        true,
		AnnouncementID: announcementID,
		Message:        "Announcement created",
	})
}

func (h *Handler) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcementID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	announcement, err := h.announcementService.GetAnnouncement(r.Context(), announcementID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, announcement)
}

func (h *Handler) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcementID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var req models.AnnouncementRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.announcementService.UpdateAnnouncement(r.Context(), announcementID, &req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeMessage(w, "Announcement updated")
}

func (h *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcementID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.announcementService.DeleteAnnouncement(r.Context(), announcementID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeMessage(w, "Announcement deleted")
}
