package httpd

import (
	"net/http"

	"github.com/RubachokBoss/lms-service/internal/models"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	userID, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.RegisterResponse{
		Success: true,
		UserID:  userID,
		Message: "User registered successfully",
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	profile, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Success: true,
		User:    profile,
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.parseForm(w, r); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	file, closeFile, err := formFile(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	defer closeFile()

	req := models.UpdateProfileRequest{
		FullName: r.FormValue("full_name"),
		File:     file,
	}
	if !h.validateRequest(w, &req) {
		return
	}

	picture, err := h.userService.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.UpdateProfileResponse{
		Success:        true,
		ProfilePicture: picture,
		Message:        "Profile updated",
	})
}
