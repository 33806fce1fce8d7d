package httpd

import (
	"net/http"

	"github.com/RubachokBoss/lms-service/internal/models"
)

func (h *Handler) GetCourseMaterials(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	materials, err := h.materialService.GetCourseMaterials(r.Context(), courseID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, materials)
}

func (h *Handler) UploadMaterial(w http.ResponseWriter, r *http.Request) {
	courseID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	req, closeFile, ok := h.bindMaterial(w, r)
	if !ok {
		return
	}
	defer closeFile()

	if req.File == nil {
		writeError(w, http.StatusUnprocessableEntity, "file is required")
		return
	}

	materialID, err := h.materialService.UploadMaterial(r.Context(), courseID, req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.CreateMaterialResponse{
		Success:    true,
		MaterialID: materialID,
		Message:    "Material uploaded",
	})
}

func (h *Handler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	materialID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	material, err := h.materialService.GetMaterial(r.Context(), materialID)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, material)
}

func (h *Handler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	materialID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	req, closeFile, ok := h.bindMaterial(w, r)
	if !ok {
		return
	}
	defer closeFile()

	if err := h.materialService.UpdateMaterial(r.Context(), materialID, req); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeMessage(w, "Material updated")
}

func (h *Handler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	materialID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.materialService.DeleteMaterial(r.Context(), materialID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	writeMessage(w, "Material deleted")
}

func (h *Handler) bindMaterial(w http.ResponseWriter, r *http.Request) (*models.MaterialRequest, func(), bool) {
	if err := h.parseForm(w, r); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, nil, false
	}

	file, closeFile, err := formFile(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return nil, nil, false
	}

	req := &models.MaterialRequest{
		Title: r.FormValue("title"),
		File:  file,
	}
	if !h.validateRequest(w, req) {
		closeFile()
		return nil, nil, false
	}

	return req, closeFile, true
}
