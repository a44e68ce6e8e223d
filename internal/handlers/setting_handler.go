package handlers

import (
	"encoding/json"
	"net/http"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/models"
	"payroll-backend/internal/services"
	"payroll-backend/pkg/utils"
)

type SettingHandler struct {
	Service *services.SettingService
}

func NewSettingHandler(s *services.SettingService) *SettingHandler {
	return &SettingHandler{Service: s}
}

func (h *SettingHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Service.Get(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, cfg)
}

// UpdateSettings applies new rates; subsequent payroll runs pick them up
func (h *SettingHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, apperror.Validation("body", "invalid request body"))
		return
	}

	cfg, err := h.Service.Update(r.Context(), &req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, cfg)
}
