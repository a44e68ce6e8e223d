package handlers

import (
	"net/http"

	"payroll-backend/internal/models"
	"payroll-backend/internal/services"
	"payroll-backend/pkg/utils"
)

type ReferenceHandler struct {
	Service *services.ResolverService
}

func NewReferenceHandler(s *services.ResolverService) *ReferenceHandler {
	return &ReferenceHandler{Service: s}
}

func (h *ReferenceHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.Roles(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if roles == nil {
		roles = []models.Role{}
	}

	utils.WriteJSON(w, http.StatusOK, roles)
}

func (h *ReferenceHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.Departments(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if departments == nil {
		departments = []models.Department{}
	}

	utils.WriteJSON(w, http.StatusOK, departments)
}
