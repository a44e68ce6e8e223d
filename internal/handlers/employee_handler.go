package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/models"
	"payroll-backend/internal/services"
	"payroll-backend/pkg/utils"
)

type EmployeeHandler struct {
	Service *services.ProvisioningService
}

func NewEmployeeHandler(s *services.ProvisioningService) *EmployeeHandler {
	return &EmployeeHandler{Service: s}
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil || id <= 0 {
		return 0, apperror.Validation(name, name+" must be a positive integer")
	}
	return id, nil
}

// CreateEmployee provisions a new user+employee pair
func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var in models.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, apperror.Validation("body", "invalid request body"))
		return
	}

	result, err := h.Service.Provision(r.Context(), &in)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, result)
}

// UpdateEmployee rewrites an existing pair
func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	var in models.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, apperror.Validation("body", "invalid request body"))
		return
	}

	if err := h.Service.Update(r.Context(), id, &in); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "employee updated"})
}

// DeleteEmployee removes the pair
func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "employee removed"})
}

func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	emp, err := h.Service.Get(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, emp)
}

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.List(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if employees == nil {
		employees = []*models.EmployeeWithUser{}
	}

	utils.WriteJSON(w, http.StatusOK, employees)
}
