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

type PayrollHandler struct {
	Service *services.PayrollService
}

func NewPayrollHandler(s *services.PayrollService) *PayrollHandler {
	return &PayrollHandler{Service: s}
}

// GenerateBatch runs payroll for every active employee. Partial success is
// a 200 with the per-row failure list in the body.
func (h *PayrollHandler) GenerateBatch(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, apperror.Validation("body", "invalid request body"))
		return
	}

	result, err := h.Service.GenerateBatch(r.Context(), req.Month, req.Year)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if result.Failures == nil {
		result.Failures = []models.BatchFailure{}
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// GenerateOne computes a single employee's record with optional overrides
func (h *PayrollHandler) GenerateOne(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, apperror.Validation("body", "invalid request body"))
		return
	}
	if req.EmployeeID <= 0 {
		utils.WriteError(w, apperror.Validation("employee_id", "employee_id must be a positive integer"))
		return
	}

	rec, err := h.Service.GenerateOne(r.Context(), &req)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, rec)
}

// periodQuery reads month/year from the query string.
func periodQuery(r *http.Request) (string, int, error) {
	month := r.URL.Query().Get("month")
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		return "", 0, apperror.Validation("year", "year must be an integer")
	}
	return month, year, nil
}

func (h *PayrollHandler) ListByPeriod(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodQuery(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	records, err := h.Service.ListByPeriod(r.Context(), month, year)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if records == nil {
		records = []*models.PayrollRecord{}
	}

	utils.WriteJSON(w, http.StatusOK, records)
}

func (h *PayrollHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "employee_id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	records, err := h.Service.History(r.Context(), id)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if records == nil {
		records = []*models.PayrollRecord{}
	}

	utils.WriteJSON(w, http.StatusOK, records)
}

func (h *PayrollHandler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Service.Periods(r.Context())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	if periods == nil {
		periods = []*models.PeriodState{}
	}

	utils.WriteJSON(w, http.StatusOK, periods)
}

func (h *PayrollHandler) PeriodState(w http.ResponseWriter, r *http.Request) {
	month, year, err := periodQuery(r)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	state, err := h.Service.PeriodState(r.Context(), month, year)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, state)
}

// LockPeriod finalizes a period; no write touches it afterwards
func (h *PayrollHandler) LockPeriod(w http.ResponseWriter, r *http.Request) {
	var req models.Period
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, apperror.Validation("body", "invalid request body"))
		return
	}

	if err := h.Service.Lock(r.Context(), req.Month, req.Year); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "period locked"})
}

// MarkProcessed moves a pending record to processed
func (h *PayrollHandler) MarkProcessed(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		utils.WriteError(w, apperror.Validation("id", "id must be a positive integer"))
		return
	}

	if err := h.Service.MarkProcessed(r.Context(), id); err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "record processed"})
}
