package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"payroll-backend/internal/handlers"
	"payroll-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	employeeHandler *handlers.EmployeeHandler,
	payrollHandler *handlers.PayrollHandler,
	settingHandler *handlers.SettingHandler,
	referenceHandler *handlers.ReferenceHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Employees (provisioning)
	employeesAPI := r.PathPrefix("/api/employees").Subrouter()
	employeesAPI.Use(authMiddleware.Authenticate)
	employeesAPI.HandleFunc("", employeeHandler.ListEmployees).Methods("GET")
	employeesAPI.HandleFunc("", employeeHandler.CreateEmployee).Methods("POST")
	employeesAPI.HandleFunc("/{id}", employeeHandler.GetEmployee).Methods("GET")
	employeesAPI.HandleFunc("/{id}", employeeHandler.UpdateEmployee).Methods("PUT")
	employeesAPI.HandleFunc("/{id}", employeeHandler.DeleteEmployee).Methods("DELETE")
	employeesAPI.HandleFunc("/{employee_id}/payroll", payrollHandler.History).Methods("GET")

	// Protected API routes - Payroll
	payrollAPI := r.PathPrefix("/api/payroll").Subrouter()
	payrollAPI.Use(authMiddleware.Authenticate)
	payrollAPI.HandleFunc("", payrollHandler.ListByPeriod).Methods("GET")
	payrollAPI.HandleFunc("/generate", payrollHandler.GenerateBatch).Methods("POST")
	payrollAPI.HandleFunc("/generate-one", payrollHandler.GenerateOne).Methods("POST")
	payrollAPI.HandleFunc("/period", payrollHandler.PeriodState).Methods("GET")
	payrollAPI.HandleFunc("/periods", payrollHandler.ListPeriods).Methods("GET")
	payrollAPI.HandleFunc("/lock", payrollHandler.LockPeriod).Methods("POST")
	payrollAPI.HandleFunc("/{id}/process", payrollHandler.MarkProcessed).Methods("PATCH")

	// Protected API routes - Settings
	settingsAPI := r.PathPrefix("/api/settings").Subrouter()
	settingsAPI.Use(authMiddleware.Authenticate)
	settingsAPI.HandleFunc("", settingHandler.GetSettings).Methods("GET")
	settingsAPI.HandleFunc("", settingHandler.UpdateSettings).Methods("PUT")

	// Protected API routes - Reference data for form population
	refsAPI := r.PathPrefix("/api/references").Subrouter()
	refsAPI.Use(authMiddleware.Authenticate)
	refsAPI.HandleFunc("/roles", referenceHandler.ListRoles).Methods("GET")
	refsAPI.HandleFunc("/departments", referenceHandler.ListDepartments).Methods("GET")

	// Health endpoints (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
