package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRecord status values. A record never changes once written except
// to move toward Locked.
const (
	PayrollPending   = "Pending"
	PayrollProcessed = "Processed"
	PayrollLocked    = "Locked"
)

// Pay period states. No transition leaves Locked.
const (
	PeriodOpen      = "Open"
	PeriodGenerated = "Generated"
	PeriodLocked    = "Locked"
)

// PayrollRecord is one computed pay-period result for one employee.
// net_salary = base_salary + allowances - deductions - tax, always
// recomputed from its inputs.
type PayrollRecord struct {
	ID          int             `json:"id"`
	EmployeeID  int             `json:"employee_id"`
	Month       string          `json:"month"`
	Year        int             `json:"year"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
	Allowances  decimal.Decimal `json:"allowances"`
	Deductions  decimal.Decimal `json:"deductions"`
	Tax         decimal.Decimal `json:"tax"`
	NetSalary   decimal.Decimal `json:"net_salary"`
	GeneratedOn time.Time       `json:"generated_on"`
	Status      string          `json:"status"`
}

// Period identifies one payroll cycle by month name and year.
type Period struct {
	Month string `json:"month"`
	Year  int    `json:"year"`
}

// PeriodState is the persisted state of a pay period.
type PeriodState struct {
	ID       int        `json:"id"`
	Month    string     `json:"month"`
	Year     int        `json:"year"`
	Status   string     `json:"status"`
	LockedAt *time.Time `json:"locked_at,omitempty"`
}

// BatchFailure reports one employee that could not be paid in a batch run.
type BatchFailure struct {
	EmployeeID int    `json:"employee_id"`
	Reason     string `json:"reason"`
}

// BatchResult is the partial-success outcome of batch generation.
type BatchResult struct {
	Generated int            `json:"generated"`
	Failures  []BatchFailure `json:"failures"`
}

// GenerateRequest is the request body for payroll generation.
type GenerateRequest struct {
	Month      string `json:"month"`
	Year       int    `json:"year"`
	EmployeeID int    `json:"employee_id,omitempty"` // single generation only
	Allowances string `json:"allowances,omitempty"`  // optional overrides, decimal strings
	Deductions string `json:"deductions,omitempty"`
}
