package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the payroll-eligible profile. Every employee references
// exactly one user; user_id is immutable after creation.
type Employee struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	RoleID      int             `json:"role_id"`
	DeptID      int             `json:"dept_id"`
	Gender      string          `json:"gender"`
	Position    string          `json:"position"`
	Salary      decimal.Decimal `json:"salary"`
	Allowances  decimal.Decimal `json:"allowances"` // standing monthly allowances
	Deductions  decimal.Decimal `json:"deductions"` // standing monthly deductions
	BankAccount string          `json:"bank_account"`
	DateJoined  time.Time       `json:"date_joined"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// EmployeeWithUser is the joined read model for listings.
type EmployeeWithUser struct {
	Employee
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	RoleName       string `json:"role_name"`
	DepartmentName string `json:"department_name"`
}

// EmployeeInput carries the validated form values for provisioning. Role
// and department arrive as human-readable names and are resolved to ids
// before anything is written.
type EmployeeInput struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	RoleName       string `json:"role_name"`
	DepartmentName string `json:"department_name"`
	Designation    string `json:"designation"`
	Gender         string `json:"gender"`
	Position       string `json:"position"`
	Salary         string `json:"salary"`     // decimal string, parsed after validation
	Allowances     string `json:"allowances"` // optional decimal string
	Deductions     string `json:"deductions"` // optional decimal string
	BankAccount    string `json:"bank_account"`
	DateJoined     string `json:"date_joined"` // ISO date
	Status         string `json:"status"`
}

// ProvisionResult returns the generated identifier pair for a created
// user+employee record.
type ProvisionResult struct {
	UserID     int `json:"user_id"`
	EmployeeID int `json:"employee_id"`
}
