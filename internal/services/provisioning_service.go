package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/auth"
	"payroll-backend/internal/logger"
	"payroll-backend/internal/metrics"
	"payroll-backend/internal/models"
	"payroll-backend/internal/timeutil"
	"payroll-backend/internal/validation"
)

// ProvisioningService creates, updates and removes the user+employee pair.
// The ordering contract: validate, resolve references, check uniqueness,
// hash the credential, and only then open the write transaction.
type ProvisioningService struct {
	users     UserStore
	employees EmployeeStore
	resolver  *ResolverService
}

func NewProvisioningService(users UserStore, employees EmployeeStore, resolver *ResolverService) *ProvisioningService {
	return &ProvisioningService{users: users, employees: employees, resolver: resolver}
}

// optionalAmount parses an optional decimal string; empty means zero.
// Validation has already rejected malformed and negative values.
func optionalAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Provision creates the linked user and employee records and returns both
// generated ids. No partial state survives a failure at any step.
func (s *ProvisioningService) Provision(ctx context.Context, in *models.EmployeeInput) (*models.ProvisionResult, error) {
	if err := validation.EmployeeInput(in, true); err != nil {
		metrics.ProvisioningTotal.WithLabelValues("create", "rejected").Inc()
		return nil, err
	}

	roleID, err := s.resolver.Resolve(ctx, models.RefRole, in.RoleName)
	if err != nil {
		metrics.ProvisioningTotal.WithLabelValues("create", "rejected").Inc()
		return nil, err
	}
	deptID, err := s.resolver.Resolve(ctx, models.RefDepartment, in.DepartmentName)
	if err != nil {
		metrics.ProvisioningTotal.WithLabelValues("create", "rejected").Inc()
		return nil, err
	}

	if err := s.checkUniqueness(ctx, in.Username, in.Email, 0); err != nil {
		metrics.ProvisioningTotal.WithLabelValues("create", "rejected").Inc()
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperror.New(apperror.KindInternal, "failed to hash password")
	}

	dateJoined, err := timeutil.ParseDate(in.DateJoined)
	if err != nil {
		return nil, apperror.Validation("date_joined", "date_joined must be an ISO date (YYYY-MM-DD)")
	}
	salary, err := decimal.NewFromString(in.Salary)
	if err != nil {
		return nil, apperror.Validation("salary", "salary must be a positive amount")
	}

	user := &models.User{
		Username:      in.Username,
		PasswordHash:  hash,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Phone:         in.Phone,
		DeptID:        deptID,
		RoleID:        roleID,
		Designation:   in.Designation,
		DateOfJoining: dateJoined,
		Status:        in.Status,
	}
	employee := &models.Employee{
		RoleID:      roleID,
		DeptID:      deptID,
		Gender:      in.Gender,
		Position:    in.Position,
		Salary:      salary,
		Allowances:  optionalAmount(in.Allowances),
		Deductions:  optionalAmount(in.Deductions),
		BankAccount: in.BankAccount,
		DateJoined:  dateJoined,
		Status:      in.Status,
	}

	if err := s.employees.CreateWithUser(ctx, user, employee); err != nil {
		metrics.ProvisioningTotal.WithLabelValues("create", "failed").Inc()
		return nil, err
	}

	metrics.ProvisioningTotal.WithLabelValues("create", "ok").Inc()
	logger.L.Info("employee provisioned",
		zap.Int("user_id", user.ID),
		zap.Int("employee_id", employee.ID),
		zap.String("username", user.Username))
	return &models.ProvisionResult{UserID: user.ID, EmployeeID: employee.ID}, nil
}

// Update rewrites the pair identified by employeeID. An empty password
// keeps the current credential; user_id never changes.
func (s *ProvisioningService) Update(ctx context.Context, employeeID int, in *models.EmployeeInput) error {
	if err := validation.EmployeeInput(in, false); err != nil {
		metrics.ProvisioningTotal.WithLabelValues("update", "rejected").Inc()
		return err
	}

	existing, err := s.employees.Get(ctx, employeeID)
	if err != nil {
		return err
	}

	roleID, err := s.resolver.Resolve(ctx, models.RefRole, in.RoleName)
	if err != nil {
		metrics.ProvisioningTotal.WithLabelValues("update", "rejected").Inc()
		return err
	}
	deptID, err := s.resolver.Resolve(ctx, models.RefDepartment, in.DepartmentName)
	if err != nil {
		metrics.ProvisioningTotal.WithLabelValues("update", "rejected").Inc()
		return err
	}

	if err := s.checkUniqueness(ctx, in.Username, in.Email, existing.UserID); err != nil {
		metrics.ProvisioningTotal.WithLabelValues("update", "rejected").Inc()
		return err
	}

	var hash string
	if in.Password != "" {
		hash, err = auth.HashPassword(in.Password)
		if err != nil {
			return apperror.New(apperror.KindInternal, "failed to hash password")
		}
	}

	dateJoined, err := timeutil.ParseDate(in.DateJoined)
	if err != nil {
		return apperror.Validation("date_joined", "date_joined must be an ISO date (YYYY-MM-DD)")
	}
	salary, err := decimal.NewFromString(in.Salary)
	if err != nil {
		return apperror.Validation("salary", "salary must be a positive amount")
	}

	user := &models.User{
		ID:            existing.UserID,
		Username:      in.Username,
		PasswordHash:  hash,
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Phone:         in.Phone,
		DeptID:        deptID,
		RoleID:        roleID,
		Designation:   in.Designation,
		DateOfJoining: dateJoined,
		Status:        in.Status,
	}
	employee := &models.Employee{
		ID:          employeeID,
		UserID:      existing.UserID,
		RoleID:      roleID,
		DeptID:      deptID,
		Gender:      in.Gender,
		Position:    in.Position,
		Salary:      salary,
		Allowances:  optionalAmount(in.Allowances),
		Deductions:  optionalAmount(in.Deductions),
		BankAccount: in.BankAccount,
		DateJoined:  dateJoined,
		Status:      in.Status,
	}

	if err := s.employees.UpdateWithUser(ctx, user, employee); err != nil {
		metrics.ProvisioningTotal.WithLabelValues("update", "failed").Inc()
		return err
	}

	metrics.ProvisioningTotal.WithLabelValues("update", "ok").Inc()
	logger.L.Info("employee updated", zap.Int("employee_id", employeeID))
	return nil
}

// Delete removes the employee and its user in one transaction.
func (s *ProvisioningService) Delete(ctx context.Context, employeeID int) error {
	if err := s.employees.DeleteWithUser(ctx, employeeID); err != nil {
		metrics.ProvisioningTotal.WithLabelValues("delete", "failed").Inc()
		return err
	}
	metrics.ProvisioningTotal.WithLabelValues("delete", "ok").Inc()
	logger.L.Info("employee removed", zap.Int("employee_id", employeeID))
	return nil
}

func (s *ProvisioningService) Get(ctx context.Context, employeeID int) (*models.Employee, error) {
	return s.employees.Get(ctx, employeeID)
}

func (s *ProvisioningService) List(ctx context.Context) ([]*models.EmployeeWithUser, error) {
	return s.employees.List(ctx)
}

// checkUniqueness pre-checks username and email before the transaction
// opens. The unique constraints still back this up against races.
func (s *ProvisioningService) checkUniqueness(ctx context.Context, username, email string, excludeUserID int) error {
	taken, err := s.users.UsernameInUse(ctx, username, excludeUserID)
	if err != nil {
		return apperror.Transaction("check username", err)
	}
	if taken {
		return apperror.Duplicate("username", username)
	}
	taken, err = s.users.EmailInUse(ctx, email, excludeUserID)
	if err != nil {
		return apperror.Transaction("check email", err)
	}
	if taken {
		return apperror.Duplicate("email", email)
	}
	return nil
}
