package services

import (
	"context"

	"payroll-backend/internal/models"
)

// The services depend on these narrow store interfaces rather than the
// concrete pgx repositories, so unit tests can substitute in-memory fakes.

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameInUse(ctx context.Context, username string, excludeID int) (bool, error)
	EmailInUse(ctx context.Context, email string, excludeID int) (bool, error)
}

type EmployeeStore interface {
	CreateWithUser(ctx context.Context, u *models.User, e *models.Employee) error
	UpdateWithUser(ctx context.Context, u *models.User, e *models.Employee) error
	DeleteWithUser(ctx context.Context, employeeID int) error
	Get(ctx context.Context, id int) (*models.Employee, error)
	ListActive(ctx context.Context) ([]*models.Employee, error)
	List(ctx context.Context) ([]*models.EmployeeWithUser, error)
}

type ReferenceStore interface {
	ResolveRole(ctx context.Context, name string) (int, error)
	ResolveDepartment(ctx context.Context, name string) (int, error)
	ListRoles(ctx context.Context) ([]models.Role, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
}

type PayrollStore interface {
	Insert(ctx context.Context, rec *models.PayrollRecord) error
	Get(ctx context.Context, id int) (*models.PayrollRecord, error)
	ListByPeriod(ctx context.Context, month string, year int) ([]*models.PayrollRecord, error)
	ListByEmployee(ctx context.Context, employeeID int) ([]*models.PayrollRecord, error)
	MarkProcessed(ctx context.Context, id int) error
	GetPeriod(ctx context.Context, month string, year int) (*models.PeriodState, error)
	ListPeriods(ctx context.Context) ([]*models.PeriodState, error)
	MarkGenerated(ctx context.Context, month string, year int) error
	LockPeriod(ctx context.Context, month string, year int) error
}

type SettingStore interface {
	Get(ctx context.Context) (*models.TaxConfig, error)
	Update(ctx context.Context, cfg *models.TaxConfig) error
}

// TokenIssuer abstracts JWT generation for the login flow.
type TokenIssuer interface {
	GenerateToken(user *models.User) (string, error)
}
