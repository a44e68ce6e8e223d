package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/models"
)

// In-memory stands-ins for the pgx repositories. They honor the same error
// contracts (apperror kinds, duplicate detection) so the services behave
// identically under test.

type fakeUserStore struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) add(u *models.User) *models.User {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	return u
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (f *fakeUserStore) UsernameInUse(_ context.Context, username string, excludeID int) (bool, error) {
	for _, u := range f.users {
		if u.Username == username && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) EmailInUse(_ context.Context, email string, excludeID int) (bool, error) {
	for _, u := range f.users {
		if u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeEmployeeStore struct {
	users     *fakeUserStore
	employees map[int]*models.Employee
	nextID    int
}

func newFakeEmployeeStore(users *fakeUserStore) *fakeEmployeeStore {
	return &fakeEmployeeStore{users: users, employees: map[int]*models.Employee{}, nextID: 1}
}

func (f *fakeEmployeeStore) CreateWithUser(_ context.Context, u *models.User, e *models.Employee) error {
	for _, existing := range f.users.users {
		if existing.Username == u.Username {
			return apperror.Duplicate("username", u.Username)
		}
	}
	f.users.add(u)
	e.UserID = u.ID
	e.ID = f.nextID
	f.nextID++
	f.employees[e.ID] = e
	return nil
}

func (f *fakeEmployeeStore) UpdateWithUser(_ context.Context, u *models.User, e *models.Employee) error {
	existing, ok := f.users.users[u.ID]
	if !ok {
		return apperror.NotFound("user", u.ID)
	}
	if u.PasswordHash == "" {
		u.PasswordHash = existing.PasswordHash
	}
	f.users.users[u.ID] = u
	if _, ok := f.employees[e.ID]; !ok {
		return apperror.NotFound("employee", e.ID)
	}
	f.employees[e.ID] = e
	return nil
}

func (f *fakeEmployeeStore) DeleteWithUser(_ context.Context, employeeID int) error {
	e, ok := f.employees[employeeID]
	if !ok {
		return apperror.NotFound("employee", employeeID)
	}
	delete(f.employees, employeeID)
	delete(f.users.users, e.UserID)
	return nil
}

func (f *fakeEmployeeStore) Get(_ context.Context, id int) (*models.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, apperror.NotFound("employee", id)
	}
	return e, nil
}

func (f *fakeEmployeeStore) ListActive(_ context.Context) ([]*models.Employee, error) {
	var out []*models.Employee
	for id := 1; id < f.nextID; id++ {
		if e, ok := f.employees[id]; ok && e.Status == models.StatusActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeStore) List(_ context.Context) ([]*models.EmployeeWithUser, error) {
	var out []*models.EmployeeWithUser
	for id := 1; id < f.nextID; id++ {
		if e, ok := f.employees[id]; ok {
			out = append(out, &models.EmployeeWithUser{Employee: *e})
		}
	}
	return out, nil
}

type fakeReferenceStore struct {
	roles map[string]int
	depts map[string]int
}

func newFakeReferenceStore() *fakeReferenceStore {
	return &fakeReferenceStore{
		roles: map[string]int{"admin": 1, "hr officer": 2, "employee": 4},
		depts: map[string]int{"human resources": 1, "finance": 2, "engineering": 3},
	}
}

func (f *fakeReferenceStore) ResolveRole(_ context.Context, name string) (int, error) {
	if id, ok := f.roles[strings.ToLower(name)]; ok {
		return id, nil
	}
	return 0, apperror.Reference(models.RefRole, name)
}

func (f *fakeReferenceStore) ResolveDepartment(_ context.Context, name string) (int, error) {
	if id, ok := f.depts[strings.ToLower(name)]; ok {
		return id, nil
	}
	return 0, apperror.Reference(models.RefDepartment, name)
}

func (f *fakeReferenceStore) ListRoles(_ context.Context) ([]models.Role, error) {
	var out []models.Role
	for name, id := range f.roles {
		out = append(out, models.Role{ID: id, Name: name})
	}
	return out, nil
}

func (f *fakeReferenceStore) ListDepartments(_ context.Context) ([]models.Department, error) {
	var out []models.Department
	for name, id := range f.depts {
		out = append(out, models.Department{ID: id, Name: name})
	}
	return out, nil
}

type fakePayrollStore struct {
	records []*models.PayrollRecord
	periods map[string]*models.PeriodState
	nextID  int
}

func newFakePayrollStore() *fakePayrollStore {
	return &fakePayrollStore{periods: map[string]*models.PeriodState{}, nextID: 1}
}

func periodKey(month string, year int) string {
	return fmt.Sprintf("%s-%d", month, year)
}

func (f *fakePayrollStore) Insert(_ context.Context, rec *models.PayrollRecord) error {
	for _, existing := range f.records {
		if existing.EmployeeID == rec.EmployeeID && existing.Month == rec.Month && existing.Year == rec.Year {
			return apperror.DuplicatePeriod(rec.EmployeeID, rec.Month, rec.Year)
		}
	}
	rec.ID = f.nextID
	f.nextID++
	f.records = append(f.records, rec)
	return nil
}

func (f *fakePayrollStore) Get(_ context.Context, id int) (*models.PayrollRecord, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, apperror.NotFound("payroll record", id)
}

func (f *fakePayrollStore) ListByPeriod(_ context.Context, month string, year int) ([]*models.PayrollRecord, error) {
	var out []*models.PayrollRecord
	for _, rec := range f.records {
		if rec.Month == month && rec.Year == year {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakePayrollStore) ListByEmployee(_ context.Context, employeeID int) ([]*models.PayrollRecord, error) {
	var out []*models.PayrollRecord
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakePayrollStore) MarkProcessed(_ context.Context, id int) error {
	for _, rec := range f.records {
		if rec.ID == id {
			if state, ok := f.periods[periodKey(rec.Month, rec.Year)]; ok && state.Status == models.PeriodLocked {
				return apperror.LockedPeriod(rec.Month, rec.Year)
			}
			if rec.Status != models.PayrollPending {
				return apperror.NotFound("pending payroll record", id)
			}
			rec.Status = models.PayrollProcessed
			return nil
		}
	}
	return apperror.NotFound("payroll record", id)
}

func (f *fakePayrollStore) GetPeriod(_ context.Context, month string, year int) (*models.PeriodState, error) {
	return f.periods[periodKey(month, year)], nil
}

func (f *fakePayrollStore) ListPeriods(_ context.Context) ([]*models.PeriodState, error) {
	var out []*models.PeriodState
	for _, state := range f.periods {
		out = append(out, state)
	}
	return out, nil
}

func (f *fakePayrollStore) MarkGenerated(_ context.Context, month string, year int) error {
	key := periodKey(month, year)
	if state, ok := f.periods[key]; ok && state.Status == models.PeriodLocked {
		return nil
	}
	f.periods[key] = &models.PeriodState{Month: month, Year: year, Status: models.PeriodGenerated}
	return nil
}

func (f *fakePayrollStore) LockPeriod(_ context.Context, month string, year int) error {
	key := periodKey(month, year)
	if state, ok := f.periods[key]; ok && state.Status == models.PeriodLocked {
		return apperror.LockedPeriod(month, year)
	}
	f.periods[key] = &models.PeriodState{Month: month, Year: year, Status: models.PeriodLocked}
	for _, rec := range f.records {
		if rec.Month == month && rec.Year == year {
			rec.Status = models.PayrollLocked
		}
	}
	return nil
}

type fakeSettingStore struct {
	cfg models.TaxConfig
}

func newFakeSettingStore(taxRate string) *fakeSettingStore {
	rate, _ := decimal.NewFromString(taxRate)
	return &fakeSettingStore{cfg: models.TaxConfig{
		TaxRate:        rate,
		SocialRate:     decimal.NewFromInt(7),
		CurrencySymbol: "ETB",
	}}
}

func (f *fakeSettingStore) Get(_ context.Context) (*models.TaxConfig, error) {
	cfg := f.cfg
	return &cfg, nil
}

func (f *fakeSettingStore) Update(_ context.Context, cfg *models.TaxConfig) error {
	f.cfg.TaxRate = cfg.TaxRate
	f.cfg.SocialRate = cfg.SocialRate
	f.cfg.CurrencySymbol = cfg.CurrencySymbol
	return nil
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) GenerateToken(user *models.User) (string, error) {
	return "token-" + user.Username, nil
}
