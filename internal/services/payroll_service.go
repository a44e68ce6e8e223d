package services

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/logger"
	"payroll-backend/internal/metrics"
	"payroll-backend/internal/models"
	"payroll-backend/internal/timeutil"
	"payroll-backend/internal/validation"
)

var oneHundred = decimal.NewFromInt(100)

// PayrollService computes pay records and drives the period state machine.
type PayrollService struct {
	payroll   PayrollStore
	employees EmployeeStore
	settings  SettingStore
}

func NewPayrollService(payroll PayrollStore, employees EmployeeStore, settings SettingStore) *PayrollService {
	return &PayrollService{payroll: payroll, employees: employees, settings: settings}
}

// Compute derives tax and net pay from the gross components.
//
//	tax = (base + allowances) * taxRate / 100
//	net = base + allowances - deductions - tax
//
// Both results are rounded to 2 decimal places, half away from zero.
func Compute(base, allowances, deductions, taxRate decimal.Decimal) (tax, net decimal.Decimal) {
	gross := base.Add(allowances)
	tax = gross.Mul(taxRate).Div(oneHundred).Round(2)
	net = gross.Sub(deductions).Sub(tax).Round(2)
	return tax, net
}

// GenerateBatch computes one record per active employee for the period,
// using each employee's standing allowances and deductions. Each row is
// inserted independently: a failed row is recorded and the run continues.
// The tax configuration is re-read for every row, so a mid-batch settings
// edit applies to the rows that follow it.
func (s *PayrollService) GenerateBatch(ctx context.Context, month string, year int) (*models.BatchResult, error) {
	if err := validation.Period(month, year); err != nil {
		return nil, err
	}

	state, err := s.payroll.GetPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}

	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.BatchResult{}

	// A locked period fails every row up front; nothing is written.
	if state != nil && state.Status == models.PeriodLocked {
		lockErr := apperror.LockedPeriod(month, year)
		for _, emp := range employees {
			result.Failures = append(result.Failures, models.BatchFailure{
				EmployeeID: emp.ID,
				Reason:     lockErr.Error(),
			})
			metrics.PayrollRowFailures.WithLabelValues(string(apperror.KindLockedPeriod)).Inc()
		}
		return result, nil
	}

	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			logger.L.Warn("batch generation interrupted",
				zap.String("month", month), zap.Int("year", year),
				zap.Int("generated", result.Generated))
			return result, err
		}

		if _, err := s.generateRow(ctx, emp, month, year, emp.Allowances, emp.Deductions); err != nil {
			result.Failures = append(result.Failures, models.BatchFailure{
				EmployeeID: emp.ID,
				Reason:     err.Error(),
			})
			metrics.PayrollRowFailures.WithLabelValues(string(apperror.KindOf(err))).Inc()
			continue
		}
		result.Generated++
		metrics.PayrollRowsGenerated.Inc()
	}

	if result.Generated > 0 {
		if err := s.payroll.MarkGenerated(ctx, month, year); err != nil {
			return result, err
		}
	}

	logger.L.Info("payroll batch complete",
		zap.String("month", month), zap.Int("year", year),
		zap.Int("generated", result.Generated),
		zap.Int("failed", len(result.Failures)))
	return result, nil
}

// GenerateOne computes a single employee's record, with optional
// allowance/deduction overrides in place of the standing values.
func (s *PayrollService) GenerateOne(ctx context.Context, req *models.GenerateRequest) (*models.PayrollRecord, error) {
	if err := validation.Period(req.Month, req.Year); err != nil {
		return nil, err
	}
	if err := validation.Amount("allowances", req.Allowances); err != nil {
		return nil, err
	}
	if err := validation.Amount("deductions", req.Deductions); err != nil {
		return nil, err
	}

	state, err := s.payroll.GetPeriod(ctx, req.Month, req.Year)
	if err != nil {
		return nil, err
	}
	if state != nil && state.Status == models.PeriodLocked {
		return nil, apperror.LockedPeriod(req.Month, req.Year)
	}

	emp, err := s.employees.Get(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	if emp.Status != models.StatusActive {
		return nil, apperror.Validation("employee_id", "employee is not active")
	}

	allowances := emp.Allowances
	if req.Allowances != "" {
		allowances = optionalAmount(req.Allowances)
	}
	deductions := emp.Deductions
	if req.Deductions != "" {
		deductions = optionalAmount(req.Deductions)
	}

	rec, err := s.generateRow(ctx, emp, req.Month, req.Year, allowances, deductions)
	if err != nil {
		return nil, err
	}
	metrics.PayrollRowsGenerated.Inc()

	if err := s.payroll.MarkGenerated(ctx, req.Month, req.Year); err != nil {
		return nil, err
	}
	return rec, nil
}

// generateRow reads the current tax configuration, computes one record and
// inserts it. Duplicate-period and other persistence failures come back as
// app errors for the caller to classify.
func (s *PayrollService) generateRow(ctx context.Context, emp *models.Employee, month string, year int, allowances, deductions decimal.Decimal) (*models.PayrollRecord, error) {
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	tax, net := Compute(emp.Salary, allowances, deductions, cfg.TaxRate)
	rec := &models.PayrollRecord{
		EmployeeID:  emp.ID,
		Month:       month,
		Year:        year,
		BaseSalary:  emp.Salary,
		Allowances:  allowances,
		Deductions:  deductions,
		Tax:         tax,
		NetSalary:   net,
		GeneratedOn: timeutil.Now(),
		Status:      models.PayrollPending,
	}
	if err := s.payroll.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Lock moves the period to Locked and freezes its records. There is no
// transition out of Locked.
func (s *PayrollService) Lock(ctx context.Context, month string, year int) error {
	if err := validation.Period(month, year); err != nil {
		return err
	}
	if err := s.payroll.LockPeriod(ctx, month, year); err != nil {
		return err
	}
	logger.L.Info("pay period locked", zap.String("month", month), zap.Int("year", year))
	return nil
}

func (s *PayrollService) MarkProcessed(ctx context.Context, recordID int) error {
	return s.payroll.MarkProcessed(ctx, recordID)
}

func (s *PayrollService) ListByPeriod(ctx context.Context, month string, year int) ([]*models.PayrollRecord, error) {
	if err := validation.Period(month, year); err != nil {
		return nil, err
	}
	return s.payroll.ListByPeriod(ctx, month, year)
}

func (s *PayrollService) History(ctx context.Context, employeeID int) ([]*models.PayrollRecord, error) {
	return s.payroll.ListByEmployee(ctx, employeeID)
}

func (s *PayrollService) Periods(ctx context.Context) ([]*models.PeriodState, error) {
	return s.payroll.ListPeriods(ctx)
}

func (s *PayrollService) PeriodState(ctx context.Context, month string, year int) (*models.PeriodState, error) {
	if err := validation.Period(month, year); err != nil {
		return nil, err
	}
	state, err := s.payroll.GetPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return &models.PeriodState{Month: month, Year: year, Status: models.PeriodOpen}, nil
	}
	return state, nil
}
