package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/models"
)

// PayrollRepository persists computed pay records and the per-period state
// machine (Open, Generated, Locked).
type PayrollRepository struct {
	DB *pgxpool.Pool
}

func NewPayrollRepository(db *pgxpool.Pool) *PayrollRepository {
	return &PayrollRepository{DB: db}
}

// Insert writes one computed record. The payroll_emp_period_key constraint
// rejects a second record for the same employee and period; that surfaces
// as a duplicate-period error so batch callers can record it and move on.
func (r *PayrollRepository) Insert(ctx context.Context, rec *models.PayrollRecord) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO payroll(emp_id, month, year, base_salary, allowances, deductions,
		                     tax, net_salary, generated_on, status)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		rec.EmployeeID, rec.Month, rec.Year, rec.BaseSalary, rec.Allowances,
		rec.Deductions, rec.Tax, rec.NetSalary, rec.GeneratedOn, rec.Status,
	).Scan(&rec.ID)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok && constraint == "payroll_emp_period_key" {
			return apperror.DuplicatePeriod(rec.EmployeeID, rec.Month, rec.Year)
		}
		if foreignKeyViolation(err) {
			return apperror.NotFound("employee", rec.EmployeeID)
		}
		return apperror.Transaction("insert payroll record", err)
	}
	return nil
}

const payrollColumns = `id, emp_id, month, year, base_salary, allowances, deductions,
	 tax, net_salary, generated_on, status`

func scanPayroll(row pgx.Row) (*models.PayrollRecord, error) {
	var rec models.PayrollRecord
	err := row.Scan(&rec.ID, &rec.EmployeeID, &rec.Month, &rec.Year, &rec.BaseSalary,
		&rec.Allowances, &rec.Deductions, &rec.Tax, &rec.NetSalary,
		&rec.GeneratedOn, &rec.Status)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *PayrollRepository) Get(ctx context.Context, id int) (*models.PayrollRecord, error) {
	rec, err := scanPayroll(r.DB.QueryRow(ctx,
		`SELECT `+payrollColumns+` FROM payroll WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("payroll record", id)
	}
	return rec, err
}

// ListByPeriod returns all records for one month/year in employee order.
func (r *PayrollRepository) ListByPeriod(ctx context.Context, month string, year int) ([]*models.PayrollRecord, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+payrollColumns+` FROM payroll WHERE month=$1 AND year=$2 ORDER BY emp_id`,
		month, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.PayrollRecord
	for rows.Next() {
		rec, err := scanPayroll(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListByEmployee returns one employee's pay history, newest period first.
func (r *PayrollRepository) ListByEmployee(ctx context.Context, employeeID int) ([]*models.PayrollRecord, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+payrollColumns+` FROM payroll WHERE emp_id=$1 ORDER BY year DESC, id DESC`,
		employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.PayrollRecord
	for rows.Next() {
		rec, err := scanPayroll(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MarkProcessed moves a Pending record to Processed. Records in a locked
// period are immutable.
func (r *PayrollRepository) MarkProcessed(ctx context.Context, id int) error {
	var month string
	var year int
	err := r.DB.QueryRow(ctx,
		`SELECT month, year FROM payroll WHERE id=$1`, id).Scan(&month, &year)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NotFound("payroll record", id)
	}
	if err != nil {
		return err
	}

	state, err := r.GetPeriod(ctx, month, year)
	if err != nil {
		return err
	}
	if state != nil && state.Status == models.PeriodLocked {
		return apperror.LockedPeriod(month, year)
	}

	tag, err := r.DB.Exec(ctx,
		`UPDATE payroll SET status=$1 WHERE id=$2 AND status=$3`,
		models.PayrollProcessed, id, models.PayrollPending)
	if err != nil {
		return apperror.Transaction("mark processed", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("pending payroll record", id)
	}
	return nil
}

// GetPeriod returns the persisted period state, or nil when the period has
// never been touched (treated as Open).
func (r *PayrollRepository) GetPeriod(ctx context.Context, month string, year int) (*models.PeriodState, error) {
	var state models.PeriodState
	err := r.DB.QueryRow(ctx,
		`SELECT id, month, year, status, locked_at FROM payroll_periods
		 WHERE month=$1 AND year=$2`, month, year).
		Scan(&state.ID, &state.Month, &state.Year, &state.Status, &state.LockedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// ListPeriods returns every period that has ever been touched, newest first.
func (r *PayrollRepository) ListPeriods(ctx context.Context) ([]*models.PeriodState, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, month, year, status, locked_at FROM payroll_periods
		 ORDER BY year DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []*models.PeriodState
	for rows.Next() {
		var state models.PeriodState
		err := rows.Scan(&state.ID, &state.Month, &state.Year, &state.Status, &state.LockedAt)
		if err != nil {
			return nil, err
		}
		periods = append(periods, &state)
	}
	return periods, rows.Err()
}

// MarkGenerated upserts the period row into Generated, unless it is
// already Locked. Locked never transitions back.
func (r *PayrollRepository) MarkGenerated(ctx context.Context, month string, year int) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO payroll_periods(month, year, status)
		 VALUES($1, $2, $3)
		 ON CONFLICT (month, year) DO UPDATE SET status=EXCLUDED.status
		 WHERE payroll_periods.status <> $4`,
		month, year, models.PeriodGenerated, models.PeriodLocked)
	if err != nil {
		return apperror.Transaction("mark period generated", err)
	}
	return nil
}

// LockPeriod moves a period to Locked and freezes all of its records in
// one transaction. Locking an already-locked period reports a conflict.
func (r *PayrollRepository) LockPeriod(ctx context.Context, month string, year int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return apperror.Transaction("begin lock", err)
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx,
		`SELECT status FROM payroll_periods WHERE month=$1 AND year=$2 FOR UPDATE`,
		month, year).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		status = models.PeriodOpen
	} else if err != nil {
		return apperror.Transaction("read period", err)
	}
	if status == models.PeriodLocked {
		return apperror.LockedPeriod(month, year)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO payroll_periods(month, year, status, locked_at)
		 VALUES($1, $2, $3, CURRENT_TIMESTAMP)
		 ON CONFLICT (month, year)
		 DO UPDATE SET status=EXCLUDED.status, locked_at=CURRENT_TIMESTAMP`,
		month, year, models.PeriodLocked)
	if err != nil {
		return apperror.Transaction("lock period", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE payroll SET status=$1 WHERE month=$2 AND year=$3`,
		models.PayrollLocked, month, year)
	if err != nil {
		return apperror.Transaction("freeze records", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Transaction("commit lock", err)
	}
	return nil
}
