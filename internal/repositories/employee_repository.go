package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/models"
)

// EmployeeRepository owns every statement that touches the users/employees
// pair, so the multi-table transaction boundary lives in exactly one place.
type EmployeeRepository struct {
	DB *pgxpool.Pool
}

func NewEmployeeRepository(db *pgxpool.Pool) *EmployeeRepository {
	return &EmployeeRepository{DB: db}
}

// The pair of rows is written with fixed statements; every mutable field of
// the submission must appear in both the insert and update column lists so
// an update can never leave the two tables disagreeing on a shared field.
const (
	insertUserSQL = `INSERT INTO users(username, password_hash, first_name, last_name, email, phone,
	                   dept_id, role_id, designation, date_of_joining, status)
	 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	 RETURNING id, created_at, updated_at`

	insertEmployeeSQL = `INSERT INTO employees(user_id, role_id, dept_id, gender, position, salary,
	                       allowances, deductions, bank_account, date_joined, status)
	 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	 RETURNING id, created_at, updated_at`

	updateUserSQL = `UPDATE users SET username=$1, first_name=$2, last_name=$3, email=$4, phone=$5,
	        dept_id=$6, role_id=$7, designation=$8, date_of_joining=$9, status=$10,
	        updated_at=CURRENT_TIMESTAMP
	 WHERE id=$11`

	updateEmployeeSQL = `UPDATE employees SET role_id=$1, dept_id=$2, gender=$3, position=$4, salary=$5,
	        allowances=$6, deductions=$7, bank_account=$8, date_joined=$9, status=$10,
	        updated_at=CURRENT_TIMESTAMP
	 WHERE user_id=$11`
)

// duplicateValue picks the submitted value belonging to the violated
// uniqueness constraint's field.
func duplicateValue(field string, u *models.User) string {
	switch field {
	case "username":
		return u.Username
	case "email":
		return u.Email
	default:
		return ""
	}
}

// CreateWithUser inserts the user row, captures its generated id, then
// inserts the employee row pointing at it. Both inserts share one
// transaction: either both rows exist afterwards or neither does.
func (r *EmployeeRepository) CreateWithUser(ctx context.Context, u *models.User, e *models.Employee) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return apperror.Transaction("begin provisioning", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, insertUserSQL,
		u.Username, u.PasswordHash, u.FirstName, u.LastName, u.Email, u.Phone,
		u.DeptID, u.RoleID, u.Designation, u.DateOfJoining, u.Status,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			field := constraintField(constraint)
			return apperror.Duplicate(field, duplicateValue(field, u))
		}
		return apperror.Transaction("insert user", err)
	}

	e.UserID = u.ID
	err = tx.QueryRow(ctx, insertEmployeeSQL,
		e.UserID, e.RoleID, e.DeptID, e.Gender, e.Position, e.Salary,
		e.Allowances, e.Deductions, e.BankAccount, e.DateJoined, e.Status,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return apperror.Duplicate(constraintField(constraint), "")
		}
		if foreignKeyViolation(err) {
			return apperror.Transaction("insert employee: invalid reference", err)
		}
		return apperror.Transaction("insert employee", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Transaction("commit provisioning", err)
	}
	return nil
}

// UpdateWithUser applies the user-table and employee-table updates, plus an
// optional credential change, inside one transaction. An empty
// u.PasswordHash means keep the current credential.
func (r *EmployeeRepository) UpdateWithUser(ctx context.Context, u *models.User, e *models.Employee) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return apperror.Transaction("begin update", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, updateUserSQL,
		u.Username, u.FirstName, u.LastName, u.Email, u.Phone,
		u.DeptID, u.RoleID, u.Designation, u.DateOfJoining, u.Status, u.ID)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			field := constraintField(constraint)
			return apperror.Duplicate(field, duplicateValue(field, u))
		}
		return apperror.Transaction("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("user", u.ID)
	}

	if u.PasswordHash != "" {
		if _, err := tx.Exec(ctx,
			`UPDATE users SET password_hash=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
			u.PasswordHash, u.ID); err != nil {
			return apperror.Transaction("update credential", err)
		}
	}

	tag, err = tx.Exec(ctx, updateEmployeeSQL,
		e.RoleID, e.DeptID, e.Gender, e.Position, e.Salary,
		e.Allowances, e.Deductions, e.BankAccount, e.DateJoined, e.Status, u.ID)
	if err != nil {
		return apperror.Transaction("update employee", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("employee", u.ID)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Transaction("commit update", err)
	}
	return nil
}

// DeleteWithUser removes the employee row before the user row (the foreign
// key points employee→user), both in one transaction.
func (r *EmployeeRepository) DeleteWithUser(ctx context.Context, employeeID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return apperror.Transaction("begin delete", err)
	}
	defer tx.Rollback(ctx)

	var userID int
	err = tx.QueryRow(ctx,
		`DELETE FROM employees WHERE id=$1 RETURNING user_id`, employeeID).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NotFound("employee", employeeID)
	}
	if err != nil {
		if foreignKeyViolation(err) {
			return apperror.New(apperror.KindDuplicate, "employee has payroll records and cannot be removed")
		}
		return apperror.Transaction("delete employee", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE id=$1`, userID); err != nil {
		return apperror.Transaction("delete user", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Transaction("commit delete", err)
	}
	return nil
}

const employeeColumns = `id, user_id, role_id, dept_id, gender, position, salary,
	 allowances, deductions, bank_account, date_joined, status, created_at, updated_at`

func scanEmployee(row pgx.Row) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.UserID, &e.RoleID, &e.DeptID, &e.Gender, &e.Position,
		&e.Salary, &e.Allowances, &e.Deductions, &e.BankAccount, &e.DateJoined,
		&e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepository) Get(ctx context.Context, id int) (*models.Employee, error) {
	e, err := scanEmployee(r.DB.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("employee", id)
	}
	return e, err
}

func (r *EmployeeRepository) GetByUserID(ctx context.Context, userID int) (*models.Employee, error) {
	e, err := scanEmployee(r.DB.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE user_id=$1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("employee", userID)
	}
	return e, err
}

// ListActive returns the active employee set in id order; batch payroll
// iterates this list sequentially.
func (r *EmployeeRepository) ListActive(ctx context.Context) ([]*models.Employee, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE status=$1 ORDER BY id`,
		models.StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// List returns all employees joined with their user and reference names.
func (r *EmployeeRepository) List(ctx context.Context) ([]*models.EmployeeWithUser, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT e.id, e.user_id, e.role_id, e.dept_id, e.gender, e.position, e.salary,
		        e.allowances, e.deductions, e.bank_account, e.date_joined, e.status,
		        e.created_at, e.updated_at,
		        u.username, u.first_name, u.last_name, u.email, u.phone,
		        r.name, d.name
		 FROM employees e
		 JOIN users u ON e.user_id = u.id
		 JOIN roles r ON e.role_id = r.id
		 JOIN departments d ON e.dept_id = d.id
		 ORDER BY e.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []*models.EmployeeWithUser
	for rows.Next() {
		var e models.EmployeeWithUser
		err := rows.Scan(&e.ID, &e.UserID, &e.RoleID, &e.DeptID, &e.Gender, &e.Position,
			&e.Salary, &e.Allowances, &e.Deductions, &e.BankAccount, &e.DateJoined,
			&e.Status, &e.CreatedAt, &e.UpdatedAt,
			&e.Username, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
			&e.RoleName, &e.DepartmentName)
		if err != nil {
			return nil, err
		}
		employees = append(employees, &e)
	}
	return employees, rows.Err()
}
