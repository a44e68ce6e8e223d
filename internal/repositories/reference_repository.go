package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/models"
)

// ReferenceRepository resolves role and department names to ids and lists
// the reference tables for form population.
type ReferenceRepository struct {
	DB *pgxpool.Pool
}

func NewReferenceRepository(db *pgxpool.Pool) *ReferenceRepository {
	return &ReferenceRepository{DB: db}
}

// ResolveRole looks up a role id by name, case-insensitively. A missing
// name is a reference error, never an implicit insert.
func (r *ReferenceRepository) ResolveRole(ctx context.Context, name string) (int, error) {
	var id int
	err := r.DB.QueryRow(ctx,
		`SELECT id FROM roles WHERE LOWER(name)=LOWER($1)`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperror.Reference(models.RefRole, name)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ResolveDepartment looks up a department id by name, case-insensitively.
func (r *ReferenceRepository) ResolveDepartment(ctx context.Context, name string) (int, error) {
	var id int
	err := r.DB.QueryRow(ctx,
		`SELECT id FROM departments WHERE LOWER(name)=LOWER($1)`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, apperror.Reference(models.RefDepartment, name)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ReferenceRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *ReferenceRepository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	rows, err := r.DB.Query(ctx, `SELECT id, name FROM departments ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []models.Department
	for rows.Next() {
		var dept models.Department
		if err := rows.Scan(&dept.ID, &dept.Name); err != nil {
			return nil, err
		}
		departments = append(departments, dept)
	}
	return departments, rows.Err()
}
