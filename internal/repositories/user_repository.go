package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/models"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, username, password_hash, first_name, last_name, email, phone,
	 dept_id, role_id, designation, date_of_joining, status, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.Email, &u.Phone, &u.DeptID, &u.RoleID, &u.Designation, &u.DateOfJoining,
		&u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Get(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("user", id)
	}
	return u, err
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username=$1`, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.NotFound("user", username)
	}
	return u, err
}

// UsernameInUse checks whether another user (excluding excludeID, 0 for
// creation) already holds the username.
func (r *UserRepository) UsernameInUse(ctx context.Context, username string, excludeID int) (bool, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE username=$1 AND id<>$2`,
		username, excludeID).Scan(&count)
	return count > 0, err
}

// EmailInUse checks whether another user already holds the email address.
func (r *UserRepository) EmailInUse(ctx context.Context, email string, excludeID int) (bool, error) {
	var count int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE email=$1 AND id<>$2`,
		email, excludeID).Scan(&count)
	return count > 0, err
}
