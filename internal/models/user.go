package models

import "time"

// Status values shared by users and employees. Employee status mirrors the
// owning user's status.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type User struct {
	ID            int       `json:"id"`
	Username      string    `json:"username"`
	PasswordHash  string    `json:"-"` // Never expose in JSON
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	DeptID        int       `json:"dept_id"`
	RoleID        int       `json:"role_id"`
	Designation   string    `json:"designation"`
	DateOfJoining time.Time `json:"date_of_joining"`
	Status        string    `json:"status"` // Active or Inactive
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
