package models

// Role and Department are the reference tables resolved by name during
// provisioning. Rows must exist before any user/employee row references them.

type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Reference kinds accepted by the resolver.
const (
	RefRole       = "role"
	RefDepartment = "department"
)
