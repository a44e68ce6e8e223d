package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"payroll-backend/internal/models"
)

// The users and employees rows are written by separate statements inside one
// transaction. A field missing from one statement's column list would let the
// two tables drift apart on a shared value, so the lists are checked here
// against the full set of mutable columns.

var mutableUserColumns = []string{
	"username", "first_name", "last_name", "email", "phone",
	"dept_id", "role_id", "designation", "date_of_joining", "status",
}

var mutableEmployeeColumns = []string{
	"role_id", "dept_id", "gender", "position", "salary",
	"allowances", "deductions", "bank_account", "date_joined", "status",
}

func TestInsertStatementsCoverAllColumns(t *testing.T) {
	for _, col := range mutableUserColumns {
		assert.Contains(t, insertUserSQL, col, "users insert misses %s", col)
	}
	assert.Contains(t, insertUserSQL, "password_hash")
	for _, col := range mutableEmployeeColumns {
		assert.Contains(t, insertEmployeeSQL, col, "employees insert misses %s", col)
	}
}

func TestUpdateStatementsCoverAllColumns(t *testing.T) {
	for _, col := range mutableUserColumns {
		assert.Contains(t, updateUserSQL, col+"=", "users update misses %s", col)
	}
	for _, col := range mutableEmployeeColumns {
		assert.Contains(t, updateEmployeeSQL, col+"=", "employees update misses %s", col)
	}
}

func TestUpdateEmployeePersistsJoinDate(t *testing.T) {
	// Join date lives in both tables; an update that only touched
	// users.date_of_joining would leave the employee row stale.
	assert.Contains(t, updateEmployeeSQL, "date_joined=")
	assert.Contains(t, updateUserSQL, "date_of_joining=")
}

func TestDuplicateValueMatchesConstraintField(t *testing.T) {
	u := &models.User{Username: "mulu.alem", Email: "mulu@example.com"}

	assert.Equal(t, "mulu.alem", duplicateValue(constraintField("users_username_key"), u))
	assert.Equal(t, "mulu@example.com", duplicateValue(constraintField("users_email_key"), u))
	assert.Equal(t, "", duplicateValue(constraintField("employees_user_id_key"), u))
}
