package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/auth"
	"payroll-backend/internal/models"
)

func validInput() *models.EmployeeInput {
	return &models.EmployeeInput{
		Username:       "mulu.alem",
		Password:       "s3cret-pass",
		FirstName:      "Mulu",
		LastName:       "Alem",
		Email:          "mulu.alem@example.com",
		Phone:          "0912345678",
		RoleName:       "Employee",
		DepartmentName: "Finance",
		Designation:    "Accountant II",
		Gender:         "Female",
		Position:       "Accountant",
		Salary:         "10000",
		Allowances:     "500",
		Deductions:     "100",
		BankAccount:    "1000234567890",
		DateJoined:     "2024-03-15",
		Status:         models.StatusActive,
	}
}

func provisioningFixture(t *testing.T) (*ProvisioningService, *fakeUserStore, *fakeEmployeeStore) {
	t.Helper()
	users := newFakeUserStore()
	employees := newFakeEmployeeStore(users)
	resolver := NewResolverService(newFakeReferenceStore())
	return NewProvisioningService(users, employees, resolver), users, employees
}

func TestProvisionLinksUserAndEmployee(t *testing.T) {
	svc, users, employees := provisioningFixture(t)

	result, err := svc.Provision(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotZero(t, result.UserID)
	assert.NotZero(t, result.EmployeeID)

	emp, ok := employees.employees[result.EmployeeID]
	require.True(t, ok)
	assert.Equal(t, result.UserID, emp.UserID)
	assert.Equal(t, 4, emp.RoleID)
	assert.Equal(t, 2, emp.DeptID)
	assert.True(t, emp.Salary.Equal(dec("10000")))

	user := users.users[result.UserID]
	require.NotNil(t, user)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash, "password must never be stored in the clear")
	assert.True(t, auth.VerifyPassword(user.PasswordHash, "s3cret-pass"))
}

func TestProvisionUnknownRoleWritesNothing(t *testing.T) {
	svc, users, employees := provisioningFixture(t)

	in := validInput()
	in.RoleName = "Wizard"

	_, err := svc.Provision(context.Background(), in)
	assert.Equal(t, apperror.KindReference, apperror.KindOf(err))
	assert.Empty(t, users.users)
	assert.Empty(t, employees.employees)
}

func TestProvisionDuplicateUsername(t *testing.T) {
	svc, _, employees := provisioningFixture(t)

	_, err := svc.Provision(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Email = "other@example.com"
	_, err = svc.Provision(context.Background(), in)

	assert.Equal(t, apperror.KindDuplicate, apperror.KindOf(err))
	assert.Equal(t, "username", apperror.FieldOf(err))
	assert.Len(t, employees.employees, 1)
}

func TestProvisionDuplicateEmail(t *testing.T) {
	svc, _, _ := provisioningFixture(t)

	_, err := svc.Provision(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Username = "other.user"
	_, err = svc.Provision(context.Background(), in)

	assert.Equal(t, apperror.KindDuplicate, apperror.KindOf(err))
	assert.Equal(t, "email", apperror.FieldOf(err))
}

func TestProvisionAggregatesValidationFailures(t *testing.T) {
	svc, users, _ := provisioningFixture(t)

	in := validInput()
	in.FirstName = "Mulu123"
	in.Email = "not-an-email"
	in.Phone = "0812345678"
	in.Salary = "-50"

	_, err := svc.Provision(context.Background(), in)
	require.Error(t, err)

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Violations, 4)
	assert.Empty(t, users.users, "validation failure must precede any write")
}

func TestPhoneShapes(t *testing.T) {
	svc, _, _ := provisioningFixture(t)

	in := validInput()
	in.Phone = "+251912345678"
	_, err := svc.Provision(context.Background(), in)
	assert.NoError(t, err, "international form should be accepted")

	in = validInput()
	in.Username = "second.user"
	in.Email = "second@example.com"
	in.Phone = "12345678"
	_, err = svc.Provision(context.Background(), in)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUpdateKeepsCredentialWhenPasswordEmpty(t *testing.T) {
	svc, users, _ := provisioningFixture(t)

	result, err := svc.Provision(context.Background(), validInput())
	require.NoError(t, err)
	originalHash := users.users[result.UserID].PasswordHash

	in := validInput()
	in.Password = ""
	in.Designation = "Senior Accountant"
	require.NoError(t, svc.Update(context.Background(), result.EmployeeID, in))

	updated := users.users[result.UserID]
	assert.Equal(t, originalHash, updated.PasswordHash)
	assert.Equal(t, "Senior Accountant", updated.Designation)
}

func TestUpdateUnknownEmployee(t *testing.T) {
	svc, _, _ := provisioningFixture(t)

	err := svc.Update(context.Background(), 99, validInput())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteRemovesBothRecords(t *testing.T) {
	svc, users, employees := provisioningFixture(t)

	result, err := svc.Provision(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), result.EmployeeID))
	assert.Empty(t, employees.employees)
	assert.Empty(t, users.users)

	err = svc.Delete(context.Background(), result.EmployeeID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
