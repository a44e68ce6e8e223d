package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/models"
)

func TestSettingsUpdate(t *testing.T) {
	store := newFakeSettingStore("15")
	svc := NewSettingService(store)

	cfg, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		TaxRate: "12.5", SocialRate: "7", CurrencySymbol: "ETB",
	})
	require.NoError(t, err)

	assert.True(t, cfg.TaxRate.Equal(dec("12.5")))
	assert.True(t, cfg.SocialRate.Equal(dec("7")))
	assert.Equal(t, "ETB", cfg.CurrencySymbol)
}

func TestSettingsUpdateRejectsOutOfRangeRates(t *testing.T) {
	svc := NewSettingService(newFakeSettingStore("15"))

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		TaxRate: "120", SocialRate: "-3", CurrencySymbol: "",
	})
	require.Error(t, err)

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Len(t, appErr.Violations, 3)
}

func TestSettingsUpdateAffectsNextCalculation(t *testing.T) {
	store := newFakeSettingStore("10")
	settingSvc := NewSettingService(store)

	users := newFakeUserStore()
	employees := newFakeEmployeeStore(users)
	u := users.add(&models.User{Username: "x", Status: models.StatusActive})
	employees.employees[1] = &models.Employee{
		ID: 1, UserID: u.ID, Salary: dec("10000"),
		Allowances: dec("0"), Deductions: dec("0"),
		Status: models.StatusActive,
	}
	employees.nextID = 2
	paySvc := NewPayrollService(newFakePayrollStore(), employees, store)

	_, err := settingSvc.Update(context.Background(), &models.UpdateSettingsRequest{
		TaxRate: "25", SocialRate: "7", CurrencySymbol: "ETB",
	})
	require.NoError(t, err)

	rec, err := paySvc.GenerateOne(context.Background(), &models.GenerateRequest{
		Month: "April", Year: 2026, EmployeeID: 1,
	})
	require.NoError(t, err)
	assert.True(t, rec.Tax.Equal(dec("2500.00")), "tax = %s", rec.Tax)
}
