// Package validation holds the pure, side-effect-free field checks that run
// before any persistence is attempted. All checks for one submission run to
// completion and their failures are aggregated into a single report.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"payroll-backend/internal/apperror"
	"payroll-backend/internal/models"
	"payroll-backend/internal/timeutil"
)

var validate = validator.New()

var (
	// Ethiopian mobile: exactly 09XXXXXXXX or +2519XXXXXXXX
	ethPhoneRe = regexp.MustCompile(`^(09\d{8}|\+2519\d{8})$`)
	// Letters, spaces, hyphens and apostrophes only
	personNameRe = regexp.MustCompile(`^[A-Za-z]+([ '-][A-Za-z]+)*$`)
)

func init() {
	_ = validate.RegisterValidation("ethphone", func(fl validator.FieldLevel) bool {
		return ethPhoneRe.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNameRe.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("posdecimal", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		return err == nil && d.IsPositive()
	})
	_ = validate.RegisterValidation("nonnegdecimal", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		d, err := decimal.NewFromString(s)
		return err == nil && !d.IsNegative()
	})
	_ = validate.RegisterValidation("pastdate", func(fl validator.FieldLevel) bool {
		t, err := timeutil.ParseDate(fl.Field().String())
		if err != nil {
			return false
		}
		return !t.After(timeutil.Now())
	})
}

// Required reports whether the value is non-empty after trimming.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.Validation(field, fmt.Sprintf("%s is required", field))
	}
	return nil
}

// Name checks letters/spaces/hyphens/apostrophes only, non-empty.
func Name(field, value string) error {
	if validate.Var(value, "required,personname") != nil {
		return apperror.Validation(field, fmt.Sprintf("%s may contain letters, spaces, hyphens and apostrophes only", field))
	}
	return nil
}

// Email checks the standard local@domain.tld shape.
func Email(field, value string) error {
	if validate.Var(value, "required,email") != nil {
		return apperror.Validation(field, fmt.Sprintf("%s is not a valid email address", field))
	}
	return nil
}

// Phone checks the Ethiopian mobile shape: 09XXXXXXXX or +2519XXXXXXXX.
func Phone(field, value string) error {
	if validate.Var(value, "required,ethphone") != nil {
		return apperror.Validation(field, fmt.Sprintf("%s must be an Ethiopian mobile number (09XXXXXXXX or +2519XXXXXXXX)", field))
	}
	return nil
}

// Salary checks the value parses as a decimal and is strictly positive.
func Salary(field, value string) error {
	if validate.Var(value, "required,posdecimal") != nil {
		return apperror.Validation(field, fmt.Sprintf("%s must be a positive amount", field))
	}
	return nil
}

// Amount checks an optional decimal value is non-negative (standing
// allowances/deductions may be empty, meaning zero).
func Amount(field, value string) error {
	if validate.Var(value, "nonnegdecimal") != nil {
		return apperror.Validation(field, fmt.Sprintf("%s must be a non-negative amount", field))
	}
	return nil
}

// JoinDate checks the value parses as an ISO date and is not in the future.
func JoinDate(field, value string) error {
	if err := validate.Var(value, "required"); err != nil {
		return apperror.Validation(field, fmt.Sprintf("%s is required", field))
	}
	if _, err := timeutil.ParseDate(value); err != nil {
		return apperror.Validation(field, fmt.Sprintf("%s must be an ISO date (YYYY-MM-DD)", field))
	}
	if validate.Var(value, "pastdate") != nil {
		return apperror.Validation(field, fmt.Sprintf("%s must not be in the future", field))
	}
	return nil
}

// Status checks the value is one of the known status enums.
func Status(field, value string) error {
	if value != models.StatusActive && value != models.StatusInactive {
		return apperror.Validation(field, fmt.Sprintf("%s must be Active or Inactive", field))
	}
	return nil
}

var monthNames = map[string]time.Month{
	"January": time.January, "February": time.February, "March": time.March,
	"April": time.April, "May": time.May, "June": time.June,
	"July": time.July, "August": time.August, "September": time.September,
	"October": time.October, "November": time.November, "December": time.December,
}

// Period checks the (month name, year) pair identifies a plausible cycle.
func Period(month string, year int) error {
	if _, ok := monthNames[month]; !ok {
		return apperror.Validation("month", fmt.Sprintf("%q is not a month name", month))
	}
	if year < 2000 || year > 2100 {
		return apperror.Validation("year", fmt.Sprintf("year %d is out of range", year))
	}
	return nil
}

// Rate checks a percentage value parses and sits in [0, 100].
func Rate(field, value string) error {
	d, err := decimal.NewFromString(value)
	if err != nil || d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return apperror.Validation(field, fmt.Sprintf("%s must be a percentage between 0 and 100", field))
	}
	return nil
}

func collect(violations *[]apperror.FieldViolation, err error) {
	if err == nil {
		return
	}
	*violations = append(*violations, apperror.FieldViolation{
		Field:  apperror.FieldOf(err),
		Reason: err.Error(),
	})
}

// EmployeeInput runs every provisioning check to completion and aggregates
// the failures. requirePassword is false on the update path, where an empty
// password means "keep the current credential".
func EmployeeInput(in *models.EmployeeInput, requirePassword bool) error {
	var violations []apperror.FieldViolation

	collect(&violations, Required("username", in.Username))
	if requirePassword {
		collect(&violations, Required("password", in.Password))
	}
	collect(&violations, Name("first_name", in.FirstName))
	collect(&violations, Name("last_name", in.LastName))
	collect(&violations, Email("email", in.Email))
	collect(&violations, Phone("phone", in.Phone))
	collect(&violations, Required("role_name", in.RoleName))
	collect(&violations, Required("department_name", in.DepartmentName))
	collect(&violations, Required("designation", in.Designation))
	collect(&violations, Required("gender", in.Gender))
	collect(&violations, Salary("salary", in.Salary))
	collect(&violations, Amount("allowances", in.Allowances))
	collect(&violations, Amount("deductions", in.Deductions))
	collect(&violations, Required("bank_account", in.BankAccount))
	collect(&violations, JoinDate("date_joined", in.DateJoined))
	collect(&violations, Status("status", in.Status))

	if len(violations) > 0 {
		return apperror.ValidationReport(violations)
	}
	return nil
}
