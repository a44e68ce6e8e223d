package apperror

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindReference    Kind = "reference"
	KindDuplicate    Kind = "duplicate"
	KindTransaction  Kind = "transaction"
	KindLockedPeriod Kind = "locked_period"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindInternal     Kind = "internal"
)

// FieldViolation is one failed check in an aggregated validation report.
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is the single error type the service layer returns. Field carries
// the offending field or entity name so callers can show an actionable
// message instead of a generic "operation failed". Violations is populated
// only for aggregated validation reports.
type Error struct {
	Kind       Kind
	Field      string
	Message    string
	Violations []FieldViolation
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation reports a failed syntactic/range check on a single field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// ValidationReport aggregates every failed check of one submission so the
// caller can present all problems at once.
func ValidationReport(violations []FieldViolation) *Error {
	return &Error{
		Kind:       KindValidation,
		Message:    fmt.Sprintf("input failed %d validation check(s)", len(violations)),
		Violations: violations,
	}
}

// Reference reports a role/department name that could not be resolved to an id.
func Reference(kind, name string) *Error {
	return &Error{
		Kind:    KindReference,
		Field:   kind,
		Message: fmt.Sprintf("%s %q does not exist", kind, name),
	}
}

// Duplicate reports a violated uniqueness constraint, naming the conflicting field.
func Duplicate(field, value string) *Error {
	return &Error{
		Kind:    KindDuplicate,
		Field:   field,
		Message: fmt.Sprintf("%s %q is already in use", field, value),
	}
}

// DuplicatePeriod reports an (employee, period) pair that already has a payroll row.
func DuplicatePeriod(employeeID int, month string, year int) *Error {
	return &Error{
		Kind:    KindDuplicate,
		Field:   "period",
		Message: fmt.Sprintf("payroll for employee %d already generated for %s %d", employeeID, month, year),
	}
}

// Transaction wraps any other persistence failure; the repository has already
// rolled back by the time this is returned.
func Transaction(op string, err error) *Error {
	return &Error{
		Kind:    KindTransaction,
		Message: fmt.Sprintf("%s failed: %v", op, err),
		Err:     err,
	}
}

// LockedPeriod reports a write attempted against a period that is already locked.
func LockedPeriod(month string, year int) *Error {
	return &Error{
		Kind:    KindLockedPeriod,
		Field:   "period",
		Message: fmt.Sprintf("pay period %s %d is locked", month, year),
	}
}

func NotFound(entity string, id interface{}) *Error {
	return &Error{
		Kind:    KindNotFound,
		Field:   entity,
		Message: fmt.Sprintf("%s %v not found", entity, id),
	}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// KindOf classifies any error; non-app errors count as internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// FieldOf returns the field carried by an app error, or "".
func FieldOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
