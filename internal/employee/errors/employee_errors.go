package employeeerrors

import (
	"fmt"
	"net/http"

	"go-ems/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrMissingRequiredFields = apperror.New(
		apperror.CodeInvalidInput,
		"All required fields must be filled",
		http.StatusBadRequest,
	)
	ErrEmployeeIDAlreadyExists = apperror.New(
		apperror.CodeDuplicateKey,
		"Employee ID already exists",
		http.StatusBadRequest,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeDuplicateKey,
		"Email already exists",
		http.StatusBadRequest,
	)
	ErrUsernameAlreadyExists = apperror.New(
		apperror.CodeDuplicateKey,
		"Username already exists",
		http.StatusBadRequest,
	)
)

// Field names a column guarded by a unique constraint.
type Field string

const (
	FieldEmployeeID Field = "employee_id"
	FieldEmail      Field = "email"
	FieldUsername   Field = "username"
)

// DuplicateKeyError is returned by the store when a write collides with an
// existing row on a unique column.
type DuplicateKeyError struct {
	Field Field
	Err   error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate value for %s", e.Field)
}

func (e *DuplicateKeyError) Unwrap() error {
	return e.Err
}

type ConstraintKind string

const (
	ConstraintNotNull ConstraintKind = "not_null"
	ConstraintCheck   ConstraintKind = "check"
)

// ConstraintError is returned by the store when a row is rejected by a NOT
// NULL or CHECK constraint.
type ConstraintError struct {
	Kind   ConstraintKind
	Column string
	Err    error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s constraint violated on %s", e.Kind, e.Column)
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}
