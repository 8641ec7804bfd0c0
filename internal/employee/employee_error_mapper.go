package employee

import (
	"errors"
	"net/http"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
	pgCheckViolation   = "23514"
)

// mapRepositoryError converts driver errors into the store's typed errors
// using the constraint metadata Postgres reports.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if field, ok := uniqueConstraintFields[pgErr.ConstraintName]; ok {
				return &employeeerrors.DuplicateKeyError{Field: field, Err: err}
			}
		case pgNotNullViolation:
			return &employeeerrors.ConstraintError{
				Kind:   employeeerrors.ConstraintNotNull,
				Column: pgErr.ColumnName,
				Err:    err,
			}
		case pgCheckViolation:
			return &employeeerrors.ConstraintError{
				Kind:   employeeerrors.ConstraintCheck,
				Column: checkConstraintColumns[pgErr.ConstraintName],
				Err:    err,
			}
		}
	}

	return err
}

// mapServiceError resolves any error leaving the service into an AppError
// the handler can render.
func mapServiceError(err error) error {
	var dupErr *employeeerrors.DuplicateKeyError
	if errors.As(err, &dupErr) {
		switch dupErr.Field {
		case employeeerrors.FieldEmployeeID:
			return employeeerrors.ErrEmployeeIDAlreadyExists
		case employeeerrors.FieldEmail:
			return employeeerrors.ErrEmailAlreadyExists
		case employeeerrors.FieldUsername:
			return employeeerrors.ErrUsernameAlreadyExists
		}
		return apperror.Wrap(err, apperror.CodeDuplicateKey,
			apperror.FormatFieldName(string(dupErr.Field))+" already exists", http.StatusBadRequest)
	}

	var constraintErr *employeeerrors.ConstraintError
	if errors.As(err, &constraintErr) {
		field := apperror.FormatFieldName(constraintErr.Column)
		if field == "" {
			field = "A field"
		}
		message := field + " has an invalid value"
		if constraintErr.Kind == employeeerrors.ConstraintNotNull {
			message = field + " is required"
		}
		return apperror.Wrap(err, apperror.CodeConstraint, message, http.StatusBadRequest)
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	return apperror.Wrap(err, apperror.CodeInternalError, "Database error: "+err.Error(), http.StatusInternalServerError)
}
