package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-ems/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	StartDate string `json:"startDate" validate:"required"`
	Gender    string `json:"gender" validate:"omitempty,oneof=male female other"`
}

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its status", func(t *testing.T) {
		wrapped := fmt.Errorf("lookup: %w", apperror.ErrNotFound)

		httpErr := apperror.ToHTTP(wrapped)

		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, apperror.CodeNotFound, httpErr.Code)
		assert.Equal(t, "Resource not found", httpErr.Message)
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("boom"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, "Internal server error", httpErr.Message)
	})
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := apperror.Wrap(cause, apperror.CodeInternalError, "Database error", http.StatusInternalServerError)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Database error: connection reset", err.Error())
	assert.Nil(t, apperror.Wrap(nil, apperror.CodeInternalError, "x", 500))
}

func TestWithDetails(t *testing.T) {
	detailed := apperror.ErrInvalidInput.WithDetails(map[string]any{"fields": []string{"email"}})

	assert.ErrorIs(t, detailed, apperror.ErrInvalidInput)
	assert.NotErrorIs(t, detailed, apperror.ErrNotFound)
	assert.Nil(t, apperror.ErrInvalidInput.Details)

	httpErr := apperror.ToHTTP(fmt.Errorf("create: %w", detailed))
	assert.Equal(t, map[string]any{"fields": []string{"email"}}, httpErr.Details)
}

func TestFormatFieldName(t *testing.T) {
	assert.Equal(t, "Start Date", apperror.FormatFieldName("startDate"))
	assert.Equal(t, "Start Date", apperror.FormatFieldName("start_date"))
	assert.Equal(t, "Email", apperror.FormatFieldName("email"))
}

func TestMapValidationError(t *testing.T) {
	v := validator.New()

	t.Run("required", func(t *testing.T) {
		err := v.Struct(sample{})

		assert.True(t, apperror.IsRequiredViolation(err))
		mapped := apperror.MapValidationError(err)
		assert.Equal(t, "Start Date is required", mapped.Error())
	})

	t.Run("invalid", func(t *testing.T) {
		err := v.Struct(sample{StartDate: "2024-01-01", Gender: "robot"})

		assert.False(t, apperror.IsRequiredViolation(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "Gender is invalid", httpErr.Message)
	})

	t.Run("non validator error", func(t *testing.T) {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(errors.New("EOF")))

		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "Invalid input", httpErr.Message)
	})
}
