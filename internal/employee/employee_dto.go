package employee

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest accepts JSON and url-encoded forms alike.
type CreateEmployeeRequest struct {
	EmployeeID     string `json:"employeeId" form:"employeeId" binding:"required"`
	FirstName      string `json:"firstName" form:"firstName" binding:"required"`
	LastName       string `json:"lastName" form:"lastName" binding:"required"`
	Email          string `json:"email" form:"email" binding:"required"`
	Phone          string `json:"phone" form:"phone"`
	DateOfBirth    string `json:"dob" form:"dob" binding:"omitempty,datetime=2006-01-02"`
	Gender         string `json:"gender" form:"gender" binding:"omitempty,oneof=male female other"`
	Address        string `json:"address" form:"address"`
	Department     string `json:"department" form:"department" binding:"required"`
	Position       string `json:"position" form:"position" binding:"required"`
	EmploymentType string `json:"employmentType" form:"employmentType" binding:"required,oneof=full-time part-time contract intern"`
	StartDate      string `json:"startDate" form:"startDate" binding:"required,datetime=2006-01-02"`
	Salary         Amount `json:"salary" form:"salary"`
	Username       string `json:"username" form:"username" binding:"required"`
	Password       string `json:"password" form:"password" binding:"required"`
	Permissions    string `json:"permissions" form:"permissions" binding:"omitempty,oneof=employee manager admin"`
}

// UpdateEmployeeRequest carries every mutable field. Nothing is required:
// a field left out is written as NULL.
type UpdateEmployeeRequest struct {
	FirstName      string `json:"firstName" form:"firstName"`
	LastName       string `json:"lastName" form:"lastName"`
	Email          string `json:"email" form:"email"`
	Phone          string `json:"phone" form:"phone"`
	DateOfBirth    string `json:"dob" form:"dob"`
	Gender         string `json:"gender" form:"gender"`
	Address        string `json:"address" form:"address"`
	Department     string `json:"department" form:"department"`
	Position       string `json:"position" form:"position"`
	EmploymentType string `json:"employmentType" form:"employmentType"`
	StartDate      string `json:"startDate" form:"startDate"`
	Salary         Amount `json:"salary" form:"salary"`
	Username       string `json:"username" form:"username"`
	Permissions    string `json:"permissions" form:"permissions"`
}

type CreateEmployeeResponse struct {
	ID uint `json:"id"`
}

// EmployeeResponse uses the column names as keys. Password and timestamps
// are only filled for the listing.
type EmployeeResponse struct {
	ID             uint       `json:"id"`
	EmployeeID     string     `json:"employee_id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          *string    `json:"phone"`
	DateOfBirth    *string    `json:"date_of_birth"`
	Gender         *string    `json:"gender"`
	Address        *string    `json:"address"`
	Department     string     `json:"department"`
	Position       string     `json:"position"`
	EmploymentType string     `json:"employment_type"`
	StartDate      string     `json:"start_date"`
	Salary         *string    `json:"salary"`
	Username       string     `json:"username"`
	Password       string     `json:"password,omitempty"`
	Permissions    string     `json:"permissions"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// Amount is an optional money value. It decodes from a JSON number, a
// numeric string or a form value; null and blank both mean absent.
type Amount struct {
	Set   bool
	Value decimal.Decimal
}

func NewAmount(value string) Amount {
	var a Amount
	_ = a.UnmarshalParam(value)
	return a
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*a = Amount{}
		return nil
	}
	return a.UnmarshalParam(strings.Trim(raw, `"`))
}

// UnmarshalParam lets gin's form binding fill the field.
func (a *Amount) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		*a = Amount{}
		return nil
	}

	value, err := decimal.NewFromString(param)
	if err != nil {
		return fmt.Errorf("salary must be a number: %w", err)
	}
	*a = Amount{Set: true, Value: value}
	return nil
}

// NullDecimal rounds to currency precision.
func (a Amount) NullDecimal() decimal.NullDecimal {
	if !a.Set {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: a.Value.Round(2), Valid: true}
}
