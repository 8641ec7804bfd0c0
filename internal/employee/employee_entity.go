package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"

	EmploymentFullTime = "full-time"
	EmploymentPartTime = "part-time"
	EmploymentContract = "contract"
	EmploymentIntern   = "intern"

	PermissionEmployee = "employee"
	PermissionManager  = "manager"
	PermissionAdmin    = "admin"
)

// Employee is one row of the employees table. Pointer fields are nullable
// columns; nil is written as NULL.
type Employee struct {
	ID             uint   `gorm:"primaryKey"`
	EmployeeID     string `gorm:"column:employee_id"`
	FirstName      string
	LastName       string
	Email          string
	Phone          *string
	DateOfBirth    *time.Time `gorm:"type:date"`
	Gender         *string
	Address        *string
	Department     string
	Position       string
	EmploymentType string
	StartDate      time.Time           `gorm:"type:date"`
	Salary         decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Username       string
	// Password is stored as received. Hashing is not part of this service.
	Password    string
	Permissions string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeChanges is the full set of mutable columns written by an update.
// employee_id, password and created_at are absent on purpose: they cannot be
// changed after insert.
type EmployeeChanges struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	DateOfBirth    *time.Time
	Gender         *string
	Address        *string
	Department     *string
	Position       *string
	EmploymentType *string
	StartDate      *time.Time
	Salary         decimal.NullDecimal
	Username       *string
	Permissions    string
}
