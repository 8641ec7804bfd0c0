package employee

import employeeerrors "go-ems/internal/employee/errors"

const (
	constraintUniqueEmployeeID = "uq_employees_employee_id"
	constraintUniqueEmail      = "uq_employees_email"
	constraintUniqueUsername   = "uq_employees_username"
	constraintGender           = "ck_employees_gender"
	constraintEmploymentType   = "ck_employees_employment_type"
	constraintPermissions      = "ck_employees_permissions"
)

// uniqueConstraintFields resolves a unique violation to the offending field.
var uniqueConstraintFields = map[string]employeeerrors.Field{
	constraintUniqueEmployeeID: employeeerrors.FieldEmployeeID,
	constraintUniqueEmail:      employeeerrors.FieldEmail,
	constraintUniqueUsername:   employeeerrors.FieldUsername,
}

var checkConstraintColumns = map[string]string{
	constraintGender:         "gender",
	constraintEmploymentType: "employment_type",
	constraintPermissions:    "permissions",
}

const createEmployeesTable = `
CREATE TABLE IF NOT EXISTS employees (
    id              SERIAL PRIMARY KEY,
    employee_id     VARCHAR(20)  NOT NULL,
    first_name      VARCHAR(100) NOT NULL,
    last_name       VARCHAR(100) NOT NULL,
    email           VARCHAR(255) NOT NULL,
    phone           VARCHAR(20),
    date_of_birth   DATE,
    gender          VARCHAR(10),
    address         TEXT,
    department      VARCHAR(100) NOT NULL,
    position        VARCHAR(100) NOT NULL,
    employment_type VARCHAR(20)  NOT NULL,
    start_date      DATE         NOT NULL,
    salary          NUMERIC(10,2),
    username        VARCHAR(100) NOT NULL,
    password        VARCHAR(255) NOT NULL,
    permissions     VARCHAR(10)  NOT NULL DEFAULT 'employee',
    created_at      TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
    updated_at      TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
    CONSTRAINT ` + constraintUniqueEmployeeID + ` UNIQUE (employee_id),
    CONSTRAINT ` + constraintUniqueEmail + ` UNIQUE (email),
    CONSTRAINT ` + constraintUniqueUsername + ` UNIQUE (username),
    CONSTRAINT ` + constraintGender + ` CHECK (gender IN ('male', 'female', 'other')),
    CONSTRAINT ` + constraintEmploymentType + ` CHECK (employment_type IN ('full-time', 'part-time', 'contract', 'intern')),
    CONSTRAINT ` + constraintPermissions + ` CHECK (permissions IN ('employee', 'manager', 'admin'))
)`

const createEmployeesCreatedAtIndex = `CREATE INDEX IF NOT EXISTS idx_employees_created_at ON employees (created_at DESC)`
