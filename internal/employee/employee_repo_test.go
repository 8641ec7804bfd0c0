package employee_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"go-ems/internal/employee"
	employeeerrors "go-ems/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoTest(t *testing.T) (employee.Repository, sqlmock.Sqlmock) {
	t.Helper()
	return setupRepoTestWithClock(t, time.Now)
}

func setupRepoTestWithClock(t *testing.T, now func() time.Time) (employee.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return employee.NewRepositoryWithClock(gdb, now), mock
}

var employeeColumns = []string{
	"id", "employee_id", "first_name", "last_name", "email", "phone", "date_of_birth",
	"gender", "address", "department", "position", "employment_type", "start_date",
	"salary", "username", "password", "permissions", "created_at", "updated_at",
}

func TestEmployeeRepository_EnsureSchema(t *testing.T) {
	repo, mock := setupRepoTest(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS employees")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx_employees_created_at")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_Create(t *testing.T) {
	newEmployee := func() *employee.Employee {
		return &employee.Employee{
			EmployeeID:     "E1",
			FirstName:      "A",
			LastName:       "B",
			Email:          "a@b.com",
			Department:     "Eng",
			Position:       "Dev",
			EmploymentType: employee.EmploymentFullTime,
			StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Username:       "ab1",
			Password:       "x",
			Permissions:    employee.PermissionEmployee,
		}
	}

	t.Run("sets generated id", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "employees"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		empl := newEmployee()
		err := repo.Create(context.Background(), empl)

		assert.NoError(t, err)
		assert.Equal(t, uint(42), empl.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	duplicates := []struct {
		constraint string
		field      employeeerrors.Field
	}{
		{"uq_employees_employee_id", employeeerrors.FieldEmployeeID},
		{"uq_employees_email", employeeerrors.FieldEmail},
		{"uq_employees_username", employeeerrors.FieldUsername},
	}
	for _, tc := range duplicates {
		t.Run("duplicate "+string(tc.field), func(t *testing.T) {
			repo, mock := setupRepoTest(t)

			mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "employees"`)).
				WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: tc.constraint})

			err := repo.Create(context.Background(), newEmployee())

			var dupErr *employeeerrors.DuplicateKeyError
			assert.True(t, errors.As(err, &dupErr))
			assert.Equal(t, tc.field, dupErr.Field)
		})
	}

	t.Run("check violation", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "employees"`)).
			WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "ck_employees_gender"})

		err := repo.Create(context.Background(), newEmployee())

		var constraintErr *employeeerrors.ConstraintError
		assert.True(t, errors.As(err, &constraintErr))
		assert.Equal(t, employeeerrors.ConstraintCheck, constraintErr.Kind)
		assert.Equal(t, "gender", constraintErr.Column)
	})

	t.Run("unknown failure passes through", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		storeErr := errors.New("connection reset")

		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "employees"`)).WillReturnError(storeErr)

		err := repo.Create(context.Background(), newEmployee())

		assert.ErrorIs(t, err, storeErr)
	})
}

func TestEmployeeRepository_FindAll(t *testing.T) {
	repo, mock := setupRepoTest(t)
	newer := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	older := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(employeeColumns).
		AddRow(2, "E2", "C", "D", "c@d.com", nil, nil, nil, nil, "Ops", "Dev", "contract", start, nil, "cd2", "y", "manager", newer, newer).
		AddRow(1, "E1", "A", "B", "a@b.com", "555", nil, "male", nil, "Eng", "Dev", "full-time", start, "50000.00", "ab1", "x", "employee", older, older)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "employees" ORDER BY created_at DESC`)).
		WillReturnRows(rows)

	empls, err := repo.FindAll(context.Background())

	assert.NoError(t, err)
	assert.Len(t, empls, 2)
	assert.Equal(t, "E2", empls[0].EmployeeID)
	assert.Nil(t, empls[0].Phone)
	assert.False(t, empls[0].Salary.Valid)
	assert.Equal(t, "E1", empls[1].EmployeeID)
	assert.Equal(t, "555", *empls[1].Phone)
	assert.Equal(t, "50000.00", empls[1].Salary.Decimal.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_FindByID(t *testing.T) {
	query := regexp.QuoteMeta(`SELECT * FROM "employees" WHERE "employees"."id" = $1`)

	t.Run("found", func(t *testing.T) {
		repo, mock := setupRepoTest(t)
		now := time.Now().UTC()

		mock.ExpectQuery(query).
			WillReturnRows(sqlmock.NewRows(employeeColumns).
				AddRow(5, "E5", "A", "B", "a@b.com", nil, nil, nil, nil, "Eng", "Dev", "intern", now, nil, "ab5", "x", "employee", now, now))

		empl, err := repo.FindByID(context.Background(), 5)

		assert.NoError(t, err)
		assert.Equal(t, uint(5), empl.ID)
		assert.Equal(t, employee.EmploymentIntern, empl.EmploymentType)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(employeeColumns))

		empl, err := repo.FindByID(context.Background(), 5)

		assert.Nil(t, empl)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeRepository_Update(t *testing.T) {
	first := "Alice"
	changes := employee.EmployeeChanges{FirstName: &first, Permissions: employee.PermissionEmployee}

	t.Run("success", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "employees" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(context.Background(), 1, changes))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("touches updated_at and leaves identity columns alone", func(t *testing.T) {
		fixed := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
		repo, mock := setupRepoTestWithClock(t, func() time.Time { return fixed })

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "employees" SET `+
			`"address"=$1,"date_of_birth"=$2,"department"=$3,"email"=$4,"employment_type"=$5,`+
			`"first_name"=$6,"gender"=$7,"last_name"=$8,"permissions"=$9,"phone"=$10,`+
			`"position"=$11,"salary"=$12,"start_date"=$13,"updated_at"=$14,"username"=$15 `+
			`WHERE id = $16`)).
			WithArgs(nil, nil, nil, nil, nil, "Alice", nil, nil, "employee", nil, nil, nil, nil, fixed, nil, 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Update(context.Background(), 1, changes))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "employees" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(context.Background(), 1, changes), employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("required column nulled", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "employees" SET`)).
			WillReturnError(&pgconn.PgError{Code: "23502", ColumnName: "last_name"})

		err := repo.Update(context.Background(), 1, changes)

		var constraintErr *employeeerrors.ConstraintError
		assert.True(t, errors.As(err, &constraintErr))
		assert.Equal(t, employeeerrors.ConstraintNotNull, constraintErr.Kind)
		assert.Equal(t, "last_name", constraintErr.Column)
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "employees" SET`)).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employees_username"})

		err := repo.Update(context.Background(), 1, changes)

		var dupErr *employeeerrors.DuplicateKeyError
		assert.True(t, errors.As(err, &dupErr))
		assert.Equal(t, employeeerrors.FieldUsername, dupErr.Field)
	})
}

func TestEmployeeRepository_Delete(t *testing.T) {
	query := regexp.QuoteMeta(`DELETE FROM "employees" WHERE "employees"."id" = $1`)

	t.Run("success", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(query).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row", func(t *testing.T) {
		repo, mock := setupRepoTest(t)

		mock.ExpectExec(query).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 3), employeeerrors.ErrEmployeeNotFound)
	})
}
