package employee

import (
	"context"
	"time"

	employeeerrors "go-ems/internal/employee/errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	EnsureSchema(ctx context.Context) error
	Ping(ctx context.Context) error
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uint) (*Employee, error)
	Update(ctx context.Context, id uint, changes EmployeeChanges) error
	Delete(ctx context.Context, id uint) error
}

type repository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRepository(db *gorm.DB) Repository {
	return NewRepositoryWithClock(db, time.Now)
}

// NewRepositoryWithClock lets the caller fix the updated_at value written by
// Update.
func NewRepositoryWithClock(db *gorm.DB, now func() time.Time) Repository {
	return &repository{db: db, now: now}
}

func (r *repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createEmployeesTable, createEmployeesCreatedAtIndex} {
		if err := r.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return mapRepositoryError(r.db.WithContext(ctx).Create(empl).Error)
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&empls).Error
	return empls, mapRepositoryError(err)
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Employee, error) {
	var empl Employee
	if err := r.db.WithContext(ctx).First(&empl, id).Error; err != nil {
		return nil, mapRepositoryError(err)
	}
	return &empl, nil
}

// Update writes every mutable column in one statement. Nil values become
// NULL rather than keeping what was stored.
func (r *repository) Update(ctx context.Context, id uint, changes EmployeeChanges) error {
	result := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"first_name":      changes.FirstName,
			"last_name":       changes.LastName,
			"email":           changes.Email,
			"phone":           changes.Phone,
			"date_of_birth":   changes.DateOfBirth,
			"gender":          changes.Gender,
			"address":         changes.Address,
			"department":      changes.Department,
			"position":        changes.Position,
			"employment_type": changes.EmploymentType,
			"start_date":      changes.StartDate,
			"salary":          changes.Salary,
			"username":        changes.Username,
			"permissions":     changes.Permissions,
			"updated_at":      r.now(),
		})
	if result.Error != nil {
		return mapRepositoryError(result.Error)
	}
	if result.RowsAffected == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Employee{}, id)
	if result.Error != nil {
		return mapRepositoryError(result.Error)
	}
	if result.RowsAffected == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}
	return nil
}
