package employee

import (
	"context"
	"strings"
	"time"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/events"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (CreateEmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id uint) (EmployeeResponse, error)
	Update(ctx context.Context, id uint, req UpdateEmployeeRequest) error
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo      Repository
	publisher EventPublisher
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(repo Repository, publisher EventPublisher, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (CreateEmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("email", req.Email),
	)

	if missing := missingRequiredFields(req); len(missing) > 0 {
		s.logger.Warn("create employee missing required fields",
			zap.String("request_id", rid),
			zap.Strings("fields", missing),
		)
		return CreateEmployeeResponse{}, employeeerrors.ErrMissingRequiredFields.WithDetails(map[string]any{
			"fields": missing,
		})
	}

	startDate, err := parseDate(req.StartDate, "startDate")
	if err != nil {
		return CreateEmployeeResponse{}, err
	}
	dateOfBirth, err := parseOptionalDate(req.DateOfBirth, "dob")
	if err != nil {
		return CreateEmployeeResponse{}, err
	}

	empl := &Employee{
		EmployeeID:     strings.TrimSpace(req.EmployeeID),
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          strings.TrimSpace(req.Email),
		Phone:          optionalString(req.Phone),
		DateOfBirth:    dateOfBirth,
		Gender:         optionalString(req.Gender),
		Address:        optionalString(req.Address),
		Department:     strings.TrimSpace(req.Department),
		Position:       strings.TrimSpace(req.Position),
		EmploymentType: strings.TrimSpace(req.EmploymentType),
		StartDate:      startDate,
		Salary:         req.Salary.NullDecimal(),
		Username:       strings.TrimSpace(req.Username),
		Password:       req.Password,
		Permissions:    permissionsOrDefault(req.Permissions),
	}

	if err := s.repo.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed",
			zap.String("request_id", rid),
			zap.String("employee_id", empl.EmployeeID),
			zap.Error(err),
		)
		return CreateEmployeeResponse{}, err
	}

	s.publish(ctx, events.EmployeeCreated, empl.ID, empl.EmployeeID)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Uint("id", empl.ID),
	)

	return CreateEmployeeResponse{ID: empl.ID}, nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("request_id", contextutil.GetRequestID(ctx)))

	empls, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, err
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetByID(ctx context.Context, id uint) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Uint("id", id),
	)

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.Uint("id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	return mapToResponse(*empl), nil
}

// Update replaces every mutable column. Presence is not checked here; the
// store's NOT NULL constraints reject a row that loses a required value.
func (s *service) Update(ctx context.Context, id uint, req UpdateEmployeeRequest) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.Uint("id", id),
	)

	startDate, err := parseOptionalDate(req.StartDate, "startDate")
	if err != nil {
		return err
	}
	dateOfBirth, err := parseOptionalDate(req.DateOfBirth, "dob")
	if err != nil {
		return err
	}

	changes := EmployeeChanges{
		FirstName:      optionalString(req.FirstName),
		LastName:       optionalString(req.LastName),
		Email:          optionalString(req.Email),
		Phone:          optionalString(req.Phone),
		DateOfBirth:    dateOfBirth,
		Gender:         optionalString(req.Gender),
		Address:        optionalString(req.Address),
		Department:     optionalString(req.Department),
		Position:       optionalString(req.Position),
		EmploymentType: optionalString(req.EmploymentType),
		StartDate:      startDate,
		Salary:         req.Salary.NullDecimal(),
		Username:       optionalString(req.Username),
		Permissions:    permissionsOrDefault(req.Permissions),
	}

	if err := s.repo.Update(ctx, id, changes); err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("request_id", rid),
			zap.Uint("id", id),
			zap.Error(err),
		)
		return err
	}

	s.publish(ctx, events.EmployeeUpdated, id, "")
	s.logger.Info("update employee success", zap.String("request_id", rid), zap.Uint("id", id))
	return nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.Uint("id", id),
	)

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete employee failed",
			zap.String("request_id", rid),
			zap.Uint("id", id),
			zap.Error(err),
		)
		return err
	}

	s.publish(ctx, events.EmployeeDeleted, id, "")
	s.logger.Info("delete employee success", zap.String("request_id", rid), zap.Uint("id", id))
	return nil
}

// publish never fails the request: the row is already written.
func (s *service) publish(ctx context.Context, eventType string, id uint, code string) {
	event := events.EmployeeLifecycleEvent{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		RequestID:    contextutil.GetRequestID(ctx),
		EmployeeID:   id,
		EmployeeCode: code,
		OccurredAt:   s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish employee event failed",
			zap.String("event_type", eventType),
			zap.Uint("id", id),
			zap.Error(err),
		)
	}
}

func missingRequiredFields(req CreateEmployeeRequest) []string {
	required := []struct {
		name  string
		value string
	}{
		{"employeeId", req.EmployeeID},
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"email", req.Email},
		{"department", req.Department},
		{"position", req.Position},
		{"employmentType", req.EmploymentType},
		{"startDate", req.StartDate},
		{"username", req.Username},
		{"password", req.Password},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// optionalString is the single rule for optional text: blank means absent.
func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func permissionsOrDefault(v string) string {
	if p := optionalString(v); p != nil {
		return *p
	}
	return PermissionEmployee
}

func parseDate(raw, field string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, apperror.InvalidField(apperror.FormatFieldName(field))
	}
	return parsed, nil
}

func parseOptionalDate(raw, field string) (*time.Time, error) {
	if optionalString(raw) == nil {
		return nil, nil
	}
	parsed, err := parseDate(raw, field)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             empl.ID,
		EmployeeID:     empl.EmployeeID,
		FirstName:      empl.FirstName,
		LastName:       empl.LastName,
		Email:          empl.Email,
		Phone:          empl.Phone,
		DateOfBirth:    formatOptionalDate(empl.DateOfBirth),
		Gender:         empl.Gender,
		Address:        empl.Address,
		Department:     empl.Department,
		Position:       empl.Position,
		EmploymentType: empl.EmploymentType,
		StartDate:      empl.StartDate.Format(dateLayout),
		Username:       empl.Username,
		Permissions:    empl.Permissions,
	}
	if empl.Salary.Valid {
		salary := empl.Salary.Decimal.StringFixed(2)
		resp.Salary = &salary
	}
	return resp
}

// mapToListResponse exposes every column, password included, as the listing
// always has.
func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		createdAt, updatedAt := e.CreatedAt, e.UpdatedAt
		res[i] = mapToResponse(e)
		res[i].Password = e.Password
		res[i].CreatedAt = &createdAt
		res[i].UpdatedAt = &updatedAt
	}
	return res
}

func formatOptionalDate(v *time.Time) *string {
	if v == nil {
		return nil
	}
	s := v.Format(dateLayout)
	return &s
}
