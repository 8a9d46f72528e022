package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/repository"
	apperrors "github.com/spec-kit/attendance-service/pkg/util"
)

// EmployeeService manages employee accounts on behalf of their supervisor.
// Employees are only ever soft-disabled; records and tokens stay behind for
// audit.
type EmployeeService struct {
	employees repository.EmployeeRepository
	logger    *zap.Logger
}

// EmployeeUpdate carries optional fields for partial updates.
type EmployeeUpdate struct {
	Name       *string
	Email      *string
	HourlyRate *float64
}

// NewEmployeeService builds the service.
func NewEmployeeService(employees repository.EmployeeRepository, logger *zap.Logger) *EmployeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmployeeService{employees: employees, logger: logger}
}

// Create registers a new employee owned by the acting supervisor.
func (s *EmployeeService) Create(ctx context.Context, actor *domain.Supervisor, name, email string, hourlyRate float64) (*domain.Employee, error) {
	if actor == nil {
		return nil, apperrors.NewForbidden("supervisor required")
	}
	if name == "" || email == "" {
		return nil, apperrors.NewValidationError("name and email required", nil)
	}
	if hourlyRate < 0 {
		return nil, apperrors.NewValidationError("hourly rate must be non-negative", map[string]any{"hourly_rate": hourlyRate})
	}

	if _, err := s.employees.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.NewStorageFailure(err)
	}

	employee := &domain.Employee{
		Name:         name,
		Email:        email,
		HourlyRate:   hourlyRate,
		Active:       true,
		SupervisorID: actor.ID,
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	return employee, nil
}

// Update applies the provided fields to an employee the actor owns.
func (s *EmployeeService) Update(ctx context.Context, actor *domain.Supervisor, employeeID string, update EmployeeUpdate) (*domain.Employee, error) {
	employee, err := s.owned(ctx, actor, employeeID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		employee.Name = *update.Name
	}
	if update.Email != nil {
		employee.Email = *update.Email
	}
	if update.HourlyRate != nil {
		if *update.HourlyRate < 0 {
			return nil, apperrors.NewValidationError("hourly rate must be non-negative", map[string]any{"hourly_rate": *update.HourlyRate})
		}
		employee.HourlyRate = *update.HourlyRate
	}

	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	return employee, nil
}

// Deactivate soft-disables an employee.
func (s *EmployeeService) Deactivate(ctx context.Context, actor *domain.Supervisor, employeeID string) (*domain.Employee, error) {
	employee, err := s.owned(ctx, actor, employeeID)
	if err != nil {
		return nil, err
	}

	employee.Active = false
	if err := s.employees.Update(ctx, employee); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	return employee, nil
}

// Get returns an employee the actor owns.
func (s *EmployeeService) Get(ctx context.Context, actor *domain.Supervisor, employeeID string) (*domain.Employee, error) {
	return s.owned(ctx, actor, employeeID)
}

// ListBySupervisor returns the actor's employees.
func (s *EmployeeService) ListBySupervisor(ctx context.Context, actor *domain.Supervisor) ([]domain.Employee, error) {
	if actor == nil {
		return nil, apperrors.NewForbidden("supervisor required")
	}
	employees, err := s.employees.ListBySupervisor(ctx, actor.ID)
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	return employees, nil
}

func (s *EmployeeService) owned(ctx context.Context, actor *domain.Supervisor, employeeID string) (*domain.Employee, error) {
	if actor == nil {
		return nil, apperrors.NewForbidden("supervisor required")
	}
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeID})
		}
		return nil, apperrors.NewStorageFailure(err)
	}
	if employee.SupervisorID != actor.ID {
		return nil, apperrors.NewForbidden("employee belongs to another supervisor")
	}
	return employee, nil
}
