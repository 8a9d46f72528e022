package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/clock"
	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/events"
	"github.com/spec-kit/attendance-service/internal/repository"
	apperrors "github.com/spec-kit/attendance-service/pkg/util"
)

// AttendanceService drives the per-day attendance state machine: no record,
// checked in, closed. Closing a day computes worked hours and pay and freezes
// the record against further check-outs.
type AttendanceService struct {
	employees  repository.EmployeeRepository
	records    repository.AttendanceRepository
	clk        clock.Clock
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// AttendanceDependencies encapsulates collaborator requirements.
type AttendanceDependencies struct {
	EmployeeRepo   repository.EmployeeRepository
	AttendanceRepo repository.AttendanceRepository
	Clock          clock.Clock
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// NewAttendanceService builds the service.
func NewAttendanceService(deps AttendanceDependencies) *AttendanceService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		employees:  deps.EmployeeRepo,
		records:    deps.AttendanceRepo,
		clk:        deps.Clock,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CheckIn opens today's record for the employee. The current instant is read
// once and reused for both the day boundary and the timestamp, so the
// operation stays consistent near midnight.
func (s *AttendanceService) CheckIn(ctx context.Context, employeeID string) (*domain.AttendanceRecord, error) {
	employee, err := s.activeEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	day := clock.Midnight(now)

	record, err := s.records.GetByEmployeeAndDate(ctx, employee.ID, day)
	switch {
	case err == pgx.ErrNoRows:
		record = &domain.AttendanceRecord{
			EmployeeID: employee.ID,
			Date:       day,
			CheckInAt:  &now,
		}
		if err := s.records.Create(ctx, record); err != nil {
			return nil, apperrors.NewStorageFailure(err)
		}
	case err != nil:
		return nil, apperrors.NewStorageFailure(err)
	case record.CheckInAt != nil:
		return nil, apperrors.NewConflict("employee already checked in today", map[string]any{"employee_id": employee.ID})
	default:
		record.CheckInAt = &now
		if err := s.records.Update(ctx, record); err != nil {
			return nil, apperrors.NewStorageFailure(err)
		}
	}

	s.publish(ctx, events.EventEmployeeCheckedIn, employee.ID, now, events.CheckedInPayload{
		Date:      day,
		CheckInAt: now,
	})
	return record, nil
}

// CheckOut closes today's record: worked hours are the raw hour difference
// between check-out and check-in, pay is hours times the employee's current
// hourly rate. Once closed the day rejects further check-outs.
func (s *AttendanceService) CheckOut(ctx context.Context, employeeID string) (*domain.AttendanceRecord, error) {
	employee, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.clk.Now()
	day := clock.Midnight(now)

	record, err := s.records.GetByEmployeeAndDate(ctx, employee.ID, day)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewConflict("employee is not checked in today", map[string]any{"employee_id": employee.ID})
		}
		return nil, apperrors.NewStorageFailure(err)
	}
	if record.CheckInAt == nil {
		return nil, apperrors.NewConflict("employee is not checked in today", map[string]any{"employee_id": employee.ID})
	}
	if record.CheckOutAt != nil {
		return nil, apperrors.NewConflict("employee already checked out today", map[string]any{"employee_id": employee.ID})
	}

	hours := now.Sub(*record.CheckInAt).Hours()
	record.CheckOutAt = &now
	record.HoursWorked = hours
	record.Pay = hours * employee.HourlyRate
	if err := s.records.Update(ctx, record); err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}

	s.publish(ctx, events.EventEmployeeCheckedOut, employee.ID, now, events.CheckedOutPayload{
		Date:        day,
		CheckOutAt:  now,
		HoursWorked: record.HoursWorked,
		Pay:         record.Pay,
	})
	return record, nil
}

// RegisterManual is the administrative correction path: it upserts the record
// for an arbitrary day without enforcing the check-in/check-out ordering.
// Only the provided timestamps are overwritten; hours and pay are recomputed
// from whatever is present after the merge. A check-out earlier than the
// check-in is rejected rather than stored as a negative duration.
func (s *AttendanceService) RegisterManual(ctx context.Context, employeeID string, date time.Time, checkInAt, checkOutAt *time.Time) (*domain.AttendanceRecord, error) {
	employee, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	day := clock.Midnight(date)

	record, err := s.records.GetByEmployeeAndDate(ctx, employee.ID, day)
	created := false
	switch {
	case err == pgx.ErrNoRows:
		record = &domain.AttendanceRecord{EmployeeID: employee.ID, Date: day}
		created = true
	case err != nil:
		return nil, apperrors.NewStorageFailure(err)
	}

	if checkInAt != nil {
		record.CheckInAt = checkInAt
	}
	if checkOutAt != nil {
		record.CheckOutAt = checkOutAt
	}

	if record.CheckInAt != nil && record.CheckOutAt != nil {
		if record.CheckOutAt.Before(*record.CheckInAt) {
			return nil, apperrors.NewConflict("check-out precedes check-in", map[string]any{"employee_id": employee.ID})
		}
		record.HoursWorked = record.CheckOutAt.Sub(*record.CheckInAt).Hours()
		record.Pay = record.HoursWorked * employee.HourlyRate
	} else {
		record.HoursWorked = 0
		record.Pay = 0
	}

	if created {
		err = s.records.Create(ctx, record)
	} else {
		err = s.records.Update(ctx, record)
	}
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}
	return record, nil
}

func (s *AttendanceService) activeEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !employee.Active {
		return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeID})
	}
	return employee, nil
}

func (s *AttendanceService) getEmployee(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeID})
		}
		return nil, apperrors.NewStorageFailure(err)
	}
	return employee, nil
}

func (s *AttendanceService) publish(ctx context.Context, eventType events.EventType, employeeID string, at time.Time, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EmployeeID: employeeID,
		Timestamp:  at,
		Payload:    payload,
	})
}
