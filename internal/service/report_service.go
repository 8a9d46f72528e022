package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/attendance-service/internal/clock"
	"github.com/spec-kit/attendance-service/internal/domain"
	"github.com/spec-kit/attendance-service/internal/repository"
	apperrors "github.com/spec-kit/attendance-service/pkg/util"
)

// AttendanceHistory is an employee's attendance over a date range with
// aggregate totals.
type AttendanceHistory struct {
	EmployeeID string
	Records    []domain.AttendanceRecord
	TotalHours float64
	TotalPay   float64
}

// ReportService aggregates historical attendance records.
type ReportService struct {
	employees repository.EmployeeRepository
	records   repository.AttendanceRepository
}

// NewReportService builds the service.
func NewReportService(employees repository.EmployeeRepository, records repository.AttendanceRepository) *ReportService {
	return &ReportService{employees: employees, records: records}
}

// History returns the employee's records between the optional from/to bounds
// (inclusive, day granularity) plus total hours and pay over the range.
func (s *ReportService) History(ctx context.Context, employeeID string, from, to *time.Time) (*AttendanceHistory, error) {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("employee", map[string]any{"employee_id": employeeID})
		}
		return nil, apperrors.NewStorageFailure(err)
	}

	filter := repository.AttendanceFilter{}
	if from != nil {
		day := clock.Midnight(*from)
		filter.From = &day
	}
	if to != nil {
		day := clock.Midnight(*to)
		filter.To = &day
	}

	records, err := s.records.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return nil, apperrors.NewStorageFailure(err)
	}

	history := &AttendanceHistory{EmployeeID: employeeID, Records: records}
	for _, record := range records {
		history.TotalHours += record.HoursWorked
		history.TotalPay += record.Pay
	}
	return history, nil
}
