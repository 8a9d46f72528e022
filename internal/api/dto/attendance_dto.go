package dto

import (
	"time"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// ManualRegisterRequest payload for administrative attendance corrections.
// Date is a calendar day in YYYY-MM-DD form; omitted timestamps leave the
// stored values untouched.
type ManualRegisterRequest struct {
	EmployeeID string     `json:"employee_id"`
	Date       string     `json:"date"`
	CheckInAt  *time.Time `json:"check_in_at"`
	CheckOutAt *time.Time `json:"check_out_at"`
}

// AttendanceRecordResponse is a serialized attendance record.
type AttendanceRecordResponse struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employee_id"`
	Date        time.Time  `json:"date"`
	CheckInAt   *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt  *time.Time `json:"check_out_at,omitempty"`
	HoursWorked float64    `json:"hours_worked"`
	Pay         float64    `json:"pay"`
}

// NewAttendanceRecordResponse maps a domain record.
func NewAttendanceRecordResponse(record *domain.AttendanceRecord) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		ID:          record.ID,
		EmployeeID:  record.EmployeeID,
		Date:        record.Date,
		CheckInAt:   record.CheckInAt,
		CheckOutAt:  record.CheckOutAt,
		HoursWorked: record.HoursWorked,
		Pay:         record.Pay,
	}
}

// AttendanceHistoryResponse is a date-range report for one employee.
type AttendanceHistoryResponse struct {
	EmployeeID string                     `json:"employee_id"`
	Records    []AttendanceRecordResponse `json:"records"`
	TotalHours float64                    `json:"total_hours"`
	TotalPay   float64                    `json:"total_pay"`
}
