package domain

import "time"

// AttendanceRecord is one row per (employee, calendar day). Date is normalized
// to local midnight. HoursWorked and Pay stay zero until both timestamps are
// set; check-out computes them and freezes the record for that day.
type AttendanceRecord struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	CheckInAt   *time.Time
	CheckOutAt  *time.Time
	HoursWorked float64
	Pay         float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Closed reports whether the day has been closed (both timestamps present).
func (r *AttendanceRecord) Closed() bool {
	return r.CheckInAt != nil && r.CheckOutAt != nil
}
