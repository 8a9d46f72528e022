package domain

import "time"

// Employee is a worker whose attendance is tracked. Employees are never hard
// deleted; deactivation flips Active and keeps historical records intact.
type Employee struct {
	ID           string
	Name         string
	Email        string
	HourlyRate   float64
	Active       bool
	SupervisorID string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
