package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCheckedIn  EventType = "employee_checked_in"
	EventEmployeeCheckedOut EventType = "employee_checked_out"
	EventQRTokenIssued      EventType = "qr_token_issued"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	EmployeeID string      `json:"employee_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// CheckedInPayload payload.
type CheckedInPayload struct {
	Date      time.Time `json:"date"`
	CheckInAt time.Time `json:"check_in_at"`
}

// CheckedOutPayload payload.
type CheckedOutPayload struct {
	Date        time.Time `json:"date"`
	CheckOutAt  time.Time `json:"check_out_at"`
	HoursWorked float64   `json:"hours_worked"`
	Pay         float64   `json:"pay"`
}

// QRTokenIssuedPayload payload.
type QRTokenIssuedPayload struct {
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Invalidated int64     `json:"invalidated_prior"`
}
