package dto

import (
	"time"

	"github.com/spec-kit/attendance-service/internal/domain"
)

// EmployeeCreateRequest payload for registering an employee.
type EmployeeCreateRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	HourlyRate float64 `json:"hourly_rate"`
}

// EmployeeUpdateRequest payload for partial employee updates.
type EmployeeUpdateRequest struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email"`
	HourlyRate *float64 `json:"hourly_rate"`
}

// EmployeeResponse is a serialized employee.
type EmployeeResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	HourlyRate   float64   `json:"hourly_rate"`
	Active       bool      `json:"active"`
	SupervisorID string    `json:"supervisor_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewEmployeeResponse maps a domain employee.
func NewEmployeeResponse(employee *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           employee.ID,
		Name:         employee.Name,
		Email:        employee.Email,
		HourlyRate:   employee.HourlyRate,
		Active:       employee.Active,
		SupervisorID: employee.SupervisorID,
		CreatedAt:    employee.CreatedAt,
	}
}

// QRTokenResponse is an issued QR token with its displayable code.
type QRTokenResponse struct {
	Token        string    `json:"token"`
	EmployeeID   string    `json:"employee_id"`
	IssuedAt     time.Time `json:"issued_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	RenderedCode string    `json:"rendered_code"`
}

// NewQRTokenResponse maps a domain QR token.
func NewQRTokenResponse(token *domain.QRToken) QRTokenResponse {
	return QRTokenResponse{
		Token:        token.Token,
		EmployeeID:   token.EmployeeID,
		IssuedAt:     token.IssuedAt,
		ExpiresAt:    token.ExpiresAt,
		RenderedCode: token.RenderedCode,
	}
}
