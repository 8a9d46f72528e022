package dto

import (
	"time"

	"github.com/spec-kit/attendance-service/internal/service"
)

// SupervisorLoginRequest payload for supervisor login.
type SupervisorLoginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

// SupervisorRegisterRequest payload for supervisor registration.
type SupervisorRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// EmployeeLoginRequest payload for identifier-only employee login.
type EmployeeLoginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
}

// RefreshRequest payload for token refresh and logout.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// QRScanRequest payload for the kiosk QR scan endpoint.
type QRScanRequest struct {
	Token     string `json:"token"`
	Direction string `json:"direction"`
}

// IdentityResponse is the authenticated subject echoed back to clients.
type IdentityResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// SessionResponse standard response for auth endpoints.
type SessionResponse struct {
	AccessToken      string           `json:"access_token"`
	AccessExpiresAt  time.Time        `json:"access_expires_at"`
	RefreshToken     string           `json:"refresh_token"`
	RefreshExpiresAt time.Time        `json:"refresh_expires_at"`
	Identity         IdentityResponse `json:"identity"`
}

// NewSessionResponse maps a service session.
func NewSessionResponse(session *service.Session) SessionResponse {
	return SessionResponse{
		AccessToken:      session.AccessToken,
		AccessExpiresAt:  session.AccessExpiresAt,
		RefreshToken:     session.RefreshToken,
		RefreshExpiresAt: session.RefreshExpiresAt,
		Identity: IdentityResponse{
			ID:          session.Identity.ID,
			DisplayName: session.Identity.DisplayName,
			Role:        string(session.Identity.Role),
		},
	}
}
