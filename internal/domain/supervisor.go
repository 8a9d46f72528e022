package domain

import "time"

// Supervisor owns zero or more employees and authenticates with a password.
type Supervisor struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
