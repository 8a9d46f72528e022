package domain

import "time"

// QRToken is an ephemeral single-use check-in credential displayed to an
// employee as a scannable code. At most one usable (unused, unexpired) token
// exists per employee; issuing a new one invalidates any prior usable token.
// Rows are retained after use or expiry for audit.
type QRToken struct {
	ID           string
	Token        string
	EmployeeID   string
	IssuedAt     time.Time
	ExpiresAt    time.Time
	Used         bool
	RenderedCode string
}

// Usable reports whether the token could still be consumed at the given
// instant.
func (t *QRToken) Usable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
