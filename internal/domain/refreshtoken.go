package domain

import "time"

// RefreshToken is a long-lived opaque session-continuation credential. Tokens
// rotate strictly: every successful refresh revokes the presented token and
// issues a new one, so a replayed token is always rejected. Rows are retained
// after revocation for audit.
type RefreshToken struct {
	ID        string
	Token     string
	Owner     Owner
	IssuedAt  time.Time
	ExpiresAt time.Time
	Revoked   bool
}
