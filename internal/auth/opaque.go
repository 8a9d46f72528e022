package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// NewOpaqueToken returns a hex-encoded random token carrying n bytes of
// entropy. Used for QR and refresh credentials, which are opaque to clients
// and validated only against stored rows.
func NewOpaqueToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
