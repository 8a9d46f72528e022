package qr

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// Renderer turns a token payload into an opaque displayable artifact.
type Renderer interface {
	Render(payload []byte) (string, error)
}

// PNGRenderer encodes the payload as a QR PNG and returns it base64-encoded,
// ready to embed in a data URI on the kiosk screen.
type PNGRenderer struct {
	Size int
}

// NewPNGRenderer builds a renderer with a sensible default image size.
func NewPNGRenderer(size int) PNGRenderer {
	if size <= 0 {
		size = 256
	}
	return PNGRenderer{Size: size}
}

// Render encodes the payload.
func (r PNGRenderer) Render(payload []byte) (string, error) {
	png, err := qrcode.Encode(string(payload), qrcode.Medium, r.Size)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
