// Package qr renders student badges as QR codes for the scanning station.
package qr

import (
	"errors"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultSize is the badge edge length in pixels.
const DefaultSize = 256

// ErrEmptyPayload is returned when there is nothing to encode.
var ErrEmptyPayload = errors.New("qr payload is empty")

// Badge encodes a student ID as a PNG QR code.
// The payload is the bare ID so the station reads it like a typed identifier.
// PRE: size > 0
func Badge(studentID string, size int) ([]byte, error) {
	id := strings.TrimSpace(studentID)
	if id == "" {
		return nil, ErrEmptyPayload
	}
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(id, qrcode.Medium, size)
}
