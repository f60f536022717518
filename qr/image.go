package qr

import "github.com/skip2/go-qrcode"

const defaultSize = 256

// EncodePNG renders a payload as a QR code PNG. Size <= 0 falls back to
// the default 256px.
func EncodePNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultSize
	}
	return qrcode.Encode(payload, qrcode.Medium, size)
}
