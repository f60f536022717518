package qr

import (
	"errors"
	"image"
)

// ErrNoMatch is reported by a Decoder when the frame holds no readable code.
var ErrNoMatch = errors.New("no QR code found in frame")

// Decoder is the external scanning collaborator: it decodes a captured
// image frame to the text payload embedded in it, or reports no-match.
// The service itself ships no camera integration; scan clients decode
// frames on their side (or plug a Decoder in) and post the payload text
// to the scan endpoint.
type Decoder interface {
	Decode(frame image.Image) (string, error)
}
