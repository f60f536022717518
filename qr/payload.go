// Package qr owns the QR payload contract: deep-link strings that resolve
// directly to a booking or category record, plus their rendered codes.
package qr

import (
	"errors"
	"strings"
)

// Deep-link prefixes; consumers decode payloads by prefix inspection.
const (
	CheckInPrefix  = "/check-in/"
	CategoryPrefix = "/categories/"
)

// Payload kinds returned by Parse.
const (
	KindBooking  = "booking"
	KindCategory = "category"
)

var ErrBadPayload = errors.New("unrecognized QR payload")

// BookingPayload returns the check-in deep link for a booking id.
func BookingPayload(id string) string {
	return CheckInPrefix + id
}

// CategoryPayload returns the deep link for a category id.
func CategoryPayload(id string) string {
	return CategoryPrefix + id
}

// Parse decodes a scanned payload into its kind and record id.
func Parse(payload string) (kind, id string, err error) {
	switch {
	case strings.HasPrefix(payload, CheckInPrefix):
		id = strings.TrimPrefix(payload, CheckInPrefix)
		kind = KindBooking
	case strings.HasPrefix(payload, CategoryPrefix):
		id = strings.TrimPrefix(payload, CategoryPrefix)
		kind = KindCategory
	default:
		return "", "", ErrBadPayload
	}
	if id == "" || strings.Contains(id, "/") {
		return "", "", ErrBadPayload
	}
	return kind, id, nil
}
