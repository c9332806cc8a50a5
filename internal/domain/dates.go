package domain

import (
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates (start_date, payment_date).
const DateLayout = "2006-01-02"

// ReceiptDateLayout is how dates are printed on receipts and in receipt filenames.
const ReceiptDateLayout = "02-01-2006"

// ParseDate accepts a calendar date or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, Invalid("invalid date " + s)
}
