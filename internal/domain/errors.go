package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount      = errors.New("Amount must be greater than zero")
	ErrInvalidPaymentMode = errors.New("Invalid payment mode")
	ErrExceedsBalance     = errors.New("Amount exceeds outstanding balance")
	ErrRecordNotFound     = errors.New("Record not found")
	ErrUnauthorized       = errors.New("User is Forbidden from performing this action")
	ErrStaleState         = errors.New("Record was changed by another session, reload and retry")
	ErrStoreFailure       = errors.New("Record store unavailable")
	ErrValidation         = errors.New("Validation failed")
	ErrUnknownStage       = errors.New("Unknown project stage")
	ErrDuplicateRequest   = errors.New("Duplicate submission")
	ErrMailDelivery       = errors.New("Email could not be sent")
)

// Invalid wraps ErrValidation with a field-specific message.
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// StoreFailure wraps a record store error so callers can match both
// ErrStoreFailure and the underlying cause.
func StoreFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreFailure, err)
}
