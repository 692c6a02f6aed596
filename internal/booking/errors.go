package booking

import "errors"

var (
	// ErrHoldNotFound covers expired, consumed and never-issued tokens
	// alike; the customer cannot tell the three apart.
	ErrHoldNotFound = errors.New("booking: hold not found or expired")

	// ErrSlotConflict is the advisory time-overlap rejection.
	ErrSlotConflict = errors.New("booking: slot conflicts with an existing booking")

	// ErrDateTaken is the storage constraint rejecting a second active
	// weekday booking for the same date.
	ErrDateTaken = errors.New("booking: date no longer available")

	// ErrTokenCollision is a retryable internal error; with 256-bit
	// tokens it is vanishingly unlikely.
	ErrTokenCollision = errors.New("booking: hold token already exists")

	ErrBookingNotFound = errors.New("booking: not found")
)

// ValidationError is a recoverable input or business-rule rejection with a
// customer-facing reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErr(reason string) error {
	return &ValidationError{Reason: reason}
}
