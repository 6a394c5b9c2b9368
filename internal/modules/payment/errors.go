package payment

import "errors"

var (
	ErrNotFound         = errors.New("payment not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyProcessed = errors.New("payment already processed")
	ErrForbidden        = errors.New("payment belongs to another user")
)
