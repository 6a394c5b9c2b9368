package parking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation       = errors.New("validation error")
	ErrSlotNotAvailable = errors.New("parking slot is not available")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotActive        = errors.New("only active bookings can be cancelled")
	ErrAlreadyFinished  = errors.New("booking is already cancelled or completed")
	ErrDuplicateNumber  = errors.New("parking slot with this number already exists")
)

// DuplicateNumbersError carries the offending slot numbers of a rejected
// bulk create. The whole batch is rolled back when it is returned.
type DuplicateNumbersError struct {
	Numbers []string
}

func (e *DuplicateNumbersError) Error() string {
	return fmt.Sprintf("these slot numbers already exist: %s", strings.Join(e.Numbers, ", "))
}
