package vehicle

import "errors"

var (
	ErrNotFound       = errors.New("vehicle not found")
	ErrDuplicatePlate = errors.New("vehicle with this plate number already exists")
	ErrForbidden      = errors.New("vehicle belongs to another user")
	ErrHasActive      = errors.New("cannot delete vehicle with active bookings")
)
