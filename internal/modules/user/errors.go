package user

import "errors"

var (
	ErrNotFound    = errors.New("user not found")
	ErrSelfDelete  = errors.New("cannot delete your own account")
	ErrHasVehicles = errors.New("cannot delete user with registered vehicles")
)
