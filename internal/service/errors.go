package service

import "errors"

var (
	// ErrInvalidName is returned when a driver name is empty.
	ErrInvalidName = errors.New("invalid driver name")

	// ErrInvalidPhoneNumber is returned when a driver phone number is empty.
	ErrInvalidPhoneNumber = errors.New("invalid phone number")

	// ErrMissingDriverHeader is returned when the driver header is absent.
	ErrMissingDriverHeader = errors.New("driver header is required")
)
