package common

import "errors"

var (
	// ErrRequiredField is returned when a form is submitted with an empty
	// required field.
	ErrRequiredField = errors.New("required field is empty")

	// ErrInvalidID is returned when a route or command carries a non-numeric id.
	ErrInvalidID = errors.New("invalid id")

	// ErrCancelled is returned when the user declines a confirmation prompt.
	ErrCancelled = errors.New("cancelled")
)
