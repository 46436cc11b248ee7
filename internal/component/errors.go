package component

import "errors"

var (
	// ErrNotFound is returned when a component ID does not exist.
	ErrNotFound = errors.New("component not found")

	// ErrDuplicate is returned when a component's registry identifier is
	// already taken.
	ErrDuplicate = errors.New("component already exists")

	// ErrInvalidComponent is returned when a component fails validation.
	ErrInvalidComponent = errors.New("invalid component")
)
