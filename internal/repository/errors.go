package repository

import "errors"

// Sentinel errors shared across repositories.  Handlers compare against
// these with errors.Is to translate DB failures into HTTP status codes.
var (
	// ErrEmailExists is returned when registering an email that is already taken.
	ErrEmailExists = errors.New("email already exists")
	// ErrNotFound is returned when a row does not exist or does not belong
	// to the requesting user.
	ErrNotFound = errors.New("not found")
)
