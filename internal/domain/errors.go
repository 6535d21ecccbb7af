package domain

import "errors"

// Sentinel errors shared across services and repositories. Controllers map
// these to HTTP status codes; anything else is treated as an internal fault.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Admission rejections. These are expected outcomes of a registration
// attempt, not faults; the caller distinguishes them for user messaging.
var (
	ErrEventFull             = errors.New("registration full")
	ErrDuplicateRegistration = errors.New("already registered")
	ErrRegistrationClosed    = errors.New("registration closed")
)
