package ports

import "errors"

// Sentinel errors shared across stores and services. Route handlers map
// these onto HTTP statuses; anything else surfaces as a generic 500.
var (
	// ErrNotFound signals an unknown record id or missing file.
	ErrNotFound = errors.New("not found")
	// ErrValidation signals malformed or missing required input.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredential is the single failure for any login or
	// password-change mismatch. Unknown email and wrong password are
	// indistinguishable on purpose.
	ErrInvalidCredential = errors.New("invalid credentials")
	// ErrForbidden signals a request for something outside the caller's
	// reach, such as an asset path escaping the storage root.
	ErrForbidden = errors.New("forbidden")
)
