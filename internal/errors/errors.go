package errors

import "errors"

var (
	// Read errors
	ErrValueUnavailable = errors.New("attribute value unavailable")

	// Endpoint errors
	ErrEndpointUnresolved = errors.New("endpoint could not be resolved")
	ErrConnectionFailed   = errors.New("connection to endpoint failed")
	ErrMissingIdentity    = errors.New("jvm identity unavailable")

	// Configuration errors
	ErrMalformedEntry       = errors.New("malformed metric list entry")
	ErrFieldMappingMismatch = errors.New("field mapping does not match value count")
	ErrInvalidConfig        = errors.New("invalid configuration")
)
