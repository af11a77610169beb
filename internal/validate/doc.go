// Package validate provides input validation for entlog's domain types.
//
// Validation runs at the service boundary, before anything reaches the store
// or the ranker. Each function returns nil on success or an error wrapping one
// of the sentinels in errors.go, so transports can map failures to a status
// with errors.Is:
//
//	if errors.Is(err, validate.ErrInvalidEntity) {
//	    // 400 Bad Request
//	}
//
// Rules stay minimal. Required fields must be present, sizes are bounded by
// configuration, and null bytes are rejected everywhere.
package validate

import "errors"

// IsValidation reports whether err is any validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidEntity) ||
		errors.Is(err, ErrInvalidAttribute) ||
		errors.Is(err, ErrInvalidTag) ||
		errors.Is(err, ErrInvalidScope) ||
		errors.Is(err, ErrInvalidWindow)
}
