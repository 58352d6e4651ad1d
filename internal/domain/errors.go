package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for failures while loading résumé and repository data.
var (
	// ErrResourceNotFound is returned when the remote container exists but does
	// not hold the expected sub-resource (e.g. the gist has no curriculo.json).
	ErrResourceNotFound = errors.New("requested resource not found")

	// ErrInvalidProfile wraps validation failures on decoded profile data.
	ErrInvalidProfile = errors.New("invalid profile data")
)
