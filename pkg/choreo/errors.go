package choreo

import "errors"

var (
	// ErrInvalidParams is returned when plan parameters are malformed.
	// It is reported before any backend work begins.
	ErrInvalidParams = errors.New("choreo: invalid plan parameters")
)
