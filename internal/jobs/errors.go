package jobs

import "errors"

var ErrNotFound = errors.New("job not found")

// ValidationError describes the first field of a payload that failed validation.
type ValidationError struct {
	Field   string
	Message string
	Details string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Details
}
