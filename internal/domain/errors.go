package domain

import "errors"

// Domain errors
var (
	ErrArtifactNotFound = errors.New("artifact not found")
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file exceeds maximum allowed size")
	ErrWrongPassword    = errors.New("wrong password")
)

// ValidationError represents a validation error with field and message information.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
