package utils

import "fmt"

// OpError carries the operation context for a failed I/O call.
type OpError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// WrapError creates a contextual error.
func WrapError(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &OpError{
		Context: context,
		Cause:   cause,
	}
}

// Unwrap provides compatibility with errors.Unwrap().
func (e *OpError) Unwrap() error {
	return e.Cause
}
