package schedule

import (
	"errors"
	"fmt"
)

// ValidationError is a client-facing rejection of a schedule definition.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "schedule validation failed: " + e.Reason
}

// ComputationError means the generator was handed input it cannot expand.
// Validated input never produces one.
type ComputationError struct {
	Reason string
}

func (e *ComputationError) Error() string {
	return "schedule computation failed: " + e.Reason
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsComputationError(err error) bool {
	var ce *ComputationError
	return errors.As(err, &ce)
}
