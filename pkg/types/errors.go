// Package types defines error types
package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrEmptyQueue indicates a blocking peek or pop on an empty queue
	ErrEmptyQueue = errors.New("queue is empty")

	// ErrTimeout indicates operation timeout
	ErrTimeout = errors.New("operation timeout")

	// ErrInvalidConfig indicates an invalid worker configuration
	ErrInvalidConfig = errors.New("invalid config")
)

// TransformError represents a failure of the transform applied to one item
type TransformError struct {
	// Operation is the name of the operation where the error occurred
	Operation string

	// Input is the item that was being transformed
	Input string

	// Cause is the underlying error
	Cause error

	// Context contains error context information
	Context map[string]interface{}
}

// Error implements the error interface
func (e *TransformError) Error() string {
	return fmt.Sprintf("transform error in operation %s: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying error
func (e *TransformError) Unwrap() error {
	return e.Cause
}

// Is checks if the error is a specific error
func (e *TransformError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewTransformError creates a new transform error
func NewTransformError(operation string, input string, cause error) *TransformError {
	return &TransformError{
		Operation: operation,
		Input:     input,
		Cause:     cause,
		Context:   make(map[string]interface{}),
	}
}

// WithContext adds error context
func (e *TransformError) WithContext(key string, value interface{}) *TransformError {
	e.Context[key] = value
	return e
}

// IsTransformError reports whether err carries a TransformError
func IsTransformError(err error) bool {
	var te *TransformError
	return errors.As(err, &te)
}
