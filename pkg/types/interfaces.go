// Package types defines core interfaces and types shared by the queue and worker packages
package types

// Transform maps one input item to one output item
type Transform func(string) string

// Queue defines the FIFO operations a worker needs from its buffers
type Queue[T any] interface {
	// Push appends a value, waiting for the guard
	Push(value T)

	// TryPush appends a value only if the guard is free
	TryPush(value T) bool

	// Pop removes the front value, ErrEmptyQueue when empty
	Pop() (T, error)

	// TryPop removes the front value without waiting for the guard
	TryPop() (T, bool)

	// PopN removes up to max values from the front
	PopN(max int) []T

	// IsEmpty reports whether the queue holds no values
	IsEmpty() bool

	// Size returns the number of queued values
	Size() int
}

// FailurePolicy defines what a worker does when a transform fails
type FailurePolicy int

const (
	// FailFast stops the worker on the first transform failure
	FailFast FailurePolicy = iota
	// ContinueOnError drops the failing item and keeps draining
	ContinueOnError
)

// String returns the string representation of the policy
func (p FailurePolicy) String() string {
	switch p {
	case FailFast:
		return "FailFast"
	case ContinueOnError:
		return "ContinueOnError"
	default:
		return "Unknown"
	}
}

// ParseFailurePolicy parses the names accepted in configuration files
func ParseFailurePolicy(s string) (FailurePolicy, bool) {
	switch s {
	case "", "fail_fast", "FailFast":
		return FailFast, true
	case "continue_on_error", "ContinueOnError":
		return ContinueOnError, true
	default:
		return FailFast, false
	}
}

// ErrorHandler sees every transform failure before the failure policy.
// Returning nil marks the failure handled and the item is skipped; a non-nil
// return, the original error or a replacement, goes on to the failure policy.
type ErrorHandler func(error) error
