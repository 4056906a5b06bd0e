// Package errors provides the transform failure strategies used by workers
package errors

import (
	"context"
	"log/slog"
	"time"

	"github.com/jzx17/wakeworker/pkg/types"
)

// ErrorHandler decides what happens to a failed transform
type ErrorHandler interface {
	// HandleError handles the error, returns the error to stop on or nil if handled
	HandleError(ctx context.Context, errCtx *ErrorContext) error

	// Name returns the name of the error handler
	Name() string
}

// ErrorContext defines context information when error occurs
type ErrorContext struct {
	// Error that occurred
	Error error

	// OperationName is the name of the operation where error occurred
	OperationName string

	// Input is the item that caused the error
	Input string

	// WorkerID identifies the worker that saw the error
	WorkerID string

	// Timestamp when the error occurred
	Timestamp time.Time

	// Metadata contains additional metadata information
	Metadata map[string]interface{}
}

// NewErrorContext creates a new error context
func NewErrorContext(err error, operationName string, input string, timestamp time.Time) *ErrorContext {
	return &ErrorContext{
		Error:         err,
		OperationName: operationName,
		Input:         input,
		Timestamp:     timestamp,
		Metadata:      make(map[string]interface{}),
	}
}

// FailFastHandler implements fail-fast error handling
type FailFastHandler struct {
	name string
}

// NewFailFastHandler creates a new fail-fast handler
func NewFailFastHandler() *FailFastHandler {
	return &FailFastHandler{
		name: types.FailFast.String(),
	}
}

// HandleError returns the original error so the caller stops
func (h *FailFastHandler) HandleError(ctx context.Context, errCtx *ErrorContext) error {
	return errCtx.Error
}

// Name returns the handler name
func (h *FailFastHandler) Name() string {
	return h.name
}

// ContinueOnErrorHandler logs errors and lets the caller continue
type ContinueOnErrorHandler struct {
	name   string
	logger *slog.Logger
}

// NewContinueOnErrorHandler creates a continue-on-error handler.
// A nil logger disables logging of ignored errors.
func NewContinueOnErrorHandler(logger *slog.Logger) *ContinueOnErrorHandler {
	return &ContinueOnErrorHandler{
		name:   types.ContinueOnError.String(),
		logger: logger,
	}
}

// HandleError logs the error and reports it as handled
func (h *ContinueOnErrorHandler) HandleError(ctx context.Context, errCtx *ErrorContext) error {
	if h.logger != nil {
		h.logger.WarnContext(ctx, "skipping item after transform failure",
			"worker_id", errCtx.WorkerID,
			"operation", errCtx.OperationName,
			"input", errCtx.Input,
			"error", errCtx.Error)
	}
	return nil
}

// Name returns the handler name
func (h *ContinueOnErrorHandler) Name() string {
	return h.name
}

// HandlerFor returns the handler implementing policy.
// Unknown policies fall back to fail-fast.
func HandlerFor(policy types.FailurePolicy, logger *slog.Logger) ErrorHandler {
	switch policy {
	case types.ContinueOnError:
		return NewContinueOnErrorHandler(logger)
	default:
		return NewFailFastHandler()
	}
}
