package errors

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jzx17/wakeworker/pkg/types"
)

// TestErrorContext tests basic functionality of error context
func TestErrorContext(t *testing.T) {
	testErr := errors.New("test error")
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	errCtx := NewErrorContext(testErr, "transform", "Test1", now)

	if errCtx.Error != testErr {
		t.Errorf("Expected error %v, got %v", testErr, errCtx.Error)
	}
	if errCtx.OperationName != "transform" {
		t.Errorf("Expected operation name transform, got %s", errCtx.OperationName)
	}
	if errCtx.Input != "Test1" {
		t.Errorf("Expected input Test1, got %s", errCtx.Input)
	}
	if !errCtx.Timestamp.Equal(now) {
		t.Errorf("Expected timestamp %v, got %v", now, errCtx.Timestamp)
	}
	if errCtx.Metadata == nil || len(errCtx.Metadata) != 0 {
		t.Errorf("Expected empty metadata map, got %v", errCtx.Metadata)
	}
}

// TestFailFastHandler tests the fail-fast strategy
func TestFailFastHandler(t *testing.T) {
	handler := NewFailFastHandler()

	if handler.Name() != "FailFast" {
		t.Errorf("Expected name FailFast, got %s", handler.Name())
	}

	testErr := types.NewTransformError("transform", "x", errors.New("boom"))
	result := handler.HandleError(context.Background(), NewErrorContext(testErr, "transform", "x", time.Now()))

	if result != testErr {
		t.Errorf("Expected original error, got %v", result)
	}
}

// TestContinueOnErrorHandler tests the continue-on-error strategy
func TestContinueOnErrorHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	handler := NewContinueOnErrorHandler(logger)

	if handler.Name() != "ContinueOnError" {
		t.Errorf("Expected name ContinueOnError, got %s", handler.Name())
	}

	errCtx := NewErrorContext(errors.New("boom"), "transform", "bad-item", time.Now())
	errCtx.WorkerID = "w-1"

	if result := handler.HandleError(context.Background(), errCtx); result != nil {
		t.Errorf("Expected nil error, got %v", result)
	}

	out := buf.String()
	for _, want := range []string{"skipping item after transform failure", "worker_id=w-1", "input=bad-item", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log output to contain %q, got %q", want, out)
		}
	}
}

// TestContinueOnErrorHandler_NilLogger tests that logging is optional
func TestContinueOnErrorHandler_NilLogger(t *testing.T) {
	handler := NewContinueOnErrorHandler(nil)

	errCtx := NewErrorContext(errors.New("boom"), "transform", "x", time.Now())
	if result := handler.HandleError(context.Background(), errCtx); result != nil {
		t.Errorf("Expected nil error, got %v", result)
	}
}

// TestHandlerFor tests policy to handler mapping
func TestHandlerFor(t *testing.T) {
	tests := []struct {
		policy   types.FailurePolicy
		expected string
	}{
		{types.FailFast, "FailFast"},
		{types.ContinueOnError, "ContinueOnError"},
		{types.FailurePolicy(42), "FailFast"},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			handler := HandlerFor(tt.policy, nil)
			if handler.Name() != tt.expected {
				t.Errorf("Expected handler %s, got %s", tt.expected, handler.Name())
			}
		})
	}
}
