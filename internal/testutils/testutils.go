// Package testutils provides simplified testing utilities and helper functions
package testutils

import (
	"bytes"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Default timings for eventually-style assertions
const (
	SettleTimeout = 2 * time.Second
	SettleTick    = time.Millisecond
)

// NewDiscardLogger returns a logger that drops every record
func NewDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// LogBuffer is a goroutine-safe sink for log output under test
type LogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer
func (b *LogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything written so far
func (b *LogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// NewBufferedLogger returns a debug-level text logger writing into a LogBuffer
func NewBufferedLogger() (*slog.Logger, *LogBuffer) {
	buf := &LogBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, buf
}
