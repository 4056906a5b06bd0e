package worker

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jzx17/wakeworker/pkg/types"
)

// WorkerConfig defines configuration for a Worker
type WorkerConfig struct {
	// ID identifies the worker in logs, errors and stats (defaults to a random UUID)
	ID string

	// Transform is the initial transform, same as calling SetTransform
	Transform types.Transform

	// FailurePolicy decides what happens when the transform panics
	FailurePolicy types.FailurePolicy

	// ErrorHandler filters transform failures before FailurePolicy; nil return skips the item (optional)
	ErrorHandler types.ErrorHandler

	// JoinTimeout bounds Close; zero waits forever
	JoinTimeout time.Duration

	// SettleInterval is the polling interval of WaitSettled
	SettleInterval time.Duration

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock

	// Logger (optional, defaults to slog.Default())
	Logger *slog.Logger

	// MetricsRegisterer and MetricsPrefix enable prometheus metrics when both are set
	MetricsRegisterer prometheus.Registerer
	MetricsPrefix     string
}

// DefaultWorkerConfig returns default configuration
func DefaultWorkerConfig() *WorkerConfig {
	return &WorkerConfig{
		FailurePolicy:  types.FailFast,
		JoinTimeout:    5 * time.Second,
		SettleInterval: 5 * time.Millisecond,
		Clock:          types.NewRealClock(),
	}
}

// validate checks the config and fills in defaults
func (c *WorkerConfig) validate() error {
	if c.JoinTimeout < 0 {
		return fmt.Errorf("%w: join timeout must not be negative, got %v", types.ErrInvalidConfig, c.JoinTimeout)
	}
	if c.SettleInterval < 0 {
		return fmt.Errorf("%w: settle interval must not be negative, got %v", types.ErrInvalidConfig, c.SettleInterval)
	}
	if c.FailurePolicy.String() == "Unknown" {
		return fmt.Errorf("%w: unknown failure policy %d", types.ErrInvalidConfig, c.FailurePolicy)
	}
	if c.MetricsRegisterer != nil && c.MetricsPrefix == "" {
		return fmt.Errorf("%w: metrics prefix is required with a metrics registerer", types.ErrInvalidConfig)
	}

	if c.SettleInterval == 0 {
		c.SettleInterval = 5 * time.Millisecond
	}
	if c.Clock == nil {
		c.Clock = types.NewRealClock()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}
