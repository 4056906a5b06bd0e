// Package config loads worker settings from YAML or JSON files
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jzx17/wakeworker/pkg/types"
	"github.com/jzx17/wakeworker/pkg/worker"
)

// FileConfig is the layout of a config file
type FileConfig struct {
	Worker  WorkerConfig  `yaml:"worker" json:"worker"`
	Log     LogConfig     `yaml:"log" json:"log"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
}

// WorkerConfig holds worker settings
type WorkerConfig struct {
	ID             string `yaml:"id" json:"id"`
	FailurePolicy  string `yaml:"failure_policy" json:"failure_policy"`
	JoinTimeout    string `yaml:"join_timeout" json:"join_timeout"`
	SettleInterval string `yaml:"settle_interval" json:"settle_interval"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// MetricsConfig holds prometheus settings
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Prefix  string `yaml:"prefix" json:"prefix"`
	Addr    string `yaml:"addr" json:"addr"`
}

// Default returns the configuration used when no file is given
func Default() *FileConfig {
	return &FileConfig{
		Worker: WorkerConfig{
			FailurePolicy:  "fail_fast",
			JoinTimeout:    "5s",
			SettleInterval: "5ms",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Prefix: "wakeworker",
		},
	}
}

// LoadFile reads a config file, picking the decoder from the extension.
// Fields missing from the file keep their Default values.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the config
func (f *FileConfig) Validate() error {
	if _, ok := types.ParseFailurePolicy(f.Worker.FailurePolicy); !ok {
		return fmt.Errorf("worker.failure_policy: unknown policy %q", f.Worker.FailurePolicy)
	}
	if err := validateDuration("worker.join_timeout", f.Worker.JoinTimeout); err != nil {
		return err
	}
	if err := validateDuration("worker.settle_interval", f.Worker.SettleInterval); err != nil {
		return err
	}

	switch strings.ToLower(f.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", f.Log.Level)
	}
	switch strings.ToLower(f.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", f.Log.Format)
	}

	if f.Metrics.Enabled && f.Metrics.Prefix == "" {
		return fmt.Errorf("metrics.prefix is required when metrics are enabled")
	}
	return nil
}

func validateDuration(field, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%s: invalid duration: %w", field, err)
	}
	if d < 0 {
		return fmt.Errorf("%s must be non-negative", field)
	}
	return nil
}

// ToWorkerConfig converts the file settings into a worker.WorkerConfig.
// Runtime-only fields (transform, clock, logger, registerer) are left for the caller.
func (f *FileConfig) ToWorkerConfig() (*worker.WorkerConfig, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	config := worker.DefaultWorkerConfig()
	config.ID = f.Worker.ID

	policy, _ := types.ParseFailurePolicy(f.Worker.FailurePolicy)
	config.FailurePolicy = policy

	if f.Worker.JoinTimeout != "" {
		config.JoinTimeout, _ = time.ParseDuration(f.Worker.JoinTimeout)
	}
	if f.Worker.SettleInterval != "" {
		config.SettleInterval, _ = time.ParseDuration(f.Worker.SettleInterval)
	}

	if f.Metrics.Enabled {
		config.MetricsPrefix = f.Metrics.Prefix
	}
	return config, nil
}
