package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jzx17/wakeworker/pkg/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	return path
}

func TestLoadFileYAML(t *testing.T) {
	content := `
worker:
  id: driver-worker
  failure_policy: continue_on_error
  join_timeout: 2s
  settle_interval: 1ms
log:
  level: debug
  format: json
metrics:
  enabled: true
  prefix: demo
  addr: ":9090"
`
	cfg, err := LoadFile(writeFile(t, "config.yaml", content))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Worker.ID != "driver-worker" {
		t.Errorf("expected id 'driver-worker', got '%s'", cfg.Worker.ID)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected format 'json', got '%s'", cfg.Log.Format)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Addr != ":9090" {
		t.Errorf("expected metrics enabled on :9090, got %+v", cfg.Metrics)
	}

	wc, err := cfg.ToWorkerConfig()
	if err != nil {
		t.Fatalf("failed to convert config: %v", err)
	}
	if wc.ID != "driver-worker" {
		t.Errorf("expected id 'driver-worker', got '%s'", wc.ID)
	}
	if wc.FailurePolicy != types.ContinueOnError {
		t.Errorf("expected ContinueOnError, got %v", wc.FailurePolicy)
	}
	if wc.JoinTimeout != 2*time.Second {
		t.Errorf("expected join timeout 2s, got %v", wc.JoinTimeout)
	}
	if wc.SettleInterval != time.Millisecond {
		t.Errorf("expected settle interval 1ms, got %v", wc.SettleInterval)
	}
	if wc.MetricsPrefix != "demo" {
		t.Errorf("expected metrics prefix 'demo', got '%s'", wc.MetricsPrefix)
	}
}

func TestLoadFileJSON(t *testing.T) {
	content := `{
  "worker": {
    "failure_policy": "fail_fast",
    "join_timeout": "0s"
  },
  "log": {
    "level": "warn"
  }
}`
	cfg, err := LoadFile(writeFile(t, "config.json", content))
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("expected level 'warn', got '%s'", cfg.Log.Level)
	}
	// untouched fields keep their defaults
	if cfg.Log.Format != "text" {
		t.Errorf("expected default format 'text', got '%s'", cfg.Log.Format)
	}
	if cfg.Worker.SettleInterval != "5ms" {
		t.Errorf("expected default settle interval '5ms', got '%s'", cfg.Worker.SettleInterval)
	}

	wc, err := cfg.ToWorkerConfig()
	if err != nil {
		t.Fatalf("failed to convert config: %v", err)
	}
	if wc.JoinTimeout != 0 {
		t.Errorf("expected join timeout 0, got %v", wc.JoinTimeout)
	}
	if wc.MetricsPrefix != "" {
		t.Errorf("expected no metrics prefix when disabled, got '%s'", wc.MetricsPrefix)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	if _, err := LoadFile(writeFile(t, "config.toml", "x = 1")); err == nil {
		t.Error("expected error for unsupported format")
	}

	if _, err := LoadFile(writeFile(t, "config.yaml", "worker: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}

	if _, err := LoadFile(writeFile(t, "config.yaml", "worker:\n  failure_policy: retry\n")); err == nil {
		t.Error("expected validation error for unknown policy")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*FileConfig)
		wantErr bool
	}{
		{"default", func(*FileConfig) {}, false},
		{"bad policy", func(c *FileConfig) { c.Worker.FailurePolicy = "retry" }, true},
		{"bad join timeout", func(c *FileConfig) { c.Worker.JoinTimeout = "soon" }, true},
		{"negative join timeout", func(c *FileConfig) { c.Worker.JoinTimeout = "-1s" }, true},
		{"negative settle interval", func(c *FileConfig) { c.Worker.SettleInterval = "-1ms" }, true},
		{"bad level", func(c *FileConfig) { c.Log.Level = "trace" }, true},
		{"bad format", func(c *FileConfig) { c.Log.Format = "xml" }, true},
		{"metrics without prefix", func(c *FileConfig) {
			c.Metrics.Enabled = true
			c.Metrics.Prefix = ""
		}, true},
		{"empty durations", func(c *FileConfig) {
			c.Worker.JoinTimeout = ""
			c.Worker.SettleInterval = ""
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestToWorkerConfigInvalid(t *testing.T) {
	cfg := Default()
	cfg.Worker.JoinTimeout = "never"

	if _, err := cfg.ToWorkerConfig(); err == nil {
		t.Error("expected error for invalid config")
	}
}
