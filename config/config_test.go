package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ekarabulut/failover/backoff"
)

const sampleYAML = `
name: payments
environment: staging
logging:
  level: debug
  format: json
providers:
  - name: primary
  - name: backup
    policy:
      max_retry: 2
      backoff: exponential
policies:
  default:
    max_retry: 1
    base_delay_ms: 100
    max_delay_ms: 2000
    backoff: full-jitter
  per_operation:
    charge:
      max_retry: 3
  per_provider:
    backup:
      base_delay_ms: 50
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "payments.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeTempConfig(t, sampleYAML)

	var cfg Config
	if err := Load("payments", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Name != "payments" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("environment = %q", cfg.Environment)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}

	if got := cfg.ProviderOrder(); len(got) != 2 || got[0] != "primary" || got[1] != "backup" {
		t.Errorf("provider order = %v", got)
	}

	inline, err := cfg.InlinePolicy("backup")
	if err != nil {
		t.Fatalf("InlinePolicy: %v", err)
	}
	if inline == nil || inline.MaxRetry == nil || *inline.MaxRetry != 2 {
		t.Errorf("backup inline policy = %+v", inline)
	}
	if inline.Backoff == nil || *inline.Backoff != backoff.Exponential {
		t.Errorf("backup inline backoff = %+v", inline.Backoff)
	}
	if none, err := cfg.InlinePolicy("primary"); err != nil || none != nil {
		t.Errorf("primary inline policy = %+v, %v", none, err)
	}

	layers, err := cfg.Policies.ToPolicyConfig()
	if err != nil {
		t.Fatalf("ToPolicyConfig: %v", err)
	}
	if layers.Default == nil || *layers.Default.MaxRetry != 1 {
		t.Errorf("default layer = %+v", layers.Default)
	}
	if *layers.Default.BaseDelay != 100*time.Millisecond {
		t.Errorf("default base delay = %v", *layers.Default.BaseDelay)
	}
	if *layers.Default.MaxDelay != 2*time.Second {
		t.Errorf("default max delay = %v", *layers.Default.MaxDelay)
	}
	if op, ok := layers.PerOperation["charge"]; !ok || *op.MaxRetry != 3 {
		t.Errorf("per-operation layer = %+v", layers.PerOperation)
	}
	if pp, ok := layers.PerProvider["backup"]; !ok || *pp.BaseDelay != 50*time.Millisecond {
		t.Errorf("per-provider layer = %+v", layers.PerProvider)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	var cfg Config
	cfg.Providers = []ProviderConfig{{Name: "primary"}}
	err := Load("nosuchservice", &cfg, WithSearchPaths(t.TempDir()))
	if err != nil {
		t.Fatalf("Load without file: %v", err)
	}
	if cfg.Name != "nosuchservice" {
		t.Errorf("name = %q", cfg.Name)
	}
	if cfg.Environment != "development" {
		t.Errorf("environment = %q", cfg.Environment)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging level = %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsUnknownBackoff(t *testing.T) {
	path := writeTempConfig(t, `
name: payments
providers:
  - name: primary
policies:
  default:
    backoff: quadratic
`)

	var cfg Config
	if err := Load("payments", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for unknown backoff kind")
	}
}

func TestLoadRejectsEmptyProviders(t *testing.T) {
	path := writeTempConfig(t, `
name: payments
providers: []
`)

	var cfg Config
	if err := Load("payments", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected error for empty provider list")
	}
}

func TestEnvOverride(t *testing.T) {
	path := writeTempConfig(t, sampleYAML)
	t.Setenv("FAILOVER_LOGGING_LEVEL", "warn")

	var cfg Config
	if err := Load("payments", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("logging level = %q, want env override", cfg.Logging.Level)
	}
}

func TestEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(envPath, []byte("FAILOVER_LOGGING_FORMAT=json\n"), 0o644); err != nil {
		t.Fatalf("writing env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("FAILOVER_LOGGING_FORMAT") })

	var cfg Config
	cfg.Providers = []ProviderConfig{{Name: "primary"}}
	if err := Load("payments", &cfg, WithSearchPaths(dir), WithEnvFile(envPath)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging format = %q, want env file value", cfg.Logging.Format)
	}
}
