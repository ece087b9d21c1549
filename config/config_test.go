package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagecore.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
app_name: lister
run_mode: debug
paging:
  capacity: 50
  prefetch: 2
logger:
  level: 5
  format: json
  output: stdout
snapshot:
  path: /tmp/lister.snapshot.json
  redis_key: lister:snapshot
  redis:
    addr: localhost:6379
    db: 3
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.AppName != "lister" || cfg.RunMode != "debug" {
		t.Errorf("app fields: %q %q", cfg.AppName, cfg.RunMode)
	}
	if cfg.Capacity != 50 || cfg.Prefetch != 2 {
		t.Errorf("paging fields: %d %d", cfg.Capacity, cfg.Prefetch)
	}
	if cfg.Logger.Level != 5 || cfg.Logger.Format != "json" {
		t.Errorf("logger fields: %+v", cfg.Logger)
	}
	if cfg.Snapshot.Path != "/tmp/lister.snapshot.json" {
		t.Errorf("snapshot path: %q", cfg.Snapshot.Path)
	}
	if cfg.Snapshot.Redis == nil || cfg.Snapshot.Redis.Addr != "localhost:6379" || cfg.Snapshot.Redis.DB != 3 {
		t.Errorf("snapshot redis: %+v", cfg.Snapshot.Redis)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "app_name: minimal\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Capacity != DefaultCapacity {
		t.Errorf("default capacity: %d", cfg.Capacity)
	}
	if cfg.Prefetch != DefaultPrefetch {
		t.Errorf("default prefetch: %d", cfg.Prefetch)
	}
	if cfg.Logger.Output != "stderr" {
		t.Errorf("default logger output: %q", cfg.Logger.Output)
	}
	if cfg.Snapshot.Redis != nil {
		t.Errorf("redis configured from nothing: %+v", cfg.Snapshot.Redis)
	}
}

func TestCapacityFloor(t *testing.T) {
	path := writeConfig(t, "paging:\n  capacity: -4\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Capacity != DefaultCapacity {
		t.Errorf("negative capacity not floored: %d", cfg.Capacity)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PAGECORE_PAGING_CAPACITY", "99")

	path := writeConfig(t, "paging:\n  capacity: 10\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Capacity != 99 {
		t.Errorf("env override ignored: %d", cfg.Capacity)
	}
}
