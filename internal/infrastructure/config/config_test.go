package config

import (
	"os"
	"path/filepath"
	"testing"
)

// unsetenv clears a variable for the test while restoring it afterwards.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadServerReadsNestedSections(t *testing.T) {
	t.Setenv("GROWTHLAB_DB_PATH", "/tmp/gl-test.db")
	t.Setenv("GROWTHLAB_REDIS_ADDR", "localhost:6379")
	unsetenv(t, "GROWTHLAB_WORKSPACE")
	unsetenv(t, "GROWTHLAB_ADDR")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer: %v", err)
	}
	if cfg.Database.Path != "/tmp/gl-test.db" {
		t.Errorf("Database.Path = %q, want /tmp/gl-test.db", cfg.Database.Path)
	}
	if cfg.Realtime.RedisAddr != "localhost:6379" {
		t.Errorf("Realtime.RedisAddr = %q", cfg.Realtime.RedisAddr)
	}
	if cfg.Realtime.Workspace != "default" {
		t.Errorf("Realtime.Workspace = %q, want default", cfg.Realtime.Workspace)
	}
	if cfg.Addr != ":8321" {
		t.Errorf("Addr = %q, want :8321", cfg.Addr)
	}
}

func TestResolveDBPathPrefersExplicit(t *testing.T) {
	d := Database{Path: "/data/explicit.db"}
	got, err := d.ResolveDBPath()
	if err != nil {
		t.Fatalf("ResolveDBPath: %v", err)
	}
	if got != "/data/explicit.db" {
		t.Errorf("path = %q, want /data/explicit.db", got)
	}
}

func TestResolveDBPathDefaultsToXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	got, err := Database{}.ResolveDBPath()
	if err != nil {
		t.Fatalf("ResolveDBPath: %v", err)
	}
	if filepath.Base(got) != "growthlab.db" {
		t.Errorf("path = %q, want growthlab.db basename", got)
	}
}
