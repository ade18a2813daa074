package config

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"WORKSYNC_API_URL": "https://api.worksync.test",
	}))
	if err != nil {
		t.Fatalf("LoadWith returned error: %v", err)
	}
	if cfg.AgentAddr != "127.0.0.1:7420" {
		t.Fatalf("unexpected agent addr %q", cfg.AgentAddr)
	}
	if cfg.BootstrapTimeout != 10*time.Second || cfg.PollInterval != 60*time.Second || cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("unexpected timings %+v", cfg)
	}
	if cfg.Storage.Durable != "file" || cfg.Storage.Session != "memory" {
		t.Fatalf("unexpected storage drivers %+v", cfg.Storage)
	}
	if cfg.UsesRedis() || cfg.UsesMongo() {
		t.Fatalf("default drivers need neither redis nor mongo")
	}
}

func TestLoadWith_RequiresAPIURL(t *testing.T) {
	if _, err := LoadWith(context.Background(), envconfig.MapLookuper(nil)); err == nil {
		t.Fatalf("expected error without WORKSYNC_API_URL")
	}
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"WORKSYNC_API_URL": "ftp://nope",
	}))
	if err == nil || !strings.Contains(err.Error(), "WORKSYNC_API_URL") {
		t.Fatalf("expected URL validation error, got %v", err)
	}
}

func TestLoadWith_RejectsUnknownDriver(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"WORKSYNC_API_URL":       "http://localhost:5000",
		"WORKSYNC_DURABLE_STORE": "sqlite",
	}))
	if err == nil || !strings.Contains(err.Error(), "WORKSYNC_DURABLE_STORE") {
		t.Fatalf("expected driver validation error, got %v", err)
	}
}

func TestDurableFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Storage: StorageConfig{StateDir: dir}}
	got, err := cfg.DurableFile()
	if err != nil {
		t.Fatalf("DurableFile returned error: %v", err)
	}
	if got != filepath.Join(dir, "credentials.json") {
		t.Fatalf("unexpected path %q", got)
	}
}
