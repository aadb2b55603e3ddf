package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("default http addr")
	}
	if cfg.MessageTTL() != time.Hour {
		t.Fatalf("default ttl should be one hour, got %v", cfg.MessageTTL())
	}
	if !cfg.Sweep.OnList {
		t.Fatalf("sweep-on-list should default to true")
	}
	if cfg.SubscriberBuffer != 256 {
		t.Fatalf("subscriber buffer default")
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "selftransfer.json")
	data := []byte(`{"httpAddr":":9090","messageTtlSeconds":120,"sweep":{"intervalSeconds":5,"onList":false}}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.HTTPAddr)
	}
	if cfg.MessageTTL() != 2*time.Minute {
		t.Fatalf("expected 2m ttl, got %v", cfg.MessageTTL())
	}
	if cfg.Sweep.OnList {
		t.Fatalf("expected sweep-on-list disabled")
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "selftransfer.yaml")
	data := []byte("httpAddr: \":7070\"\npublicBaseUrl: https://share.example.com\nsweep:\n  cron: \"0 * * * *\"\n")
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Fatalf("expected :7070, got %s", cfg.HTTPAddr)
	}
	if cfg.PublicBaseURL != "https://share.example.com" {
		t.Fatalf("public base url: %s", cfg.PublicBaseURL)
	}
	if cfg.Sweep.Cron != "0 * * * *" {
		t.Fatalf("cron: %s", cfg.Sweep.Cron)
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	os.Setenv("ST_HTTP_ADDR", ":6060")
	os.Setenv("ST_MESSAGE_TTL_SECONDS", "30")
	os.Setenv("ST_SWEEP_ON_LIST", "false")
	t.Cleanup(func() {
		os.Unsetenv("ST_HTTP_ADDR")
		os.Unsetenv("ST_MESSAGE_TTL_SECONDS")
		os.Unsetenv("ST_SWEEP_ON_LIST")
	})
	FromEnv(&cfg)
	if cfg.HTTPAddr != ":6060" {
		t.Fatalf("env override addr")
	}
	if cfg.MessageTTLSeconds != 30 {
		t.Fatalf("env override ttl")
	}
	if cfg.Sweep.OnList {
		t.Fatalf("env override on-list")
	}
}

func TestDefaultDataDir(t *testing.T) {
	dir := DefaultDataDir()
	if dir == "" {
		t.Fatalf("expected non-empty data dir")
	}
}
