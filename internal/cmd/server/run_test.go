package serverrun

import (
	"path/filepath"
	"testing"

	cfgpkg "github.com/mrsanskar19/self-transfer/internal/config"
)

func TestGetenvDefault(t *testing.T) {
	old := getenv
	defer func() { getenv = old }()

	env := map[string]string{"ST_LOG_LEVEL": "debug"}
	getenv = func(key string) string { return env[key] }

	if got := getenvDefault("ST_LOG_LEVEL", "info"); got != "debug" {
		t.Fatalf("set variable = %q, want debug", got)
	}
	if got := getenvDefault("ST_LOG_FORMAT", "text"); got != "text" {
		t.Fatalf("unset variable = %q, want default", got)
	}
}

func TestDataDirFallback(t *testing.T) {
	opts := Options{DataDir: ""}
	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}
	if opts.DataDir == "" {
		t.Fatalf("expected a fallback data dir")
	}
	if !filepath.IsAbs(opts.DataDir) && opts.DataDir != "./data" {
		t.Fatalf("unexpected fallback data dir: %s", opts.DataDir)
	}

	opts = Options{DataDir: "/custom/data"}
	if opts.DataDir != "/custom/data" {
		t.Fatalf("provided data dir not preserved: %s", opts.DataDir)
	}
}
