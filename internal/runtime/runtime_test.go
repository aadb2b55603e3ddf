package runtime

import (
	"context"
	"testing"

	cfgpkg "github.com/mrsanskar19/self-transfer/internal/config"
	pebblestore "github.com/mrsanskar19/self-transfer/internal/storage/pebble"
	"github.com/mrsanskar19/self-transfer/internal/store"
)

func TestOpenCloseHealth(t *testing.T) {
	dir := t.TempDir()
	rt, err := Open(Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways, Config: cfgpkg.Default()})
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	defer rt.Close()
	if err := rt.CheckHealth(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	cfg := cfgpkg.Default()

	rt, err := Open(Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways, Config: cfg})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	m, err := rt.Store().AppendMessage(store.Message{Type: store.TypeText, Content: "persist me"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := rt.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	rt2, err := Open(Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways, Config: cfg})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer rt2.Close()
	got, err := rt2.Store().GetMessage(m.ID)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if got.Content != "persist me" {
		t.Fatalf("content = %q, want %q", got.Content, "persist me")
	}
}
