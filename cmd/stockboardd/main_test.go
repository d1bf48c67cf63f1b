package main

import (
	"path/filepath"
	"testing"

	"stockboard/internal/config"
)

func TestBuildSocketPath(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(t.TempDir(), "data")

	expected := filepath.Join(cfg.Paths.DataDir, "stockboard.sock")
	if got := buildSocketPath(&cfg); got != expected {
		t.Fatalf("expected socket path %q, got %q", expected, got)
	}

	cfg.Paths.Socket = "/tmp/custom.sock"
	if got := buildSocketPath(&cfg); got != "/tmp/custom.sock" {
		t.Fatalf("explicit socket should win, got %q", got)
	}

	if got := buildSocketPath(nil); got != filepath.Join("", "stockboard.sock") {
		t.Fatalf("unexpected default socket path %q", got)
	}
}
