package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"stockboard/internal/testsupport"
)

func TestCheckDirectoryAccessOK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccessMissing(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "absent"))
	if result.Passed {
		t.Fatal("expected failure for missing directory")
	}
}

func TestCheckDirectoryAccessNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result := CheckDirectoryAccess("test", file)
	if result.Passed {
		t.Fatal("expected failure for plain file")
	}
}

func TestCheckDiskSpace(t *testing.T) {
	result := CheckDiskSpace("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckNtfy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	result := CheckNtfy(context.Background(), server.URL)
	if !result.Passed {
		t.Fatalf("expected pass for reachable server, got: %s", result.Detail)
	}

	result = CheckNtfy(context.Background(), "")
	if !result.Passed {
		t.Fatal("empty endpoint should pass as disabled")
	}
}

func TestRunAllCoversConfiguredChecks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(context.Background(), cfg)
	if len(results) != 3 {
		t.Fatalf("expected 3 checks without ntfy, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}
