package logging_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stockboard/internal/logging"
	"stockboard/internal/services"
)

func TestNewWritesConsoleFormat(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "out.log")

	logger, err := logging.New(logging.Options{
		Level:       "debug",
		Format:      "console",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	componentLogger := logging.NewComponentLogger(logger, "board")
	componentLogger.Info("stock moved", logging.Int64("stock_id", 7), logging.String("stage", "Live Deal"))

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO board: stock moved") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "stock_id=7") {
		t.Fatalf("missing stock_id attribute: %q", line)
	}
	if !strings.Contains(line, `stage="Live Deal"`) {
		t.Fatalf("stage with spaces should be quoted: %q", line)
	}
}

func TestNewWritesJSONFormat(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "out.log")

	logger, err := logging.New(logging.Options{
		Level:       "info",
		Format:      "json",
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("hello", logging.String("k", "v"))
	logger.Debug("suppressed")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, `"msg":"hello"`) || !strings.Contains(text, `"level":"info"`) {
		t.Fatalf("unexpected json line: %q", text)
	}
	if strings.Contains(text, "suppressed") {
		t.Fatalf("debug line should have been filtered: %q", text)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsCorrelationFields(t *testing.T) {
	ctx := services.WithStockID(context.Background(), 42)
	ctx = services.WithStage(ctx, "Prospects")
	ctx = services.WithRequestID(ctx, "req-1")

	fields := logging.ContextFields(ctx)
	keys := map[string]bool{}
	for _, attr := range fields {
		keys[attr.Key] = true
	}
	for _, want := range []string{logging.FieldStockID, logging.FieldStage, logging.FieldCorrelationID} {
		if !keys[want] {
			t.Fatalf("missing context field %q in %v", want, fields)
		}
	}

	if got := logging.WithContext(context.Background(), nil); got == nil {
		t.Fatal("WithContext should never return nil")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("nop logger should be disabled at every level")
	}
}
