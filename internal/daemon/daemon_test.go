package daemon_test

import (
	"context"
	"testing"

	"stockboard/internal/api"
	"stockboard/internal/daemon"
	"stockboard/internal/logging"
	"stockboard/internal/testsupport"
)

func addRequest(ticker, displayName string) api.CreateStockRequest {
	return api.CreateStockRequest{Ticker: ticker, DisplayName: displayName}
}

func TestDaemonStartStopLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d, err := daemon.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if d.Running() {
		t.Fatal("daemon should not be running before Start")
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !d.Running() {
		t.Fatal("daemon should be running after Start")
	}
	if err := d.Start(context.Background()); err == nil {
		t.Fatal("second Start should fail while running")
	}

	status := d.Status(context.Background())
	if !status.Running || status.PID <= 0 {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.DatabasePath == "" || status.LockFilePath == "" {
		t.Fatalf("status missing paths: %+v", status)
	}

	d.Stop()
	if d.Running() {
		t.Fatal("daemon should not be running after Stop")
	}
	select {
	case <-d.Done():
	default:
		t.Fatal("Done channel should be closed after Stop")
	}
}

func TestDaemonSeedsWhenConfigured(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithSeedData())
	d, err := daemon.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	status := d.Status(context.Background())
	if status.StockCount == 0 {
		t.Fatal("seeded daemon should track sample stocks")
	}
	if status.LogCount != status.StockCount {
		t.Fatalf("each seeded stock should have one creation entry: %d stocks, %d logs",
			status.StockCount, status.LogCount)
	}
}

func TestDaemonStatePersistsAcrossRestart(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	d, err := daemon.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	created, err := d.Service().Create(ctx, addRequest("AAPL", "Apple Inc."))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	restarted, err := daemon.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New after restart: %v", err)
	}
	t.Cleanup(func() { _ = restarted.Close() })

	described, err := restarted.Service().Describe(ctx, created.ID)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if described == nil || described.Ticker != "AAPL" {
		t.Fatalf("stock lost across restart: %+v", described)
	}
}

func TestDaemonTestNotificationWithoutTopic(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d, err := daemon.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	sent, message, err := d.TestNotification(context.Background())
	if err != nil {
		t.Fatalf("TestNotification: %v", err)
	}
	if sent {
		t.Fatal("no topic configured, nothing should be sent")
	}
	if message == "" {
		t.Fatal("expected explanatory message")
	}
}
