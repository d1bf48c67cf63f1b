package ipc_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stockboard/internal/board"
	"stockboard/internal/daemon"
	"stockboard/internal/ipc"
	"stockboard/internal/logging"
	"stockboard/internal/testsupport"
)

func startServer(t *testing.T) (*ipc.Client, *daemon.Daemon) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	d, err := daemon.New(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	socket := filepath.Join(cfg.Paths.DataDir, "stockboard.sock")
	srv, err := ipc.NewServer(ctx, socket, d, logging.NewNop())
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping IPC server test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(srv.Close)

	time.Sleep(50 * time.Millisecond)

	client, err := ipc.Dial(socket)
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, d
}

func TestIPCServerClientRoundTrip(t *testing.T) {
	client, _ := startServer(t)

	ping, err := client.Ping()
	if err != nil || !ping.Alive {
		t.Fatalf("Ping = %+v, %v", ping, err)
	}

	stages, err := client.StageList()
	if err != nil {
		t.Fatalf("StageList: %v", err)
	}
	if len(stages.Stages) != 8 || stages.Stages[0].Name != "Universe" {
		t.Fatalf("unexpected stages: %+v", stages.Stages)
	}

	added, err := client.StockAdd(ipc.StockAddRequest{Ticker: "aapl", DisplayName: "Apple Inc."})
	if err != nil {
		t.Fatalf("StockAdd: %v", err)
	}
	if added.Stock.Ticker != "AAPL" || added.Stock.CurrentStage != "Universe" {
		t.Fatalf("unexpected added stock: %+v", added.Stock)
	}

	duplicate, err := client.StockAdd(ipc.StockAddRequest{Ticker: "AAPL", DisplayName: "Apple Again"})
	if err == nil {
		t.Fatalf("duplicate ticker should fail, got %+v", duplicate)
	}

	list, err := client.StockList(ipc.StockListRequest{})
	if err != nil {
		t.Fatalf("StockList: %v", err)
	}
	if len(list.Stocks) != 1 {
		t.Fatalf("list has %d stocks, want 1", len(list.Stocks))
	}

	validation, err := client.ValidateMove("Universe", "Outreach")
	if err != nil {
		t.Fatalf("ValidateMove: %v", err)
	}
	if validation.Result.Outcome != "forceable" {
		t.Fatalf("unexpected validation: %+v", validation.Result)
	}

	moved, err := client.StockMove(ipc.StockMoveRequest{ID: added.Stock.ID, TargetStage: "Prospects", Actor: "Alice"})
	if err != nil {
		t.Fatalf("StockMove: %v", err)
	}
	if moved.Stock.CurrentStage != "Prospects" {
		t.Fatalf("stage = %q, want Prospects", moved.Stock.CurrentStage)
	}

	if _, err := client.StockMove(ipc.StockMoveRequest{ID: added.Stock.ID, TargetStage: "Tracker", Forced: true}); err == nil {
		t.Fatal("forced move without rationale should fail over IPC")
	}

	logs, err := client.StockLogs(added.Stock.ID)
	if err != nil {
		t.Fatalf("StockLogs: %v", err)
	}
	if len(logs.Entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(logs.Entries))
	}
	if logs.Entries[1].PreviousStage != board.VoidStage {
		t.Fatalf("creation previousStage = %q, want VOID", logs.Entries[1].PreviousStage)
	}

	refreshed, err := client.RefreshAges()
	if err != nil {
		t.Fatalf("RefreshAges: %v", err)
	}
	if refreshed.Updated != 0 {
		t.Fatalf("fresh board should have nothing to refresh, got %d", refreshed.Updated)
	}

	removed, err := client.StockRemove(added.Stock.ID)
	if err != nil || !removed.Removed {
		t.Fatalf("StockRemove = %+v, %v", removed, err)
	}
	logs, err = client.StockLogs(added.Stock.ID)
	if err != nil {
		t.Fatalf("StockLogs after remove: %v", err)
	}
	if len(logs.Entries) != 2 {
		t.Fatal("audit trail should survive removal over IPC")
	}

	if _, err := client.StockDescribe(added.Stock.ID); err == nil {
		t.Fatal("describing a removed stock should fail")
	}
}

func TestIPCStatusAndStop(t *testing.T) {
	client, d := startServer(t)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !status.Status.Running {
		t.Fatal("status should report running")
	}
	if status.Status.StaleAfterDays != 30 {
		t.Fatalf("StaleAfterDays = %d, want 30", status.Status.StaleAfterDays)
	}

	stop, err := client.Stop()
	if err != nil || !stop.Stopped {
		t.Fatalf("Stop = %+v, %v", stop, err)
	}
	if d.Running() {
		t.Fatal("daemon should be stopped")
	}
}
