package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"stockboard/internal/board"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(filepath.Join(t.TempDir(), "board.db"))
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRoundTripsSnapshot(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.February, 1, 8, 30, 0, 0, time.UTC)

	stock := &board.Stock{
		ID:             1,
		Ticker:         "AAPL",
		DisplayName:    "Apple Inc.",
		CurrentStage:   "Discovery",
		LastUpdatedAt:  now,
		StageEnteredAt: now.Add(-72 * time.Hour),
		DaysInStage:    3,
		Forced:         true,
	}
	if err := store.SaveStock(ctx, stock); err != nil {
		t.Fatalf("SaveStock: %v", err)
	}
	entries := []*board.LogEntry{
		{ID: 1, StockID: 1, Kind: board.EntryCreation, NewStage: "Universe", Timestamp: now.Add(-96 * time.Hour), Comment: "Initial creation", Actor: board.SystemActor},
		{ID: 2, StockID: 1, Kind: board.EntryMove, PreviousStage: "Universe", NewStage: "Discovery", Timestamp: now.Add(-72 * time.Hour), Actor: "Alice", DaysInPreviousStage: 1, Forced: true, ForcedRationale: "correction"},
	}
	for _, entry := range entries {
		if err := store.AppendLog(ctx, entry); err != nil {
			t.Fatalf("AppendLog %d: %v", entry.ID, err)
		}
	}

	snapshot, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(snapshot.Stocks) != 1 || len(snapshot.Logs) != 2 {
		t.Fatalf("snapshot has %d stocks, %d logs; want 1 and 2", len(snapshot.Stocks), len(snapshot.Logs))
	}

	got := snapshot.Stocks[0]
	if got.Ticker != "AAPL" || got.CurrentStage != "Discovery" || got.DaysInStage != 3 || !got.Forced {
		t.Fatalf("unexpected stock: %+v", got)
	}
	if !got.LastUpdatedAt.Equal(stock.LastUpdatedAt) || !got.StageEnteredAt.Equal(stock.StageEnteredAt) {
		t.Fatalf("timestamps drifted: %+v", got)
	}

	creation := snapshot.Logs[0]
	if creation.Kind != board.EntryCreation || creation.PreviousStage != "" {
		t.Fatalf("unexpected creation entry: %+v", creation)
	}
	move := snapshot.Logs[1]
	if move.Kind != board.EntryMove || move.PreviousStage != "Universe" || !move.Forced || move.ForcedRationale != "correction" {
		t.Fatalf("unexpected move entry: %+v", move)
	}
	if move.DaysInPreviousStage != 1 {
		t.Fatalf("DaysInPreviousStage = %d, want 1", move.DaysInPreviousStage)
	}
}

func TestSaveStockUpsertsInPlace(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	stock := &board.Stock{ID: 5, Ticker: "MSFT", DisplayName: "Microsoft Corporation", CurrentStage: "Universe", LastUpdatedAt: now, StageEnteredAt: now}
	if err := store.SaveStock(ctx, stock); err != nil {
		t.Fatalf("SaveStock: %v", err)
	}
	stock.CurrentStage = "Prospects"
	stock.DaysInStage = 12
	if err := store.SaveStock(ctx, stock); err != nil {
		t.Fatalf("SaveStock update: %v", err)
	}

	snapshot, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(snapshot.Stocks) != 1 {
		t.Fatalf("upsert produced %d rows, want 1", len(snapshot.Stocks))
	}
	if snapshot.Stocks[0].CurrentStage != "Prospects" || snapshot.Stocks[0].DaysInStage != 12 {
		t.Fatalf("update not applied: %+v", snapshot.Stocks[0])
	}
}

func TestDeleteStockKeepsTransitionLogs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	stock := &board.Stock{ID: 9, Ticker: "TSLA", DisplayName: "Tesla Inc.", CurrentStage: "Outreach", LastUpdatedAt: now, StageEnteredAt: now}
	if err := store.SaveStock(ctx, stock); err != nil {
		t.Fatalf("SaveStock: %v", err)
	}
	entry := &board.LogEntry{ID: 1, StockID: 9, Kind: board.EntryCreation, NewStage: "Outreach", Timestamp: now, Actor: board.SystemActor}
	if err := store.AppendLog(ctx, entry); err != nil {
		t.Fatalf("AppendLog: %v", err)
	}

	if err := store.DeleteStock(ctx, 9); err != nil {
		t.Fatalf("DeleteStock: %v", err)
	}
	snapshot, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(snapshot.Stocks) != 0 {
		t.Fatalf("stock rows remain after delete: %d", len(snapshot.Stocks))
	}
	if len(snapshot.Logs) != 1 {
		t.Fatalf("transition logs must outlive the stock, got %d", len(snapshot.Logs))
	}
}

func TestUnsetStageEnteredAtStoresAsNull(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	stock := &board.Stock{ID: 2, Ticker: "NFLX", DisplayName: "Netflix Inc.", CurrentStage: "Tracker", LastUpdatedAt: time.Now().UTC()}
	if err := store.SaveStock(ctx, stock); err != nil {
		t.Fatalf("SaveStock: %v", err)
	}
	snapshot, err := store.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if !snapshot.Stocks[0].StageEnteredAt.IsZero() {
		t.Fatalf("StageEnteredAt = %v, want zero", snapshot.Stocks[0].StageEnteredAt)
	}
}

func TestOpenPathRejectsSchemaMismatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "board.db")
	store, err := OpenPath(dbPath)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if _, err := OpenPath(dbPath); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
