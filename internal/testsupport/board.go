package testsupport

import (
	"context"
	"testing"

	"stockboard/internal/board"
	"stockboard/internal/config"
	"stockboard/internal/storage"
)

// MustOpenStore opens a storage.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *storage.Store {
	t.Helper()

	store, err := storage.Open(cfg)
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// MustRegistry builds the stage registry for the given config.
func MustRegistry(t testing.TB, cfg *config.Config) *board.Registry {
	t.Helper()

	reg, err := board.NewRegistry(cfg.Board.Stages, cfg.Board.ArchiveStage, cfg.Board.RestorationTarget)
	if err != nil {
		t.Fatalf("board.NewRegistry: %v", err)
	}
	return reg
}

// NewBoard assembles a hydrated board backed by a temp store.
func NewBoard(t testing.TB, cfg *config.Config) *board.Board {
	t.Helper()

	store := MustOpenStore(t, cfg)
	b, err := board.New(board.Options{
		Registry:       MustRegistry(t, cfg),
		StaleAfterDays: cfg.Board.StaleAfterDays,
		Store:          store,
	})
	if err != nil {
		t.Fatalf("board.New: %v", err)
	}
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("board.Load: %v", err)
	}
	return b
}
