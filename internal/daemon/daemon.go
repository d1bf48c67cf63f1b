package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"log/slog"

	"github.com/gofrs/flock"

	"stockboard/internal/api"
	"stockboard/internal/board"
	"stockboard/internal/config"
	"stockboard/internal/logging"
	"stockboard/internal/notifications"
	"stockboard/internal/storage"
)

// Daemon coordinates the board services and enforces single-instance
// execution.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *storage.Store
	board    *board.Board
	service  *api.BoardService
	notifier notifications.Service
	logPath  string

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	done    chan struct{}
}

// New constructs a daemon with initialized dependencies. The store and board
// are opened and hydrated here; Start only acquires the lock.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	registry, err := board.NewRegistry(cfg.Board.Stages, cfg.Board.ArchiveStage, cfg.Board.RestorationTarget)
	if err != nil {
		return nil, fmt.Errorf("build stage registry: %w", err)
	}

	store, err := storage.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	notifier := notifications.NewService(cfg)
	b, err := board.New(board.Options{
		Registry:       registry,
		StaleAfterDays: cfg.Board.StaleAfterDays,
		Store:          store,
		Notifier:       notifier,
		Logger:         logger,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	ctx := context.Background()
	if err := b.Load(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	if cfg.Board.SeedSampleData {
		seeded, seedErr := b.Seed(ctx)
		if seedErr != nil {
			_ = store.Close()
			return nil, fmt.Errorf("seed board: %w", seedErr)
		}
		if seeded > 0 {
			logger.Info("board seeded with sample data", logging.Int("stocks", seeded))
		}
	}
	b.RecomputeAllAges(ctx)

	lockPath := filepath.Join(cfg.Paths.DataDir, "stockboardd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		store:    store,
		board:    b,
		service:  api.NewBoardService(b, cfg.Board.DefaultActor),
		notifier: notifier,
		logPath:  filepath.Join(cfg.Paths.LogDir, "stockboard.log"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the single-instance lock and marks the daemon running.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another stockboard daemon instance is already running")
	}

	d.done = make(chan struct{})
	d.running.Store(true)
	d.logger.Info("stockboard daemon started",
		logging.String("lock", d.lockPath),
		logging.String("database", d.store.Path()))
	return nil
}

// Stop releases the daemon lock and signals waiters.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	if d.done != nil {
		close(d.done)
	}
	d.logger.Info("stockboard daemon stopped")
}

// Done returns a channel closed when the daemon stops. Nil until Start.
func (d *Daemon) Done() <-chan struct{} {
	return d.done
}

// Running reports whether the daemon holds the instance lock.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// Close stops the daemon and releases its resources.
func (d *Daemon) Close() error {
	d.Stop()
	if d.store != nil {
		return d.store.Close()
	}
	return nil
}

// Service returns the board service backing the IPC surface.
func (d *Daemon) Service() *api.BoardService {
	return d.service
}

// LogPath returns the daemon log file path.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// Status aggregates board and daemon runtime information.
func (d *Daemon) Status(ctx context.Context) api.BoardStatus {
	status := d.service.Status(ctx)
	status.Running = d.running.Load()
	status.PID = os.Getpid()
	status.DatabasePath = d.store.Path()
	status.LockFilePath = d.lockPath
	return status
}

// TestNotification triggers a test notification using the current
// configuration.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if strings.TrimSpace(d.cfg.Notifications.NtfyTopic) == "" {
		return false, "ntfy topic not configured", nil
	}
	if err := d.notifier.TestNotification(ctx); err != nil {
		return false, err.Error(), err
	}
	return true, "test notification sent", nil
}
