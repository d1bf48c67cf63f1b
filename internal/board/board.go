package board

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"stockboard/internal/logging"
)

// Persistence mirrors board mutations to durable storage. The board itself is
// the source of truth; implementations only need to replay LoadAll faithfully.
type Persistence interface {
	LoadAll(ctx context.Context) (Snapshot, error)
	SaveStock(ctx context.Context, stock *Stock) error
	DeleteStock(ctx context.Context, id int64) error
	AppendLog(ctx context.Context, entry *LogEntry) error
}

// Snapshot is the full persisted board state.
type Snapshot struct {
	Stocks      []*Stock
	Logs        []*LogEntry
	NextStockID int64
	NextLogID   int64
}

// Notifier receives advisory signals after commands. Failures to deliver are
// logged and otherwise ignored; notifications are not part of the data
// contract.
type Notifier interface {
	StockCreated(ctx context.Context, stock *Stock) error
	StockMoved(ctx context.Context, stock *Stock, entry *LogEntry) error
	StockDeleted(ctx context.Context, stock *Stock) error
	CommandFailed(ctx context.Context, operation string, err error) error
}

// MoveRequest carries one transition command. The identifier is required; a
// zero StockID never resolves.
type MoveRequest struct {
	StockID     int64
	TargetStage string
	Comment     string
	Actor       string
	Forced      bool
	Rationale   string
}

// Filter narrows List results.
type Filter struct {
	// Match is a case-insensitive substring matched against ticker and
	// display name. Empty matches everything.
	Match string
	// StaleOnly keeps only stocks past the staleness threshold.
	StaleOnly bool
}

// Options configures a Board.
type Options struct {
	Registry *Registry
	// StaleAfterDays is the staleness threshold; stocks strictly beyond it
	// count as stale.
	StaleAfterDays int
	Store          Persistence
	Notifier       Notifier
	Logger         *slog.Logger
	// Clock overrides time.Now for tests.
	Clock func() time.Time
}

// Board owns all tracked stocks and the transition log for one board
// instance.
type Board struct {
	mu        sync.Mutex
	registry  *Registry
	staleDays int
	stocks    map[int64]*Stock
	logs      []*LogEntry
	nextStock int64
	nextLog   int64
	lastErr   string
	store     Persistence
	notifier  Notifier
	logger    *slog.Logger
	clock     func() time.Time
}

var tickerCaser = cases.Upper(language.Und)

// New constructs an empty board. Call Load to hydrate it from storage.
func New(opts Options) (*Board, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("%w: registry is required", ErrInvalidStageDefinition)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	staleDays := opts.StaleAfterDays
	if staleDays <= 0 {
		staleDays = 30
	}
	return &Board{
		registry:  opts.Registry,
		staleDays: staleDays,
		stocks:    make(map[int64]*Stock),
		nextStock: 1,
		nextLog:   1,
		store:     opts.Store,
		notifier:  opts.Notifier,
		logger:    logging.NewComponentLogger(logger, "board"),
		clock:     clock,
	}, nil
}

// Registry returns the stage registry backing this board.
func (b *Board) Registry() *Registry {
	return b.registry
}

// StaleAfterDays returns the configured staleness threshold.
func (b *Board) StaleAfterDays() int {
	return b.staleDays
}

// Validate classifies a transition without touching board state.
func (b *Board) Validate(current, target string) Decision {
	return b.registry.Validate(current, target)
}

// Load hydrates the board from persistence and refreshes every stock's age.
// Boards without a store start empty.
func (b *Board) Load(ctx context.Context) error {
	if b.store == nil {
		return nil
	}
	snapshot, err := b.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.stocks = make(map[int64]*Stock, len(snapshot.Stocks))
	now := b.clock()
	for _, stock := range snapshot.Stocks {
		refreshed := RecomputeAge(*stock, now)
		b.stocks[stock.ID] = &refreshed
		if stock.ID >= b.nextStock {
			b.nextStock = stock.ID + 1
		}
	}
	b.logs = make([]*LogEntry, 0, len(snapshot.Logs))
	for _, entry := range snapshot.Logs {
		b.logs = append(b.logs, entry.Clone())
		if entry.ID >= b.nextLog {
			b.nextLog = entry.ID + 1
		}
	}
	if snapshot.NextStockID > b.nextStock {
		b.nextStock = snapshot.NextStockID
	}
	if snapshot.NextLogID > b.nextLog {
		b.nextLog = snapshot.NextLogID
	}

	b.logger.Info("board loaded",
		logging.Int("stocks", len(b.stocks)),
		logging.Int("log_entries", len(b.logs)))
	return nil
}

// Create adds a new stock and appends its synthetic creation log entry.
// The ticker is upper-cased and must not collide case-insensitively with an
// existing stock. An empty initial stage lands on the first registry stage.
func (b *Board) Create(ctx context.Context, ticker, displayName, initialStage string) (*Stock, error) {
	return b.create(ctx, ticker, displayName, initialStage, "Initial creation")
}

func (b *Board) create(ctx context.Context, ticker, displayName, initialStage, comment string) (*Stock, error) {
	ticker = tickerCaser.String(strings.TrimSpace(ticker))
	displayName = strings.TrimSpace(displayName)
	initialStage = strings.TrimSpace(initialStage)

	b.mu.Lock()
	if ticker == "" || displayName == "" {
		return nil, b.failLocked(ctx, "create", fmt.Errorf("%w: ticker and display name must be set", ErrMissingField))
	}
	if initialStage == "" {
		initialStage = b.registry.First()
	}
	if !b.registry.Exists(initialStage) {
		return nil, b.failLocked(ctx, "create", fmt.Errorf("%w: %q is not on this board", ErrInvalidStage, initialStage))
	}
	for _, existing := range b.stocks {
		if strings.EqualFold(existing.Ticker, ticker) {
			return nil, b.failLocked(ctx, "create", fmt.Errorf("%w: %s is already tracked (id %d)", ErrDuplicateTicker, existing.Ticker, existing.ID))
		}
	}

	now := b.clock()
	stock := &Stock{
		ID:             b.nextStock,
		Ticker:         ticker,
		DisplayName:    displayName,
		CurrentStage:   initialStage,
		LastUpdatedAt:  now,
		StageEnteredAt: now,
	}
	b.nextStock++
	b.stocks[stock.ID] = stock

	entry := &LogEntry{
		ID:        b.nextLog,
		StockID:   stock.ID,
		Kind:      EntryCreation,
		NewStage:  initialStage,
		Timestamp: now,
		Comment:   comment,
		Actor:     SystemActor,
	}
	b.nextLog++
	b.logs = append(b.logs, entry)

	b.lastErr = ""
	b.persistStockLocked(ctx, stock)
	b.persistLogLocked(ctx, entry)

	stockCopy := stock.Clone()
	b.mu.Unlock()

	b.logger.Info("stock created", logging.Args(append(logging.ContextFields(ctx),
		logging.Int64(logging.FieldStockID, stockCopy.ID),
		logging.String("ticker", stockCopy.Ticker),
		logging.String(logging.FieldStage, stockCopy.CurrentStage))...)...)
	if b.notifier != nil {
		if err := b.notifier.StockCreated(ctx, stockCopy); err != nil {
			b.logger.Warn("creation notification failed", logging.Error(err))
		}
	}
	return stockCopy, nil
}

// Move applies one transition. The caller is expected to have run Validate
// for standard moves; the engine itself re-checks only the same-stage no-op
// guard, the target's existence, and the forced-rationale requirement. A
// same-stage request returns the stock untouched with no log entry.
func (b *Board) Move(ctx context.Context, req MoveRequest) (*Stock, error) {
	target := strings.TrimSpace(req.TargetStage)

	b.mu.Lock()
	if !b.registry.Exists(target) {
		return nil, b.failLocked(ctx, "move", fmt.Errorf("%w: %q is not on this board", ErrInvalidStage, target))
	}
	stock, ok := b.stocks[req.StockID]
	if !ok {
		return nil, b.failLocked(ctx, "move", fmt.Errorf("%w: id %d", ErrStockNotFound, req.StockID))
	}
	if stock.CurrentStage == target {
		cp := stock.Clone()
		b.mu.Unlock()
		return cp, nil
	}
	if req.Forced && strings.TrimSpace(req.Rationale) == "" {
		return nil, b.failLocked(ctx, "move", fmt.Errorf("%w: stock %d to %s", ErrRationaleRequired, req.StockID, target))
	}

	previousStage := stock.CurrentStage
	daysInPrevious := stock.DaysInStage
	now := b.clock()

	stock.CurrentStage = target
	stock.LastUpdatedAt = now
	stock.StageEnteredAt = now
	stock.DaysInStage = 0
	stock.Forced = req.Forced

	entry := &LogEntry{
		ID:                  b.nextLog,
		StockID:             stock.ID,
		Kind:                EntryMove,
		PreviousStage:       previousStage,
		NewStage:            target,
		Timestamp:           now,
		Comment:             req.Comment,
		Actor:               req.Actor,
		DaysInPreviousStage: daysInPrevious,
		Forced:              req.Forced,
		ForcedRationale:     strings.TrimSpace(req.Rationale),
	}
	b.nextLog++
	b.logs = append(b.logs, entry)

	b.lastErr = ""
	b.persistStockLocked(ctx, stock)
	b.persistLogLocked(ctx, entry)

	stockCopy := stock.Clone()
	entryCopy := entry.Clone()
	b.mu.Unlock()

	b.logger.Info("stock moved", logging.Args(append(logging.ContextFields(ctx),
		logging.Int64(logging.FieldStockID, stockCopy.ID),
		logging.String("from", previousStage),
		logging.String("to", target),
		logging.Int("days_in_previous", daysInPrevious),
		logging.Bool("forced", req.Forced))...)...)
	if b.notifier != nil {
		if err := b.notifier.StockMoved(ctx, stockCopy, entryCopy); err != nil {
			b.logger.Warn("move notification failed", logging.Error(err))
		}
	}
	return stockCopy, nil
}

// Delete removes a stock. Its log entries stay queryable; the audit trail
// survives deletion. Deleting an unknown id reports false without error.
func (b *Board) Delete(ctx context.Context, id int64) (bool, error) {
	b.mu.Lock()
	stock, ok := b.stocks[id]
	if !ok {
		b.mu.Unlock()
		return false, nil
	}
	delete(b.stocks, id)
	if b.store != nil {
		if err := b.store.DeleteStock(ctx, id); err != nil {
			b.logger.Warn("persist delete failed", logging.Int64(logging.FieldStockID, id), logging.Error(err))
			b.lastErr = err.Error()
		}
	}
	stockCopy := stock.Clone()
	b.mu.Unlock()

	b.logger.Info("stock deleted",
		logging.Int64(logging.FieldStockID, stockCopy.ID),
		logging.String("ticker", stockCopy.Ticker))
	if b.notifier != nil {
		if err := b.notifier.StockDeleted(ctx, stockCopy); err != nil {
			b.logger.Warn("deletion notification failed", logging.Error(err))
		}
	}
	return true, nil
}

// Get fetches a stock by id.
func (b *Board) Get(id int64) (*Stock, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	stock, ok := b.stocks[id]
	if !ok {
		return nil, false
	}
	return stock.Clone(), true
}

// List returns stocks ordered by id, narrowed by the filter. Staleness is
// evaluated against the stored DaysInStage; call RecomputeAllAges first for a
// current view.
func (b *Board) List(filter Filter) []*Stock {
	b.mu.Lock()
	defer b.mu.Unlock()

	match := strings.ToLower(strings.TrimSpace(filter.Match))
	result := make([]*Stock, 0, len(b.stocks))
	for _, stock := range b.stocks {
		if match != "" &&
			!strings.Contains(strings.ToLower(stock.Ticker), match) &&
			!strings.Contains(strings.ToLower(stock.DisplayName), match) {
			continue
		}
		if filter.StaleOnly && !b.isStale(stock) {
			continue
		}
		result = append(result, stock.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// IsStale reports whether a stock sits past the staleness threshold.
func (b *Board) IsStale(stock *Stock) bool {
	if stock == nil {
		return false
	}
	return stock.DaysInStage > b.staleDays
}

func (b *Board) isStale(stock *Stock) bool {
	return stock.DaysInStage > b.staleDays
}

// LogsFor returns the audit entries for one stock, newest first. The id need
// not resolve to a live stock.
func (b *Board) LogsFor(id int64) []*LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	result := make([]*LogEntry, 0, 8)
	for _, entry := range b.logs {
		if entry.StockID == id {
			result = append(result, entry.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].Timestamp.After(result[j].Timestamp)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

// Logs returns the full audit log in append order.
func (b *Board) Logs() []*LogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := make([]*LogEntry, 0, len(b.logs))
	for _, entry := range b.logs {
		result = append(result, entry.Clone())
	}
	return result
}

// RecomputeAllAges refreshes DaysInStage on every stock against the current
// clock and reports how many stocks changed. Derived ages are a point-in-time
// snapshot; callers refresh before staleness-dependent reads.
func (b *Board) RecomputeAllAges(ctx context.Context) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock()
	changed := 0
	for id, stock := range b.stocks {
		refreshed := RecomputeAge(*stock, now)
		if refreshed.DaysInStage != stock.DaysInStage || !refreshed.StageEnteredAt.Equal(stock.StageEnteredAt) {
			b.stocks[id] = &refreshed
			b.persistStockLocked(ctx, &refreshed)
			changed++
		}
	}
	return changed
}

// StageCounts returns the number of stocks per stage, keyed by stage name.
func (b *Board) StageCounts() map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()
	counts := make(map[string]int, len(b.registry.stages))
	for _, stock := range b.stocks {
		counts[stock.CurrentStage]++
	}
	return counts
}

// Size returns the number of tracked stocks and log entries.
func (b *Board) Size() (stocks, logs int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.stocks), len(b.logs)
}

// LastError returns the most recent command failure message, empty after any
// successful command.
func (b *Board) LastError() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastErr
}

// failLocked records the failure, releases the lock, and emits the error
// notification. Callers return its result directly.
func (b *Board) failLocked(ctx context.Context, operation string, err error) error {
	b.lastErr = err.Error()
	b.mu.Unlock()

	b.logger.Warn("command failed", logging.Args(append(logging.ContextFields(ctx),
		logging.String("operation", operation),
		logging.Error(err))...)...)
	if b.notifier != nil {
		if notifyErr := b.notifier.CommandFailed(ctx, operation, err); notifyErr != nil {
			b.logger.Warn("failure notification failed", logging.Error(notifyErr))
		}
	}
	return err
}

func (b *Board) persistStockLocked(ctx context.Context, stock *Stock) {
	if b.store == nil {
		return
	}
	if err := b.store.SaveStock(ctx, stock); err != nil {
		b.logger.Warn("persist stock failed", logging.Int64(logging.FieldStockID, stock.ID), logging.Error(err))
		b.lastErr = err.Error()
	}
}

func (b *Board) persistLogLocked(ctx context.Context, entry *LogEntry) {
	if b.store == nil {
		return
	}
	if err := b.store.AppendLog(ctx, entry); err != nil {
		b.logger.Warn("persist log entry failed", logging.Int64("log_id", entry.ID), logging.Error(err))
		b.lastErr = err.Error()
	}
}
