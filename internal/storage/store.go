package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"stockboard/internal/board"
	"stockboard/internal/config"
)

// Store persists board state in SQLite. It implements board.Persistence.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the board database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.DatabasePath())
}

// OpenPath connects to the database at an explicit path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

const stockColumns = "id, ticker, display_name, current_stage, last_updated_at, stage_entered_at, days_in_stage, forced"

const logColumns = "id, stock_id, kind, previous_stage, new_stage, timestamp, comment, actor, days_in_previous_stage, forced, forced_rationale"

// LoadAll reads the full board snapshot.
func (s *Store) LoadAll(ctx context.Context) (board.Snapshot, error) {
	var snapshot board.Snapshot

	rows, err := s.db.QueryContext(ctx, "SELECT "+stockColumns+" FROM stocks ORDER BY id")
	if err != nil {
		return snapshot, fmt.Errorf("query stocks: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		stock, scanErr := scanStock(rows)
		if scanErr != nil {
			return snapshot, fmt.Errorf("scan stock: %w", scanErr)
		}
		snapshot.Stocks = append(snapshot.Stocks, stock)
	}
	if err := rows.Err(); err != nil {
		return snapshot, fmt.Errorf("iterate stocks: %w", err)
	}

	logRows, err := s.db.QueryContext(ctx, "SELECT "+logColumns+" FROM transition_logs ORDER BY id")
	if err != nil {
		return snapshot, fmt.Errorf("query transition logs: %w", err)
	}
	defer logRows.Close()
	for logRows.Next() {
		entry, scanErr := scanLogEntry(logRows)
		if scanErr != nil {
			return snapshot, fmt.Errorf("scan transition log: %w", scanErr)
		}
		snapshot.Logs = append(snapshot.Logs, entry)
	}
	if err := logRows.Err(); err != nil {
		return snapshot, fmt.Errorf("iterate transition logs: %w", err)
	}
	return snapshot, nil
}

// SaveStock inserts or replaces one stock row.
func (s *Store) SaveStock(ctx context.Context, stock *board.Stock) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO stocks (`+stockColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             ticker = excluded.ticker,
             display_name = excluded.display_name,
             current_stage = excluded.current_stage,
             last_updated_at = excluded.last_updated_at,
             stage_entered_at = excluded.stage_entered_at,
             days_in_stage = excluded.days_in_stage,
             forced = excluded.forced`,
		stock.ID,
		stock.Ticker,
		stock.DisplayName,
		stock.CurrentStage,
		stock.LastUpdatedAt.UTC().Format(time.RFC3339Nano),
		nullableTime(stock.StageEnteredAt),
		stock.DaysInStage,
		boolToInt(stock.Forced),
	)
	if err != nil {
		return fmt.Errorf("save stock %d: %w", stock.ID, err)
	}
	return nil
}

// DeleteStock removes one stock row. Transition logs are left in place.
func (s *Store) DeleteStock(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM stocks WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete stock %d: %w", id, err)
	}
	return nil
}

// AppendLog inserts one transition log row.
func (s *Store) AppendLog(ctx context.Context, entry *board.LogEntry) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO transition_logs ("+logColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		entry.ID,
		entry.StockID,
		string(entry.Kind),
		nullableString(entry.PreviousStage),
		entry.NewStage,
		entry.Timestamp.UTC().Format(time.RFC3339Nano),
		nullableString(entry.Comment),
		nullableString(entry.Actor),
		entry.DaysInPreviousStage,
		boolToInt(entry.Forced),
		nullableString(entry.ForcedRationale),
	)
	if err != nil {
		return fmt.Errorf("append transition log %d: %w", entry.ID, err)
	}
	return nil
}

func scanStock(scanner interface{ Scan(dest ...any) error }) (*board.Stock, error) {
	var (
		id          int64
		ticker      string
		displayName string
		stage       string
		updatedRaw  string
		enteredRaw  sql.NullString
		days        int
		forced      int64
	)
	if err := scanner.Scan(&id, &ticker, &displayName, &stage, &updatedRaw, &enteredRaw, &days, &forced); err != nil {
		return nil, err
	}
	stock := &board.Stock{
		ID:            id,
		Ticker:        ticker,
		DisplayName:   displayName,
		CurrentStage:  stage,
		LastUpdatedAt: parseTime(updatedRaw),
		DaysInStage:   days,
		Forced:        forced != 0,
	}
	if enteredRaw.Valid {
		stock.StageEnteredAt = parseTime(enteredRaw.String)
	}
	return stock, nil
}

func scanLogEntry(scanner interface{ Scan(dest ...any) error }) (*board.LogEntry, error) {
	var (
		id            int64
		stockID       int64
		kindRaw       string
		previousStage sql.NullString
		newStage      string
		timestampRaw  string
		comment       sql.NullString
		actor         sql.NullString
		daysPrevious  int
		forced        int64
		rationale     sql.NullString
	)
	if err := scanner.Scan(&id, &stockID, &kindRaw, &previousStage, &newStage, &timestampRaw, &comment, &actor, &daysPrevious, &forced, &rationale); err != nil {
		return nil, err
	}
	kind, ok := board.ParseEntryKind(kindRaw)
	if !ok {
		// Rows from before kinds existed are all real moves.
		kind = board.EntryMove
	}
	return &board.LogEntry{
		ID:                  id,
		StockID:             stockID,
		Kind:                kind,
		PreviousStage:       previousStage.String,
		NewStage:            newStage,
		Timestamp:           parseTime(timestampRaw),
		Comment:             comment.String,
		Actor:               actor.String,
		DaysInPreviousStage: daysPrevious,
		Forced:              forced != 0,
		ForcedRationale:     rationale.String,
	}, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts.UTC()
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.UTC()
	}
	return time.Time{}
}

func nullableTime(ts time.Time) any {
	if ts.IsZero() {
		return nil
	}
	return ts.UTC().Format(time.RFC3339Nano)
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int64 {
	if value {
		return 1
	}
	return 0
}
