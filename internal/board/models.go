package board

import "time"

// VoidStage is the rendered previous-stage label for creation entries. It is
// presentation only: creation entries are tagged by Kind, so a real stage
// named "VOID" cannot collide with it.
const VoidStage = "VOID"

// SystemActor is recorded on synthetic log entries the engine writes itself.
const SystemActor = "System"

// Stock is a tracked item on the board.
type Stock struct {
	ID             int64
	Ticker         string
	DisplayName    string
	CurrentStage   string
	LastUpdatedAt  time.Time
	StageEnteredAt time.Time // zero means unset; self-healed on recompute
	DaysInStage    int
	Forced         bool // the most recent transition into CurrentStage was forced
}

// Clone returns an independent copy.
func (s *Stock) Clone() *Stock {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// EntryKind distinguishes synthetic creation entries from real moves.
type EntryKind string

const (
	EntryCreation EntryKind = "creation"
	EntryMove     EntryKind = "move"
)

// ParseEntryKind converts a stored string into a known EntryKind.
func ParseEntryKind(value string) (EntryKind, bool) {
	switch EntryKind(value) {
	case EntryCreation:
		return EntryCreation, true
	case EntryMove:
		return EntryMove, true
	default:
		return "", false
	}
}

// LogEntry is one line of the audit log. Entries are immutable once appended
// and are never deleted, even when the referenced stock is.
type LogEntry struct {
	ID                  int64
	StockID             int64
	Kind                EntryKind
	PreviousStage       string // empty for creation entries
	NewStage            string
	Timestamp           time.Time
	Comment             string
	Actor               string
	DaysInPreviousStage int
	Forced              bool
	ForcedRationale     string
}

// PreviousStageLabel returns the previous stage as displayed, substituting
// the VOID sentinel for creation entries.
func (e *LogEntry) PreviousStageLabel() string {
	if e.Kind == EntryCreation {
		return VoidStage
	}
	return e.PreviousStage
}

// Clone returns an independent copy.
func (e *LogEntry) Clone() *LogEntry {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}
