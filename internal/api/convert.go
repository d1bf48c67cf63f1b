package api

import (
	"stockboard/internal/board"
)

// FromStock converts a board record to its API representation. Staleness is
// evaluated against the supplied threshold.
func FromStock(stock *board.Stock, staleAfterDays int) Stock {
	if stock == nil {
		return Stock{}
	}
	dto := Stock{
		ID:           stock.ID,
		Ticker:       stock.Ticker,
		DisplayName:  stock.DisplayName,
		CurrentStage: stock.CurrentStage,
		DaysInStage:  stock.DaysInStage,
		Forced:       stock.Forced,
		Stale:        staleAfterDays > 0 && stock.DaysInStage > staleAfterDays,
	}
	if !stock.LastUpdatedAt.IsZero() {
		dto.LastUpdatedAt = stock.LastUpdatedAt.UTC().Format(dateTimeFormat)
	}
	if !stock.StageEnteredAt.IsZero() {
		dto.StageEnteredAt = stock.StageEnteredAt.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromStocks converts a slice of board records into API DTOs.
func FromStocks(stocks []*board.Stock, staleAfterDays int) []Stock {
	if len(stocks) == 0 {
		return nil
	}
	out := make([]Stock, 0, len(stocks))
	for _, stock := range stocks {
		out = append(out, FromStock(stock, staleAfterDays))
	}
	return out
}

// FromLogEntry converts an audit record to its API representation. Creation
// entries render the VOID sentinel as their previous stage.
func FromLogEntry(entry *board.LogEntry) LogEntry {
	if entry == nil {
		return LogEntry{}
	}
	dto := LogEntry{
		ID:                  entry.ID,
		StockID:             entry.StockID,
		Kind:                string(entry.Kind),
		PreviousStage:       entry.PreviousStageLabel(),
		NewStage:            entry.NewStage,
		Comment:             entry.Comment,
		Actor:               entry.Actor,
		DaysInPreviousStage: entry.DaysInPreviousStage,
		Forced:              entry.Forced,
		ForcedRationale:     entry.ForcedRationale,
	}
	if !entry.Timestamp.IsZero() {
		dto.Timestamp = entry.Timestamp.UTC().Format(dateTimeFormat)
	}
	return dto
}

// FromLogEntries converts audit records into API DTOs.
func FromLogEntries(entries []*board.LogEntry) []LogEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]LogEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, FromLogEntry(entry))
	}
	return out
}

// FromDecision converts a validator verdict into the API payload.
func FromDecision(current, target string, decision board.Decision) ValidationResult {
	return ValidationResult{
		CurrentStage: current,
		TargetStage:  target,
		Outcome:      decision.Outcome.String(),
		Reason:       decision.Reason,
	}
}
