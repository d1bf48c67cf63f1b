package ipc

import "stockboard/internal/api"

// Stock mirrors the API stock DTO for IPC callers.
type Stock = api.Stock

// LogEntry mirrors the API audit entry DTO.
type LogEntry = api.LogEntry

// StageInfo mirrors the API stage DTO.
type StageInfo = api.StageInfo

// StopRequest stops the daemon.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// PingRequest checks daemon liveness.
type PingRequest struct{}

// PingResponse reports daemon liveness.
type PingResponse struct {
	Alive bool `json:"alive"`
}

// StatusRequest fetches board and daemon status.
type StatusRequest struct{}

// StatusResponse carries combined daemon and board status.
type StatusResponse struct {
	Status api.BoardStatus `json:"status"`
}

// StageListRequest fetches the ordered stage list.
type StageListRequest struct{}

// StageListResponse contains the ordered stages with counts.
type StageListResponse struct {
	Stages []StageInfo `json:"stages"`
}

// StockListRequest filters the stock listing.
type StockListRequest struct {
	Match     string `json:"match,omitempty"`
	StaleOnly bool   `json:"staleOnly"`
}

// StockListResponse contains tracked stocks ordered by id.
type StockListResponse struct {
	Stocks []Stock `json:"stocks"`
}

// StockDescribeRequest fetches a single stock by id.
type StockDescribeRequest struct {
	ID int64 `json:"id"`
}

// StockDescribeResponse contains a single stock.
type StockDescribeResponse struct {
	Stock Stock `json:"stock"`
}

// StockAddRequest adds a stock to the board.
type StockAddRequest struct {
	Ticker       string `json:"ticker"`
	DisplayName  string `json:"displayName"`
	InitialStage string `json:"initialStage,omitempty"`
}

// StockAddResponse returns the created stock.
type StockAddResponse struct {
	Stock Stock `json:"stock"`
}

// StockMoveRequest applies a transition to a stock.
type StockMoveRequest struct {
	ID          int64  `json:"id"`
	TargetStage string `json:"targetStage"`
	Comment     string `json:"comment,omitempty"`
	Actor       string `json:"actor,omitempty"`
	Forced      bool   `json:"forced"`
	Rationale   string `json:"rationale,omitempty"`
}

// StockMoveResponse returns the stock after the move.
type StockMoveResponse struct {
	Stock Stock `json:"stock"`
}

// StockRemoveRequest removes a stock by id.
type StockRemoveRequest struct {
	ID int64 `json:"id"`
}

// StockRemoveResponse reports whether anything was removed.
type StockRemoveResponse struct {
	Removed bool `json:"removed"`
}

// StockLogsRequest fetches the audit trail for a stock id.
type StockLogsRequest struct {
	ID int64 `json:"id"`
}

// StockLogsResponse contains audit entries, newest first.
type StockLogsResponse struct {
	Entries []LogEntry `json:"entries"`
}

// ValidateRequest classifies a transition without applying it.
type ValidateRequest struct {
	CurrentStage string `json:"currentStage"`
	TargetStage  string `json:"targetStage"`
}

// ValidateResponse carries the validator verdict.
type ValidateResponse struct {
	Result api.ValidationResult `json:"result"`
}

// RefreshAgesRequest recomputes every stock's age.
type RefreshAgesRequest struct{}

// RefreshAgesResponse reports how many stocks changed.
type RefreshAgesResponse struct {
	Updated int `json:"updated"`
}

// TestNotificationRequest triggers a notification test.
type TestNotificationRequest struct{}

// TestNotificationResponse reports notification test outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}
