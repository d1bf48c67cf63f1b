package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Stock describes a tracked stock in a transport-friendly format.
type Stock struct {
	ID             int64  `json:"id"`
	Ticker         string `json:"ticker"`
	DisplayName    string `json:"displayName"`
	CurrentStage   string `json:"currentStage"`
	LastUpdatedAt  string `json:"lastUpdatedAt,omitempty"`
	StageEnteredAt string `json:"stageEnteredAt,omitempty"`
	DaysInStage    int    `json:"daysInStage"`
	Forced         bool   `json:"forced"`
	Stale          bool   `json:"stale"`
}

// LogEntry describes one audit log line. PreviousStage carries the VOID
// sentinel for creation entries.
type LogEntry struct {
	ID                  int64  `json:"id"`
	StockID             int64  `json:"stockId"`
	Kind                string `json:"kind"`
	PreviousStage       string `json:"previousStage"`
	NewStage            string `json:"newStage"`
	Timestamp           string `json:"timestamp,omitempty"`
	Comment             string `json:"comment,omitempty"`
	Actor               string `json:"actor,omitempty"`
	DaysInPreviousStage int    `json:"daysInPreviousStage"`
	Forced              bool   `json:"forced"`
	ForcedRationale     string `json:"forcedRationale,omitempty"`
}

// StageInfo describes one stage of the board in order.
type StageInfo struct {
	Name      string `json:"name"`
	Position  int    `json:"position"`
	Archive   bool   `json:"archive"`
	Restore   bool   `json:"restore"`
	Count     int    `json:"count"`
	StaleHere int    `json:"staleHere"`
}

// ValidationResult is the validator verdict for a proposed transition.
type ValidationResult struct {
	CurrentStage string `json:"currentStage"`
	TargetStage  string `json:"targetStage"`
	Outcome      string `json:"outcome"`
	Reason       string `json:"reason,omitempty"`
}

// BoardStatus aggregates board runtime information for API consumers.
type BoardStatus struct {
	Running        bool           `json:"running"`
	PID            int            `json:"pid"`
	DatabasePath   string         `json:"databasePath,omitempty"`
	LockFilePath   string         `json:"lockFilePath,omitempty"`
	StockCount     int            `json:"stockCount"`
	LogCount       int            `json:"logCount"`
	StaleCount     int            `json:"staleCount"`
	StaleAfterDays int            `json:"staleAfterDays"`
	StageCounts    map[string]int `json:"stageCounts"`
	LastError      string         `json:"lastError,omitempty"`
}

// StockListResponse wraps a collection of stocks.
type StockListResponse struct {
	Stocks []Stock `json:"stocks"`
}

// StockResponse wraps a single stock.
type StockResponse struct {
	Stock Stock `json:"stock"`
}

// LogListResponse wraps a stock's audit entries, newest first.
type LogListResponse struct {
	Entries []LogEntry `json:"entries"`
}

// StageListResponse wraps the ordered stage list.
type StageListResponse struct {
	Stages []StageInfo `json:"stages"`
}
