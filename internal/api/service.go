package api

import (
	"context"
	"strings"

	"stockboard/internal/board"
)

// CreateStockRequest carries the inputs for adding a stock.
type CreateStockRequest struct {
	Ticker       string `json:"ticker"`
	DisplayName  string `json:"displayName"`
	InitialStage string `json:"initialStage,omitempty"`
}

// MoveStockRequest carries the inputs for one transition command.
type MoveStockRequest struct {
	StockID     int64  `json:"stockId"`
	TargetStage string `json:"targetStage"`
	Comment     string `json:"comment,omitempty"`
	Actor       string `json:"actor,omitempty"`
	Forced      bool   `json:"forced"`
	Rationale   string `json:"rationale,omitempty"`
}

// StockFilter narrows stock listings.
type StockFilter struct {
	Match     string `json:"match,omitempty"`
	StaleOnly bool   `json:"staleOnly"`
}

// BoardService exposes board operations returning API DTOs. It is the single
// adapter both the IPC server and in-process callers go through.
type BoardService struct {
	board        *board.Board
	defaultActor string
}

// NewBoardService constructs a BoardService around a live board.
func NewBoardService(b *board.Board, defaultActor string) *BoardService {
	if b == nil {
		return nil
	}
	return &BoardService{board: b, defaultActor: strings.TrimSpace(defaultActor)}
}

// ListStages returns the ordered stage list with per-stage counts.
func (s *BoardService) ListStages() StageListResponse {
	reg := s.board.Registry()
	counts := s.board.StageCounts()

	staleByStage := make(map[string]int)
	for _, stock := range s.board.List(board.Filter{StaleOnly: true}) {
		staleByStage[stock.CurrentStage]++
	}

	stages := make([]StageInfo, 0, len(reg.Names()))
	for _, stage := range reg.StagesInOrder() {
		stages = append(stages, StageInfo{
			Name:      stage.Name,
			Position:  stage.Position,
			Archive:   stage.Name == reg.ArchiveStage(),
			Restore:   stage.Name == reg.RestorationTarget(),
			Count:     counts[stage.Name],
			StaleHere: staleByStage[stage.Name],
		})
	}
	return StageListResponse{Stages: stages}
}

// ListStocks returns stocks ordered by id, refreshed and filtered.
func (s *BoardService) ListStocks(ctx context.Context, filter StockFilter) (StockListResponse, error) {
	s.board.RecomputeAllAges(ctx)
	stocks := s.board.List(board.Filter{Match: filter.Match, StaleOnly: filter.StaleOnly})
	return StockListResponse{Stocks: FromStocks(stocks, s.board.StaleAfterDays())}, nil
}

// Describe fetches a single stock.
func (s *BoardService) Describe(ctx context.Context, id int64) (*Stock, error) {
	s.board.RecomputeAllAges(ctx)
	stock, ok := s.board.Get(id)
	if !ok {
		return nil, nil
	}
	dto := FromStock(stock, s.board.StaleAfterDays())
	return &dto, nil
}

// Logs returns the audit entries for a stock, newest first. Deleted stocks
// still resolve here.
func (s *BoardService) Logs(ctx context.Context, id int64) (LogListResponse, error) {
	return LogListResponse{Entries: FromLogEntries(s.board.LogsFor(id))}, nil
}

// Validate classifies a transition without applying it.
func (s *BoardService) Validate(current, target string) ValidationResult {
	return FromDecision(current, target, s.board.Validate(current, target))
}

// Create adds a stock to the board.
func (s *BoardService) Create(ctx context.Context, req CreateStockRequest) (*Stock, error) {
	stock, err := s.board.Create(ctx, req.Ticker, req.DisplayName, req.InitialStage)
	if err != nil {
		return nil, err
	}
	dto := FromStock(stock, s.board.StaleAfterDays())
	return &dto, nil
}

// Move applies one transition command, defaulting the actor when unset.
func (s *BoardService) Move(ctx context.Context, req MoveStockRequest) (*Stock, error) {
	actor := strings.TrimSpace(req.Actor)
	if actor == "" {
		actor = s.defaultActor
	}
	stock, err := s.board.Move(ctx, board.MoveRequest{
		StockID:     req.StockID,
		TargetStage: req.TargetStage,
		Comment:     req.Comment,
		Actor:       actor,
		Forced:      req.Forced,
		Rationale:   req.Rationale,
	})
	if err != nil {
		return nil, err
	}
	dto := FromStock(stock, s.board.StaleAfterDays())
	return &dto, nil
}

// Delete removes a stock, reporting whether anything was removed.
func (s *BoardService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.board.Delete(ctx, id)
}

// RecomputeAges refreshes every stock's age and reports how many changed.
func (s *BoardService) RecomputeAges(ctx context.Context) int {
	return s.board.RecomputeAllAges(ctx)
}

// Status summarizes board state for status commands.
func (s *BoardService) Status(ctx context.Context) BoardStatus {
	s.board.RecomputeAllAges(ctx)
	stocks, logs := s.board.Size()
	stale := s.board.List(board.Filter{StaleOnly: true})
	return BoardStatus{
		StockCount:     stocks,
		LogCount:       logs,
		StaleCount:     len(stale),
		StaleAfterDays: s.board.StaleAfterDays(),
		StageCounts:    s.board.StageCounts(),
		LastError:      s.board.LastError(),
	}
}
