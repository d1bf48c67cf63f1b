package ipc

import "stockboard/internal/api"

func apiFilter(req StockListRequest) api.StockFilter {
	return api.StockFilter{Match: req.Match, StaleOnly: req.StaleOnly}
}

func apiCreate(req StockAddRequest) api.CreateStockRequest {
	return api.CreateStockRequest{
		Ticker:       req.Ticker,
		DisplayName:  req.DisplayName,
		InitialStage: req.InitialStage,
	}
}

func apiMove(req StockMoveRequest) api.MoveStockRequest {
	return api.MoveStockRequest{
		StockID:     req.ID,
		TargetStage: req.TargetStage,
		Comment:     req.Comment,
		Actor:       req.Actor,
		Forced:      req.Forced,
		Rationale:   req.Rationale,
	}
}
