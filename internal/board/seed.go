package board

import (
	"context"
	"fmt"

	"stockboard/internal/logging"
)

// seedStock is one built-in sample holding.
type seedStock struct {
	Ticker      string
	DisplayName string
	Stage       string
}

var sampleStocks = []seedStock{
	{Ticker: "AAPL", DisplayName: "Apple Inc.", Stage: "Universe"},
	{Ticker: "MSFT", DisplayName: "Microsoft Corporation", Stage: "Universe"},
	{Ticker: "GOOGL", DisplayName: "Alphabet Inc.", Stage: "Prospects"},
	{Ticker: "AMZN", DisplayName: "Amazon.com Inc.", Stage: "Prospects"},
	{Ticker: "TSLA", DisplayName: "Tesla Inc.", Stage: "Outreach"},
	{Ticker: "NVDA", DisplayName: "NVIDIA Corporation", Stage: "Discovery"},
	{Ticker: "JPM", DisplayName: "JPMorgan Chase & Co.", Stage: "Live Deal"},
	{Ticker: "V", DisplayName: "Visa Inc.", Stage: "Execute"},
	{Ticker: "NFLX", DisplayName: "Netflix Inc.", Stage: "Tracker"},
	{Ticker: "PLTR", DisplayName: "Palantir Technologies", Stage: "Universe"},
	{Ticker: "CRM", DisplayName: "Salesforce Inc.", Stage: "Outreach"},
	{Ticker: "UBER", DisplayName: "Uber Technologies", Stage: "Ocean"},
}

// Seed populates an empty board with the built-in sample holdings. Boards
// that already track stocks are left alone. Sample stages missing from the
// registry fall back to the first stage rather than failing the whole seed.
func (b *Board) Seed(ctx context.Context) (int, error) {
	b.mu.Lock()
	empty := len(b.stocks) == 0
	b.mu.Unlock()
	if !empty {
		return 0, nil
	}

	created := 0
	for _, sample := range sampleStocks {
		stage := sample.Stage
		if !b.registry.Exists(stage) {
			stage = b.registry.First()
		}
		if _, err := b.create(ctx, sample.Ticker, sample.DisplayName, stage, "Initial Seed Data"); err != nil {
			return created, fmt.Errorf("seed %s: %w", sample.Ticker, err)
		}
		created++
	}
	b.logger.Info("seeded sample data", logging.Int("stocks", created))
	return created, nil
}
