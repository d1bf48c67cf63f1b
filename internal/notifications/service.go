package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stockboard/internal/board"
	"stockboard/internal/config"
)

const userAgent = "Stockboard-Go/0.1.0"

// Service defines the notification surface exposed to board components. It
// satisfies board.Notifier plus a test hook for the CLI.
type Service interface {
	StockCreated(ctx context.Context, stock *board.Stock) error
	StockMoved(ctx context.Context, stock *board.Stock, entry *board.LogEntry) error
	StockDeleted(ctx context.Context, stock *board.Stock) error
	CommandFailed(ctx context.Context, operation string, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &filteredService{
		inner: &ntfyService{
			endpoint: topic,
			client:   &http.Client{Timeout: timeout},
		},
		moves:     cfg.Notifications.Moves,
		creations: cfg.Notifications.Creations,
		errors:    cfg.Notifications.Errors,
	}
}

// filteredService drops event categories the config disables. Test
// notifications always go through.
type filteredService struct {
	inner     Service
	moves     bool
	creations bool
	errors    bool
}

func (f *filteredService) StockCreated(ctx context.Context, stock *board.Stock) error {
	if !f.creations {
		return nil
	}
	return f.inner.StockCreated(ctx, stock)
}

func (f *filteredService) StockMoved(ctx context.Context, stock *board.Stock, entry *board.LogEntry) error {
	if !f.moves {
		return nil
	}
	return f.inner.StockMoved(ctx, stock, entry)
}

func (f *filteredService) StockDeleted(ctx context.Context, stock *board.Stock) error {
	if !f.creations {
		return nil
	}
	return f.inner.StockDeleted(ctx, stock)
}

func (f *filteredService) CommandFailed(ctx context.Context, operation string, err error) error {
	if !f.errors {
		return nil
	}
	return f.inner.CommandFailed(ctx, operation, err)
}

func (f *filteredService) TestNotification(ctx context.Context) error {
	return f.inner.TestNotification(ctx)
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) StockCreated(ctx context.Context, stock *board.Stock) error {
	if stock == nil {
		return nil
	}
	data := payload{
		title:   "Stockboard - Stock Added",
		message: fmt.Sprintf("%s (%s) entered the board at %s", stock.Ticker, stock.DisplayName, stock.CurrentStage),
		tags:    []string{"stockboard", "stock", "added"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) StockMoved(ctx context.Context, stock *board.Stock, entry *board.LogEntry) error {
	if stock == nil || entry == nil {
		return nil
	}
	var data payload
	if entry.Forced {
		message := fmt.Sprintf("%s forced %s -> %s after %d day(s)",
			stock.Ticker, entry.PreviousStage, entry.NewStage, entry.DaysInPreviousStage)
		if rationale := strings.TrimSpace(entry.ForcedRationale); rationale != "" {
			message = fmt.Sprintf("%s\nRationale: %s", message, rationale)
		}
		data = payload{
			title:    "Stockboard - Forced Move",
			message:  message,
			tags:     []string{"stockboard", "move", "forced"},
			priority: "high",
		}
	} else {
		data = payload{
			title: "Stockboard - Stock Moved",
			message: fmt.Sprintf("%s moved %s -> %s after %d day(s)",
				stock.Ticker, entry.PreviousStage, entry.NewStage, entry.DaysInPreviousStage),
			tags: []string{"stockboard", "move", "completed"},
		}
	}
	return n.send(ctx, data)
}

func (n *ntfyService) StockDeleted(ctx context.Context, stock *board.Stock) error {
	if stock == nil {
		return nil
	}
	data := payload{
		title:   "Stockboard - Stock Removed",
		message: fmt.Sprintf("%s (%s) removed from the board; history retained", stock.Ticker, stock.DisplayName),
		tags:    []string{"stockboard", "stock", "removed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) CommandFailed(ctx context.Context, operation string, err error) error {
	var builder strings.Builder
	builder.WriteString("Command failed")
	if operation = strings.TrimSpace(operation); operation != "" {
		builder.WriteString(": ")
		builder.WriteString(operation)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Stockboard - Error",
		message:  builder.String(),
		tags:     []string{"stockboard", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Stockboard - Test",
		message:  "Notification system test",
		tags:     []string{"stockboard", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) StockCreated(context.Context, *board.Stock) error                  { return nil }
func (noopService) StockMoved(context.Context, *board.Stock, *board.LogEntry) error   { return nil }
func (noopService) StockDeleted(context.Context, *board.Stock) error                  { return nil }
func (noopService) CommandFailed(context.Context, string, error) error                { return nil }
func (noopService) TestNotification(context.Context) error                            { return nil }
