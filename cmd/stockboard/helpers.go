package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// apiTimeFormat matches the timestamp layout the daemon emits in DTOs.
const apiTimeFormat = "2006-01-02T15:04:05.000Z07:00"

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func parseStockID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid stock id %q", arg)
	}
	return id, nil
}

// formatDays renders a stage age for table cells.
func formatDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// formatWhen renders an API timestamp as a relative time, falling back to the
// raw value when it does not parse.
func formatWhen(raw string) string {
	if raw == "" {
		return ""
	}
	ts, err := time.Parse(apiTimeFormat, raw)
	if err != nil {
		return raw
	}
	return humanize.Time(ts)
}

// stageCell appends a staleness marker to a stage cell.
func stageCell(stage string, stale bool) string {
	if stale {
		return stage + " (stale)"
	}
	return stage
}
