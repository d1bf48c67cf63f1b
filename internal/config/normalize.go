package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeBoard()
	c.normalizeLogging()
	c.normalizeNotifications()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	c.Paths.Socket = strings.TrimSpace(c.Paths.Socket)
	if c.Paths.Socket != "" {
		if c.Paths.Socket, err = expandPath(c.Paths.Socket); err != nil {
			return fmt.Errorf("paths.socket: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeBoard() {
	stages := make([]string, 0, len(c.Board.Stages))
	for _, stage := range c.Board.Stages {
		if trimmed := strings.TrimSpace(stage); trimmed != "" {
			stages = append(stages, trimmed)
		}
	}
	if len(stages) == 0 {
		stages = append(stages, defaultStages...)
	}
	c.Board.Stages = stages

	c.Board.ArchiveStage = strings.TrimSpace(c.Board.ArchiveStage)
	c.Board.RestorationTarget = strings.TrimSpace(c.Board.RestorationTarget)

	actors := make([]string, 0, len(c.Board.Actors))
	for _, actor := range c.Board.Actors {
		if trimmed := strings.TrimSpace(actor); trimmed != "" {
			actors = append(actors, trimmed)
		}
	}
	c.Board.Actors = actors

	c.Board.DefaultActor = strings.TrimSpace(c.Board.DefaultActor)
	if c.Board.DefaultActor == "" {
		c.Board.DefaultActor = defaultActor
	}
	if c.Board.StaleAfterDays <= 0 {
		c.Board.StaleAfterDays = defaultStaleAfterDays
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyTimeout
	}
}
