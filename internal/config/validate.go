package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBoard(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateBoard() error {
	if len(c.Board.Stages) < 2 {
		return errors.New("board.stages must list at least two stages")
	}

	seen := make(map[string]string, len(c.Board.Stages))
	for _, stage := range c.Board.Stages {
		key := strings.ToLower(stage)
		if prior, ok := seen[key]; ok {
			return fmt.Errorf("board.stages contains duplicate stage name %q (conflicts with %q)", stage, prior)
		}
		seen[key] = stage
	}

	if c.Board.ArchiveStage == "" {
		return errors.New("board.archive_stage must be set")
	}
	if !c.hasStage(c.Board.ArchiveStage) {
		return fmt.Errorf("board.archive_stage %q is not in board.stages", c.Board.ArchiveStage)
	}
	if c.Board.RestorationTarget == "" {
		return errors.New("board.restoration_target must be set")
	}
	if !c.hasStage(c.Board.RestorationTarget) {
		return fmt.Errorf("board.restoration_target %q is not in board.stages", c.Board.RestorationTarget)
	}
	if c.Board.ArchiveStage == c.Board.RestorationTarget {
		return errors.New("board.archive_stage and board.restoration_target must differ")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if topic := c.Notifications.NtfyTopic; topic != "" {
		if !strings.HasPrefix(topic, "http://") && !strings.HasPrefix(topic, "https://") {
			return fmt.Errorf("notifications.ntfy_topic must be a full URL, got %q", topic)
		}
	}
	return nil
}

func (c *Config) hasStage(name string) bool {
	for _, stage := range c.Board.Stages {
		if stage == name {
			return true
		}
	}
	return false
}
