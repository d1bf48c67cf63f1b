package main

import (
	"path/filepath"

	"stockboard/internal/config"
)

func buildSocketPath(cfg *config.Config) string {
	if cfg == nil {
		return filepath.Join("", "stockboard.sock")
	}
	return cfg.SocketPath()
}
