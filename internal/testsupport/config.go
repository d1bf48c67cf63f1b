package testsupport

import (
	"path/filepath"
	"testing"

	"stockboard/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Notifications.NtfyTopic = ""

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithStages overrides the stage list on the test config.
func WithStages(stages []string, archive, restore string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Board.Stages = append([]string(nil), stages...)
		cfg.Board.ArchiveStage = archive
		cfg.Board.RestorationTarget = restore
	}
}

// WithNtfyTopic sets the ntfy endpoint on the test config.
func WithNtfyTopic(topic string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Notifications.NtfyTopic = topic
	}
}

// WithSeedData enables sample data seeding on the test config.
func WithSeedData() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Board.SeedSampleData = true
	}
}
