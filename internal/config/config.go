package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Board contains the workflow definition for the single board instance.
type Board struct {
	Stages            []string `toml:"stages" env:"STOCKBOARD_STAGES" envSeparator:","`
	ArchiveStage      string   `toml:"archive_stage" env:"STOCKBOARD_ARCHIVE_STAGE"`
	RestorationTarget string   `toml:"restoration_target" env:"STOCKBOARD_RESTORATION_TARGET"`
	StaleAfterDays    int      `toml:"stale_after_days" env:"STOCKBOARD_STALE_AFTER_DAYS"`
	Actors            []string `toml:"actors"`
	DefaultActor      string   `toml:"default_actor" env:"STOCKBOARD_DEFAULT_ACTOR"`
	SeedSampleData    bool     `toml:"seed_sample_data"`
}

// Paths contains directory and socket configuration.
type Paths struct {
	DataDir string `toml:"data_dir" env:"STOCKBOARD_DATA_DIR"`
	LogDir  string `toml:"log_dir" env:"STOCKBOARD_LOG_DIR"`
	Socket  string `toml:"socket" env:"STOCKBOARD_SOCKET"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" env:"STOCKBOARD_LOG_FORMAT"`
	Level  string `toml:"level" env:"STOCKBOARD_LOG_LEVEL"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic" env:"STOCKBOARD_NTFY_TOPIC"`
	RequestTimeout int    `toml:"request_timeout"`
	Moves          bool   `toml:"moves"`
	Creations      bool   `toml:"creations"`
	Errors         bool   `toml:"errors"`
}

// Config encapsulates all configuration values for stockboard.
//
// Sections by subsystem:
//   - Board: stage order, distinguished stages, staleness threshold, actors
//   - Paths: data directory, log directory, daemon socket
//   - Logging: log format and level
//   - Notifications: ntfy push notification settings
type Config struct {
	Board         Board         `toml:"board"`
	Paths         Paths         `toml:"paths"`
	Logging       Logging       `toml:"logging"`
	Notifications Notifications `toml:"notifications"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/stockboard/config.toml")
}

// Load locates, parses, and validates a configuration file. Environment
// overrides are applied after the file is decoded. The returned config has
// all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, "", false, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/stockboard/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("stockboard.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for daemon operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SocketPath returns the daemon control socket location.
func (c *Config) SocketPath() string {
	if strings.TrimSpace(c.Paths.Socket) != "" {
		return c.Paths.Socket
	}
	return filepath.Join(c.Paths.DataDir, "stockboard.sock")
}

// DatabasePath returns the SQLite database location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "board.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
