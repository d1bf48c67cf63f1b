package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stockboard/internal/config"
)

func TestLoadDefaultsWithAbsentFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "stockboard")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if len(cfg.Board.Stages) != 8 {
		t.Fatalf("expected 8 default stages, got %d", len(cfg.Board.Stages))
	}
	if cfg.Board.Stages[0] != "Universe" || cfg.Board.Stages[7] != "Ocean" {
		t.Fatalf("unexpected default stage order: %v", cfg.Board.Stages)
	}
	if cfg.Board.ArchiveStage != "Ocean" {
		t.Fatalf("unexpected archive stage: %q", cfg.Board.ArchiveStage)
	}
	if cfg.Board.RestorationTarget != "Prospects" {
		t.Fatalf("unexpected restoration target: %q", cfg.Board.RestorationTarget)
	}
	if cfg.Board.StaleAfterDays != 30 {
		t.Fatalf("unexpected staleness threshold: %d", cfg.Board.StaleAfterDays)
	}
	if cfg.Board.DefaultActor != "Admin" {
		t.Fatalf("unexpected default actor: %q", cfg.Board.DefaultActor)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.SocketPath() != filepath.Join(wantData, "stockboard.sock") {
		t.Fatalf("unexpected socket path: %q", cfg.SocketPath())
	}
	if cfg.DatabasePath() != filepath.Join(wantData, "board.db") {
		t.Fatalf("unexpected database path: %q", cfg.DatabasePath())
	}
}

func TestLoadParsesFileAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		`[board]`,
		`stages = ["Sourcing", "Diligence", "Closed", "Shelf"]`,
		`archive_stage = "Shelf"`,
		`restoration_target = "Diligence"`,
		`stale_after_days = 14`,
		``,
		`[paths]`,
		`data_dir = "` + filepath.Join(dir, "data") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
		``,
		`[logging]`,
		`format = "json"`,
		`level = "debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected config at %q to exist, got %q exists=%v", path, resolved, exists)
	}
	if len(cfg.Board.Stages) != 4 || cfg.Board.Stages[3] != "Shelf" {
		t.Fatalf("unexpected stages: %v", cfg.Board.Stages)
	}
	if cfg.Board.ArchiveStage != "Shelf" || cfg.Board.RestorationTarget != "Diligence" {
		t.Fatalf("unexpected distinguished stages: %+v", cfg.Board)
	}
	if cfg.Board.StaleAfterDays != 14 {
		t.Fatalf("unexpected staleness threshold: %d", cfg.Board.StaleAfterDays)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		`[board]`,
		`stale_after_days = 14`,
		`default_actor = "File Actor"`,
		``,
		`[paths]`,
		`data_dir = "` + filepath.Join(dir, "data") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("STOCKBOARD_STALE_AFTER_DAYS", "7")
	t.Setenv("STOCKBOARD_DEFAULT_ACTOR", "Env Actor")

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Board.StaleAfterDays != 7 {
		t.Fatalf("expected env override for staleness, got %d", cfg.Board.StaleAfterDays)
	}
	if cfg.Board.DefaultActor != "Env Actor" {
		t.Fatalf("expected env override for actor, got %q", cfg.Board.DefaultActor)
	}
}

func TestValidateRejectsBadBoards(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name: "duplicate stage",
			mutate: func(c *config.Config) {
				c.Board.Stages = []string{"A", "B", "a"}
				c.Board.ArchiveStage = "B"
				c.Board.RestorationTarget = "A"
			},
			want: "duplicate stage name",
		},
		{
			name: "archive not in stages",
			mutate: func(c *config.Config) {
				c.Board.Stages = []string{"A", "B"}
				c.Board.ArchiveStage = "C"
				c.Board.RestorationTarget = "A"
			},
			want: "archive_stage",
		},
		{
			name: "restoration not in stages",
			mutate: func(c *config.Config) {
				c.Board.Stages = []string{"A", "B"}
				c.Board.ArchiveStage = "B"
				c.Board.RestorationTarget = "C"
			},
			want: "restoration_target",
		},
		{
			name: "archive equals restoration",
			mutate: func(c *config.Config) {
				c.Board.Stages = []string{"A", "B"}
				c.Board.ArchiveStage = "B"
				c.Board.RestorationTarget = "B"
			},
			want: "must differ",
		},
		{
			name: "bare ntfy topic",
			mutate: func(c *config.Config) {
				c.Notifications.NtfyTopic = "my-topic"
			},
			want: "ntfy_topic",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample config failed: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Board.ArchiveStage != "Ocean" {
		t.Fatalf("sample config drifted from defaults: %+v", cfg.Board)
	}
}
