package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stockboard/internal/daemonctl"
)

func newStartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the stockboard daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonExecutable()
			if err != nil {
				return err
			}

			result, err := daemonctl.EnsureStarted(
				ctx.socketPath(),
				exe,
				daemonLaunchOptions(ctx),
				10*time.Second,
			)
			if err != nil {
				return err
			}

			switch {
			case result.AlreadyRunning:
				fmt.Fprintln(stdout, "Daemon already running")
			case result.PID > 0:
				fmt.Fprintf(stdout, "Daemon started (pid %d)\n", result.PID)
			default:
				fmt.Fprintln(stdout, "Daemon started")
			}
			return nil
		},
	}
}

func newRestartCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart the stockboard daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			exe, err := daemonExecutable()
			if err != nil {
				return err
			}

			result, wasRunning, err := daemonctl.Restart(
				ctx.socketPath(),
				exe,
				daemonLaunchOptions(ctx),
				5*time.Second,
				10*time.Second,
			)
			if err != nil {
				return err
			}

			if wasRunning {
				fmt.Fprintln(stdout, "Daemon stopped")
			}
			if result.PID > 0 {
				fmt.Fprintf(stdout, "Daemon started (pid %d)\n", result.PID)
			} else {
				fmt.Fprintln(stdout, "Daemon started")
			}
			return nil
		},
	}
}

// daemonExecutable resolves the stockboardd binary, preferring one installed
// alongside the CLI.
func daemonExecutable() (string, error) {
	if exe, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(exe), "stockboardd")
		if info, statErr := os.Stat(sibling); statErr == nil && !info.IsDir() {
			return sibling, nil
		}
	}
	path, err := exec.LookPath("stockboardd")
	if err != nil {
		return "", fmt.Errorf("locate stockboardd: %w", err)
	}
	return path, nil
}

func daemonLaunchOptions(ctx *commandContext) daemonctl.LaunchOptions {
	opts := daemonctl.LaunchOptions{}
	if ctx.socketFlag != nil {
		if socket := strings.TrimSpace(*ctx.socketFlag); socket != "" {
			opts.SocketPath = socket
		}
	}
	if ctx.configFlag != nil {
		if config := strings.TrimSpace(*ctx.configFlag); config != "" {
			opts.ConfigPath = config
		}
	}
	return opts
}
