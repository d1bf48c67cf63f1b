// Package daemonctl orchestrates the stockboardd process from the CLI:
// launching it detached, waiting for its socket, and stopping it.
package daemonctl

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"stockboard/internal/ipc"
)

// ErrDaemonNotRunning reports that no daemon answered on the socket.
var ErrDaemonNotRunning = errors.New("daemon is not running")

// LaunchOptions controls daemon process launch behavior.
type LaunchOptions struct {
	SocketPath string
	ConfigPath string
}

// StartResult captures start orchestration state.
type StartResult struct {
	Launched       bool
	AlreadyRunning bool
	PID            int
}

// StopResult captures stop orchestration state.
type StopResult struct {
	Acknowledged bool
}

// Launch starts a detached stockboardd process.
func Launch(executablePath string, opts LaunchOptions) error {
	if strings.TrimSpace(executablePath) == "" {
		return fmt.Errorf("resolve executable: executable path is empty")
	}

	args := make([]string, 0, 4)
	if socket := strings.TrimSpace(opts.SocketPath); socket != "" {
		args = append(args, "--socket", socket)
	}
	if cfg := strings.TrimSpace(opts.ConfigPath); cfg != "" {
		args = append(args, "--config", cfg)
	}

	proc := exec.Command(executablePath, args...)
	if err := proc.Start(); err != nil {
		return fmt.Errorf("launch daemon: %w", err)
	}
	return proc.Process.Release()
}

// WaitForClient waits for IPC socket availability and returns a connected client.
func WaitForClient(socketPath string, timeout time.Duration) (*ipc.Client, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		client, err := ipc.Dial(socketPath)
		if err == nil {
			return client, nil
		}
		lastErr = err
		time.Sleep(200 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timeout waiting for daemon")
	}
	return nil, fmt.Errorf("daemon failed to start: %w", lastErr)
}

// EnsureStarted launches the daemon unless one already answers on the socket.
func EnsureStarted(socketPath, executablePath string, opts LaunchOptions, waitTimeout time.Duration) (StartResult, error) {
	client, err := ipc.Dial(socketPath)
	if err == nil {
		defer client.Close()
		result := StartResult{AlreadyRunning: true}
		if status, statusErr := client.Status(); statusErr == nil {
			result.PID = status.Status.PID
		}
		return result, nil
	}

	if launchErr := Launch(executablePath, opts); launchErr != nil {
		return StartResult{}, launchErr
	}
	client, err = WaitForClient(socketPath, waitTimeout)
	if err != nil {
		return StartResult{}, err
	}
	defer client.Close()

	result := StartResult{Launched: true}
	if status, statusErr := client.Status(); statusErr == nil {
		result.PID = status.Status.PID
	}
	return result, nil
}

// Stop asks a running daemon to shut down and waits for the socket to vanish.
func Stop(socketPath string, timeout time.Duration) (StopResult, error) {
	client, err := ipc.Dial(socketPath)
	if err != nil {
		return StopResult{}, ErrDaemonNotRunning
	}

	resp, stopErr := client.Stop()
	_ = client.Close()
	if stopErr != nil {
		return StopResult{}, fmt.Errorf("stop daemon: %w", stopErr)
	}

	result := StopResult{Acknowledged: resp != nil && resp.Stopped}
	if err := waitForShutdown(socketPath, timeout); err != nil {
		return result, err
	}
	return result, nil
}

// Restart stops any running daemon and starts a fresh one.
func Restart(socketPath, executablePath string, opts LaunchOptions, stopTimeout, startTimeout time.Duration) (StartResult, bool, error) {
	wasRunning := true
	if _, err := Stop(socketPath, stopTimeout); err != nil {
		if !errors.Is(err, ErrDaemonNotRunning) {
			return StartResult{}, false, err
		}
		wasRunning = false
	}

	result, err := EnsureStarted(socketPath, executablePath, opts, startTimeout)
	return result, wasRunning, err
}

func waitForShutdown(socketPath string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		client, err := ipc.Dial(socketPath)
		if err != nil {
			return nil
		}
		status, statusErr := client.Status()
		_ = client.Close()
		if statusErr != nil {
			return nil
		}
		if !status.Status.Running {
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	if _, err := os.Stat(socketPath); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("daemon did not stop within %s", timeout)
}
