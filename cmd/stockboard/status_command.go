package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"stockboard/internal/daemonctl"
	"stockboard/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon and board status",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)

			var status *ipc.StatusResponse
			var stages *ipc.StageListResponse
			err := ctx.withClient(func(client *ipc.Client) error {
				var err error
				status, err = client.Status()
				if err != nil {
					return err
				}
				stages, err = client.StageList()
				return err
			})
			if err != nil {
				for _, line := range renderSectionHeader("Daemon", colorize) {
					fmt.Fprintln(stdout, line)
				}
				fmt.Fprintln(stdout, renderStatusLine("Daemon", statusError, "not running", colorize))
				fmt.Fprintln(stdout, renderStatusLine("Socket", statusInfo, ctx.socketPath(), colorize))
				return nil
			}

			board := status.Status

			for _, line := range renderSectionHeader("Daemon", colorize) {
				fmt.Fprintln(stdout, line)
			}
			runningKind := statusError
			runningText := "stopped"
			if board.Running {
				runningKind = statusOK
				runningText = fmt.Sprintf("running (pid %d)", board.PID)
			}
			fmt.Fprintln(stdout, renderStatusLine("Daemon", runningKind, runningText, colorize))
			fmt.Fprintln(stdout, renderStatusLine("Database", statusInfo, board.DatabasePath, colorize))
			fmt.Fprintln(stdout, renderStatusLine("Lock file", statusInfo, board.LockFilePath, colorize))
			if board.LastError != "" {
				fmt.Fprintln(stdout, renderStatusLine("Last error", statusWarn, board.LastError, colorize))
			} else {
				fmt.Fprintln(stdout, renderStatusLine("Last error", statusOK, "none", colorize))
			}
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Board", colorize) {
				fmt.Fprintln(stdout, line)
			}
			fmt.Fprintln(stdout, renderStatusLine("Stocks", statusInfo, strconv.Itoa(board.StockCount), colorize))
			fmt.Fprintln(stdout, renderStatusLine("Log entries", statusInfo, strconv.Itoa(board.LogCount), colorize))
			staleKind := statusOK
			if board.StaleCount > 0 {
				staleKind = statusWarn
			}
			fmt.Fprintln(stdout, renderStatusLine("Stale", staleKind, fmt.Sprintf("%d (threshold %d days)", board.StaleCount, board.StaleAfterDays), colorize))
			fmt.Fprintln(stdout)

			for _, line := range renderSectionHeader("Stages", colorize) {
				fmt.Fprintln(stdout, line)
			}
			rows := make([][]string, 0, len(stages.Stages))
			for _, stage := range stages.Stages {
				rows = append(rows, []string{
					stage.Name,
					strconv.Itoa(stage.Count),
					strconv.Itoa(stage.StaleHere),
				})
			}
			fmt.Fprintln(stdout, renderTable(
				[]string{"Stage", "Stocks", "Stale"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
}

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the stockboard daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			result, err := daemonctl.Stop(ctx.socketPath(), 5*time.Second)
			if errors.Is(err, daemonctl.ErrDaemonNotRunning) {
				fmt.Fprintln(stdout, "Daemon is not running")
				return nil
			}
			if err != nil {
				return err
			}
			if result.Acknowledged {
				fmt.Fprintln(stdout, "Daemon stopped")
			} else {
				fmt.Fprintln(stdout, "Stop request sent")
			}
			return nil
		},
	}
}
