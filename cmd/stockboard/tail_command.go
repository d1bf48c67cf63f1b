package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"stockboard/internal/logs"
)

func newTailCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Show recent daemon log output",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logPath := filepath.Join(cfg.Paths.LogDir, "stockboard.log")

			stdout := cmd.OutOrStdout()
			result, err := logs.Tail(cmd.Context(), logPath, logs.TailOptions{Offset: -1, Limit: lines})
			if err != nil {
				return err
			}
			for _, line := range result.Lines {
				fmt.Fprintln(stdout, line)
			}
			if !follow {
				if len(result.Lines) == 0 {
					fmt.Fprintf(stdout, "No log output at %s\n", logPath)
				}
				return nil
			}

			offset := result.Offset
			for {
				result, err := logs.Tail(cmd.Context(), logPath, logs.TailOptions{Offset: offset, Wait: time.Second})
				if err != nil {
					if cmd.Context().Err() != nil {
						return nil
					}
					return err
				}
				for _, line := range result.Lines {
					fmt.Fprintln(stdout, line)
				}
				offset = result.Offset
			}
		},
	}

	cmd.Flags().IntVar(&lines, "lines", 40, "Number of trailing lines to show")
	cmd.Flags().BoolVar(&follow, "follow", false, "Keep streaming new log lines")
	return cmd
}
