package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"stockboard/internal/ipc"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <stock-id>",
		Short: "Show a stock and its transition history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseStockID(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				described, err := client.StockDescribe(id)
				if err != nil {
					return err
				}
				logs, err := client.StockLogs(id)
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				stock := described.Stock
				fmt.Fprintf(stdout, "%s (%s)\n", stock.Ticker, stock.DisplayName)
				fmt.Fprintf(stdout, "  Stage:      %s\n", stageCell(stock.CurrentStage, stock.Stale))
				fmt.Fprintf(stdout, "  In stage:   %s\n", formatDays(stock.DaysInStage))
				fmt.Fprintf(stdout, "  Entered:    %s\n", formatWhen(stock.StageEnteredAt))
				fmt.Fprintf(stdout, "  Updated:    %s\n", formatWhen(stock.LastUpdatedAt))
				fmt.Fprintf(stdout, "  Forced in:  %s\n", yesNo(stock.Forced))
				fmt.Fprintln(stdout)

				printLogEntries(stdout, logs.Entries)
				return nil
			})
		},
	}
}

func newLogCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "log <stock-id>",
		Short: "Show the transition history for a stock id",
		Long:  "Show the transition history for a stock id. History survives removal, so removed stock ids work too.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseStockID(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				logs, err := client.StockLogs(id)
				if err != nil {
					return err
				}
				printLogEntries(cmd.OutOrStdout(), logs.Entries)
				return nil
			})
		},
	}
}

func printLogEntries(stdout io.Writer, entries []ipc.LogEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "No history recorded")
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		transition := fmt.Sprintf("%s -> %s", entry.PreviousStage, entry.NewStage)
		note := entry.Comment
		if entry.Forced && entry.ForcedRationale != "" {
			note = fmt.Sprintf("%s [forced: %s]", note, entry.ForcedRationale)
		}
		rows = append(rows, []string{
			strconv.FormatInt(entry.ID, 10),
			formatWhen(entry.Timestamp),
			transition,
			formatDays(entry.DaysInPreviousStage),
			entry.Actor,
			note,
		})
	}
	fmt.Fprintln(stdout, renderTable(
		[]string{"Log", "When", "Transition", "Prior Age", "Actor", "Note"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	))
}
