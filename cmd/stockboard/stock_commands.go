package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"stockboard/internal/ipc"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var match string
	var staleOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked stocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.StockList(ipc.StockListRequest{
					Match:     strings.TrimSpace(match),
					StaleOnly: staleOnly,
				})
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				if len(resp.Stocks) == 0 {
					fmt.Fprintln(stdout, "No stocks on the board")
					return nil
				}

				rows := make([][]string, 0, len(resp.Stocks))
				for _, stock := range resp.Stocks {
					rows = append(rows, []string{
						strconv.FormatInt(stock.ID, 10),
						stock.Ticker,
						stock.DisplayName,
						stageCell(stock.CurrentStage, stock.Stale),
						formatDays(stock.DaysInStage),
						formatWhen(stock.LastUpdatedAt),
					})
				}
				fmt.Fprintln(stdout, renderTable(
					[]string{"ID", "Ticker", "Name", "Stage", "In Stage", "Updated"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&match, "match", "", "Filter by ticker or name substring")
	cmd.Flags().BoolVar(&staleOnly, "stale", false, "Show only stale stocks")
	return cmd
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var initialStage string

	cmd := &cobra.Command{
		Use:   "add <ticker> <display-name>",
		Short: "Add a stock to the board",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.StockAdd(ipc.StockAddRequest{
					Ticker:       args[0],
					DisplayName:  strings.Join(args[1:], " "),
					InitialStage: strings.TrimSpace(initialStage),
				})
				if err != nil {
					return err
				}
				stock := resp.Stock
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) to %s as stock %d\n", stock.Ticker, stock.DisplayName, stock.CurrentStage, stock.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&initialStage, "stage", "", "Initial stage (defaults to the first stage)")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <stock-id>",
		Aliases: []string{"rm"},
		Short:   "Remove a stock from the board (audit trail is retained)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseStockID(args[0])
			if err != nil {
				return err
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.StockRemove(id)
				if err != nil {
					return err
				}
				stdout := cmd.OutOrStdout()
				if !resp.Removed {
					fmt.Fprintf(stdout, "Stock %d not found\n", id)
					return nil
				}
				fmt.Fprintf(stdout, "Removed stock %d; its history is retained in the log\n", id)
				return nil
			})
		},
	}
}

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Recompute stage ages for every stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.RefreshAges()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Refreshed ages; %d stock(s) changed\n", resp.Updated)
				return nil
			})
		},
	}
}
