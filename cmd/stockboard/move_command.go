package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stockboard/internal/ipc"
)

func newMoveCommand(ctx *commandContext) *cobra.Command {
	var comment string
	var actor string
	var force bool
	var rationale string

	cmd := &cobra.Command{
		Use:   "move <stock-id> <target-stage>",
		Short: "Move a stock to another stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseStockID(args[0])
			if err != nil {
				return err
			}
			target := strings.TrimSpace(args[1])

			return ctx.withClient(func(client *ipc.Client) error {
				described, err := client.StockDescribe(id)
				if err != nil {
					return err
				}
				current := described.Stock.CurrentStage

				verdict, err := client.ValidateMove(current, target)
				if err != nil {
					return err
				}
				result := verdict.Result

				forced := false
				switch result.Outcome {
				case "rejected":
					return fmt.Errorf("cannot move %s from %s to %s: %s", described.Stock.Ticker, current, target, result.Reason)
				case "forceable":
					if !force {
						return fmt.Errorf("move from %s to %s is non-standard (%s); rerun with --force and --rationale", current, target, result.Reason)
					}
					if strings.TrimSpace(rationale) == "" {
						return fmt.Errorf("--force requires --rationale explaining the override")
					}
					forced = true
				}

				resp, err := client.StockMove(ipc.StockMoveRequest{
					ID:          id,
					TargetStage: target,
					Comment:     strings.TrimSpace(comment),
					Actor:       strings.TrimSpace(actor),
					Forced:      forced,
					Rationale:   strings.TrimSpace(rationale),
				})
				if err != nil {
					return err
				}

				stdout := cmd.OutOrStdout()
				stock := resp.Stock
				if forced {
					fmt.Fprintf(stdout, "Forced %s from %s to %s\n", stock.Ticker, current, stock.CurrentStage)
					fmt.Fprintf(stdout, "Rationale: %s\n", strings.TrimSpace(rationale))
				} else {
					fmt.Fprintf(stdout, "Moved %s from %s to %s\n", stock.Ticker, current, stock.CurrentStage)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&comment, "comment", "", "Comment recorded on the log entry")
	cmd.Flags().StringVar(&actor, "actor", "", "Actor recorded on the log entry (defaults to the configured actor)")
	cmd.Flags().BoolVar(&force, "force", false, "Apply a non-standard transition")
	cmd.Flags().StringVar(&rationale, "rationale", "", "Justification for a forced move")
	return cmd
}
