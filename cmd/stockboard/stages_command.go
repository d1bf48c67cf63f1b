package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"stockboard/internal/board"
	"stockboard/internal/ipc"
)

func newStagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stages",
		Short: "List the board stages in order",
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()

			// Prefer the daemon so per-stage counts are included; fall back
			// to the configured stage list when it is not running.
			var withCounts []ipc.StageInfo
			if err := ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.StageList()
				if err != nil {
					return err
				}
				withCounts = resp.Stages
				return nil
			}); err == nil {
				rows := make([][]string, 0, len(withCounts))
				for _, stage := range withCounts {
					rows = append(rows, []string{
						strconv.Itoa(stage.Position + 1),
						stage.Name,
						stageRole(stage.Archive, stage.Restore),
						strconv.Itoa(stage.Count),
						strconv.Itoa(stage.StaleHere),
					})
				}
				fmt.Fprintln(stdout, renderTable(
					[]string{"#", "Stage", "Role", "Stocks", "Stale"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight},
				))
				return nil
			}

			registry, err := ctx.registry()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(registry.StagesInOrder()))
			for _, stage := range registry.StagesInOrder() {
				rows = append(rows, []string{
					strconv.Itoa(stage.Position + 1),
					stage.Name,
					stageRole(stage.Name == registry.ArchiveStage(), stage.Name == registry.RestorationTarget()),
				})
			}
			fmt.Fprintln(stdout, renderTable(
				[]string{"#", "Stage", "Role"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func stageRole(archive, restore bool) string {
	roles := make([]string, 0, 2)
	if archive {
		roles = append(roles, "archive")
	}
	if restore {
		roles = append(roles, "restore")
	}
	return strings.Join(roles, ", ")
}

func newValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <current-stage> <target-stage>",
		Short: "Classify a transition without applying it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := ctx.registry()
			if err != nil {
				return err
			}
			decision := registry.Validate(args[0], args[1])

			stdout := cmd.OutOrStdout()
			fmt.Fprintf(stdout, "%s -> %s: %s\n", args[0], args[1], decision.Outcome)
			if decision.Reason != "" {
				fmt.Fprintf(stdout, "Reason: %s\n", decision.Reason)
			}
			if decision.Outcome == board.OutcomeForceable {
				fmt.Fprintln(stdout, "Apply with `stockboard move --force --rationale <text>`")
			}
			return nil
		},
	}
}
