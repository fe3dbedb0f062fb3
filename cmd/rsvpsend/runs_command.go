package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"rsvpsend/internal/ledger"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded send runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, ctx, func(store *ledger.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded yet.")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortID(run.ID),
						formatLocal(run.StartedAt),
						run.Mode,
						strconv.Itoa(run.Eligible),
						strconv.Itoa(run.Sent),
						strconv.Itoa(run.Failed),
						runState(run),
					})
				}
				headers := []string{"Run", "Started", "Mode", "Eligible", "Sent", "Failed", "State"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}
				fmt.Fprintln(out, renderTable(headers, rows, aligns, 0))
				return nil
			})
		},
	}
	runsCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")

	runsCmd.AddCommand(newRunsShowCommand(ctx))
	return runsCmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the deliveries recorded for a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd, ctx, func(store *ledger.Store) error {
				run, err := store.FindRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				deliveries, err := store.Deliveries(cmd.Context(), run.ID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("Run "+run.ID, colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, renderStatusLine("Input", statusInfo, run.InputPath, colorize))
				fmt.Fprintln(out, renderStatusLine("Mode", statusInfo, run.Mode, colorize))
				fmt.Fprintln(out, renderStatusLine("Started", statusInfo, formatLocal(run.StartedAt), colorize))
				fmt.Fprintln(out, renderStatusLine("Interrupted", runStateKind(run), yesNo(run.Interrupted), colorize))
				fmt.Fprintln(out, renderStatusLine("Sent", statusOK, strconv.Itoa(run.Sent), colorize))
				failedKind := statusOK
				if run.Failed > 0 {
					failedKind = statusWarn
				}
				fmt.Fprintln(out, renderStatusLine("Failed", failedKind, strconv.Itoa(run.Failed), colorize))

				if len(deliveries) == 0 {
					fmt.Fprintln(out, "No deliveries recorded.")
					return nil
				}
				rows := make([][]string, 0, len(deliveries))
				for i, d := range deliveries {
					rows = append(rows, []string{
						strconv.Itoa(i + 1),
						d.InviteID,
						d.Name,
						d.Phone,
						d.Outcome,
						d.ErrorMessage,
					})
				}
				headers := []string{"#", "Invite", "Name", "Phone", "Outcome", "Error"}
				aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
				fmt.Fprintln(out, renderTable(headers, rows, aligns, 48))
				return nil
			})
		},
	}
}

func withLedger(cmd *cobra.Command, ctx *commandContext, fn func(*ledger.Store) error) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := ledger.Open(cmd.Context(), cfg.LedgerPath())
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatLocal(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func runState(run ledger.Run) string {
	switch {
	case !run.Finished():
		return "incomplete"
	case run.Interrupted:
		return "interrupted"
	default:
		return "complete"
	}
}

func runStateKind(run ledger.Run) statusKind {
	if run.Interrupted || !run.Finished() {
		return statusWarn
	}
	return statusOK
}
