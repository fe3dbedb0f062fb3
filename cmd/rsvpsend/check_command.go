package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"rsvpsend/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var fileFlag string

	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Verify directories, the recipient file, and notifications before sending",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path, err := ctx.inputPath(args, fileFlag)
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg, path)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			if preflight.Failed(results) {
				return errors.New("preflight checks failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Recipient CSV (overrides paths.input_file)")
	return cmd
}
