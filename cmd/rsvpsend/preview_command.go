package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"rsvpsend/internal/dispatch"
	"rsvpsend/internal/invite"
	"rsvpsend/internal/logging"
	"rsvpsend/internal/message"
	"rsvpsend/internal/session"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var fileFlag string
	var showLinks bool
	var showMessage bool

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "List pending invites and the chat links a send would open",
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
			invites, err := invite.Load(path)
			if err != nil {
				return fmt.Errorf("load invites: %w", err)
			}
			eligible := invite.Pending(invites)

			tmpl, err := message.ParseTemplate(cfg.Message.Template)
			if err != nil {
				return fmt.Errorf("message template: %w", err)
			}

			var results []dispatch.Result
			driver := dispatch.New(session.NewPreview(nil), dispatch.Options{
				ReadyTimeout: cfg.ReadyTimeout(),
				Template:     tmpl,
				ProviderHost: cfg.Provider.Host,
				Logger:       logging.NewNop(),
				Observer: func(_ context.Context, result dispatch.Result) {
					results = append(results, result)
				},
			})
			summary, err := driver.Run(cmd.Context(), eligible)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %d invites, %d pending\n", path, len(invites), len(eligible))
			if len(results) == 0 {
				fmt.Fprintln(out, "No pending invites.")
				return nil
			}

			rows := make([][]string, 0, len(results))
			for _, r := range results {
				state := "ready"
				if r.Outcome != dispatch.OutcomeSent {
					state = "skip: no digits"
				}
				rows = append(rows, []string{
					strconv.Itoa(r.Index + 1),
					r.Invite.ID,
					r.Invite.Name,
					r.Invite.Phone,
					r.Digits,
					state,
				})
			}
			headers := []string{"#", "ID", "Name", "Phone", "Digits", "Result"}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
			fmt.Fprintln(out, renderTable(headers, rows, aligns, 40))
			fmt.Fprintf(out, "Would send: %d\nWould skip: %d\n", summary.Sent, summary.Failed)

			if showLinks {
				fmt.Fprintln(out)
				for _, r := range results {
					if r.Link == "" {
						continue
					}
					fmt.Fprintf(out, "%d. %s\n", r.Index+1, r.Link)
				}
			}
			if showMessage {
				first := results[0].Invite
				fmt.Fprintln(out)
				fmt.Fprintln(out, tmpl.Render(first.Name, first.InviteLink))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Recipient CSV (overrides paths.input_file)")
	cmd.Flags().BoolVar(&showLinks, "links", false, "Print the deep link for every pending invite")
	cmd.Flags().BoolVar(&showMessage, "message", false, "Print the rendered message for the first pending invite")
	return cmd
}
