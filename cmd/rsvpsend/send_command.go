package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"rsvpsend/internal/config"
	"rsvpsend/internal/dispatch"
	"rsvpsend/internal/invite"
	"rsvpsend/internal/ledger"
	"rsvpsend/internal/logging"
	"rsvpsend/internal/message"
	"rsvpsend/internal/notifications"
	"rsvpsend/internal/operator"
	"rsvpsend/internal/runlock"
	"rsvpsend/internal/session"
)

type sendOptions struct {
	file        string
	dryRun      bool
	yes         bool
	resume      bool
	pauseOnExit bool
}

func newSendCommand(ctx *commandContext) *cobra.Command {
	var opts sendOptions

	cmd := &cobra.Command{
		Use:   "send [file]",
		Short: "Send a reminder to every pending invite",
		Long: "Load the recipient CSV, select invites whose status is pending, and walk\n" +
			"through them one at a time. In assisted mode each chat link is shown and\n" +
			"the operator confirms when the message is ready and again once sent.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, ctx, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Recipient CSV (overrides paths.input_file)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Use the preview session; nothing is sent")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Skip operator checkpoints")
	cmd.Flags().BoolVar(&opts.resume, "resume", false, "Skip invites already sent by an earlier run")
	cmd.Flags().BoolVar(&opts.pauseOnExit, "pause-on-exit", false, "Wait for ENTER before exiting")
	return cmd
}

func runSend(cmd *cobra.Command, ctx *commandContext, args []string, opts sendOptions) (err error) {
	out := cmd.OutOrStdout()
	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}

	var confirmer operator.Confirmer = operator.AutoConfirmer{}
	if !opts.yes {
		confirmer = operator.NewLineConfirmer(cmd.InOrStdin(), out)
	}
	if opts.pauseOnExit {
		defer func() {
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				err = &shownError{err: err}
			}
			_ = confirmer.Confirm(context.Background(), "Press ENTER to close... ")
		}()
	}

	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger()
	if err != nil {
		return err
	}
	logger = logging.NewComponentLogger(logger, "send")
	notifier := notifications.NewService(cfg)

	path, err := ctx.inputPath(args, opts.file)
	if err != nil {
		return err
	}
	invites, err := invite.Load(path)
	if err != nil {
		notifyQuietly(logger, notifier.NotifyError(runCtx, err, "load"))
		return fmt.Errorf("load invites: %w", err)
	}
	eligible := invite.Pending(invites)
	fmt.Fprintf(out, "Loaded %d invites from %s (%d pending)\n", len(invites), path, len(eligible))

	mode := cfg.Session.Mode
	if opts.dryRun {
		mode = config.SessionPreview
	}

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil {
			logger.Warn("release run lock", logging.Error(releaseErr))
		}
	}()

	store, err := ledger.Open(runCtx, cfg.LedgerPath())
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer store.Close()

	if opts.resume {
		delivered, err := store.DeliveredInviteIDs(runCtx)
		if err != nil {
			return fmt.Errorf("read delivered invites: %w", err)
		}
		before := len(eligible)
		eligible = invite.ExcludeIDs(eligible, delivered)
		if skipped := before - len(eligible); skipped > 0 {
			fmt.Fprintf(out, "Resuming: %d invites already sent, %d remaining\n", skipped, len(eligible))
		}
	}

	if len(eligible) == 0 {
		fmt.Fprintln(out, "No pending invites; nothing to send.")
		for _, line := range renderSummaryLines(dispatch.Summary{}) {
			fmt.Fprintln(out, line)
		}
		return nil
	}

	tmpl, err := message.ParseTemplate(cfg.Message.Template)
	if err != nil {
		return fmt.Errorf("message template: %w", err)
	}

	var sess dispatch.Session
	switch mode {
	case config.SessionPreview:
		fmt.Fprintln(out, "Dry run: links are listed, nothing is sent.")
		sess = session.NewPreview(nil)
	default:
		fmt.Fprintf(out, "Open https://%s in your browser and sign in.\n", cfg.Provider.Host)
		if err := confirmer.Confirm(runCtx, "Press ENTER when the session is ready: "); err != nil {
			return fmt.Errorf("wait for operator: %w", err)
		}
		sess = session.NewAssisted(confirmer, out)
	}

	run, err := store.BeginRun(runCtx, path, mode, len(eligible))
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	logger = logger.With(logging.String(logging.FieldRunID, run.ID))
	logger.Info("run started",
		logging.String("input", path),
		logging.String("mode", mode),
		logging.Int("eligible", len(eligible)),
	)
	notifyQuietly(logger, notifier.NotifyRunStarted(runCtx, len(eligible), mode))

	colorize := shouldColorize(out)
	driverOpts := dispatch.Options{
		ReadyTimeout:   cfg.ReadyTimeout(),
		SettleDelay:    cfg.SettleDelay(),
		InterItemDelay: cfg.InterItemDelay(),
		Template:       tmpl,
		ProviderHost:   cfg.Provider.Host,
		MaxPerHour:     cfg.Dispatch.MaxPerHour,
		Logger:         logger,
		Observer: func(obsCtx context.Context, result dispatch.Result) {
			fmt.Fprintln(out, renderProgressLine(result, colorize))
			if mode == config.SessionPreview && result.Link != "" {
				fmt.Fprintf(out, "  %s\n", result.Link)
			}
			recordDelivery(obsCtx, store, logger, run.ID, result)
		},
	}
	if mode == config.SessionPreview {
		driverOpts.SettleDelay = 0
		driverOpts.InterItemDelay = 0
		driverOpts.MaxPerHour = 0
	}

	start := time.Now()
	summary, runErr := dispatch.New(sess, driverOpts).Run(runCtx, eligible)

	finishCtx := context.WithoutCancel(runCtx)
	if err := store.FinishRun(finishCtx, run.ID, summary.Sent, summary.Failed, runErr != nil); err != nil {
		logger.Warn("record run completion", logging.Error(err))
	}

	fmt.Fprintln(out)
	for _, line := range renderSummaryLines(summary) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "Run ID: %s\n", run.ID)

	if runErr != nil {
		notifyQuietly(logger, notifier.NotifyError(finishCtx, runErr, "send"))
		return fmt.Errorf("run stopped after %d of %d invites: %w", summary.Total(), len(eligible), runErr)
	}
	notifyQuietly(logger, notifier.NotifyRunCompleted(finishCtx, summary.Sent, summary.Failed, time.Since(start)))
	return nil
}

// recordDelivery persists one outcome. Ledger failures are logged and never
// change the outcome.
func recordDelivery(ctx context.Context, store *ledger.Store, logger *slog.Logger, runID string, result dispatch.Result) {
	delivery := ledger.Delivery{
		RunID:    runID,
		InviteID: result.Invite.ID,
		Name:     result.Invite.Name,
		Phone:    result.Invite.Phone,
		Digits:   result.Digits,
		Outcome:  string(result.Outcome),
	}
	if result.Err != nil {
		delivery.ErrorMessage = result.Err.Error()
	}
	if err := store.RecordDelivery(context.WithoutCancel(ctx), delivery); err != nil {
		logging.WarnWithContext(logger, "ledger write failed", "ledger_write",
			"outcome kept in memory only; check disk space", logging.String(logging.FieldInviteID, result.Invite.ID), logging.Error(err))
	}
}

func notifyQuietly(logger *slog.Logger, err error) {
	if err != nil {
		logger.Warn("notification failed", logging.Error(err))
	}
}
