package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"xmlcreator/internal/config"
	"xmlcreator/internal/delivery"
	"xmlcreator/internal/descriptor"
	"xmlcreator/internal/ledger"
	"xmlcreator/internal/logging"
	"xmlcreator/internal/notifications"
	"xmlcreator/internal/pipeline"
	"xmlcreator/internal/preflight"
	"xmlcreator/internal/services"
	"xmlcreator/internal/sheet"
)

func runOnce(cmd *cobra.Command, cc *commandContext) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := cc.ensureLogger()
	if err != nil {
		return err
	}
	loc, err := descriptor.LoadLocation(cfg.Settings.Timezone)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, "config", "timezone", "", err)
	}

	if err := preflight.Error(preflight.RunAll(cfg)); err != nil {
		return services.Wrap(services.ErrConfiguration, "preflight", "", "", err)
	}

	p, closeFn, err := buildPipeline(ctx, cc, cfg, loc, logger)
	if err != nil {
		return err
	}
	defer closeFn()

	summary, runErr := p.Run(ctx)
	colorize := shouldColorize(out)
	if len(summary.Produced) > 0 {
		fmt.Fprintln(out, renderSummaryTable(summary, runErr))
	}
	if runErr != nil {
		logging.ErrorWithContext(logger, "run failed", "run_failed",
			logging.String(logging.FieldRunID, summary.RunID),
			logging.String("error_kind", services.Kind(runErr)),
			logging.Error(runErr))
		return runErr
	}
	printStatus(out, time.Now().In(loc), summary.Status, statusKindFor(summary), colorize)
	return nil
}

func buildPipeline(ctx context.Context, cc *commandContext, cfg *config.Config, loc *time.Location, logger *slog.Logger) (*pipeline.Pipeline, func(), error) {
	src, err := sheet.Open(cfg.Spreadsheet.Name, cfg.Worksheet.Name)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrConfiguration, "config", "open spreadsheet", cfg.Spreadsheet.Name, err)
	}
	registry, err := config.LoadRights(cfg.Settings.RightsFile)
	if err != nil {
		return nil, nil, services.Wrap(services.ErrConfiguration, "config", "load rights", "", err)
	}

	opts := pipeline.Options{
		Source:   src,
		Bindings: cfg.Bindings(),
		Registry: registry,
		Builder:  descriptor.NewBuilder(cfg.Settings.OutputDir, loc),
		Opener: delivery.OpenerFunc(func(ctx context.Context) (delivery.Uploader, error) {
			settings, err := cc.deliverySettings()
			if err != nil {
				return nil, err
			}
			return delivery.NewFTPOpener(settings, logger).Open(ctx)
		}),
		Notifier: notifications.NewService(cfg),
		Logger:   logger,
	}

	closeFn := func() {}
	if cfg.Settings.LedgerEnabled && cfg.Settings.LedgerPath != "" {
		store, err := ledger.Open(ctx, cfg.Settings.LedgerPath)
		if err != nil {
			logging.WarnWithContext(logger, "run ledger unavailable", "ledger_open_failed",
				logging.String(logging.FieldPath, cfg.Settings.LedgerPath),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "set ledger_enabled: false or remove the ledger file"))
		} else {
			opts.Ledger = store
			closeFn = func() { _ = store.Close() }
		}
	}

	p, err := pipeline.New(opts)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return p, closeFn, nil
}

func statusKindFor(summary pipeline.Summary) statusKind {
	switch {
	case len(summary.Produced) > 0:
		return statusOK
	case summary.Rejected > 0:
		return statusWarn
	default:
		return statusInfo
	}
}

func printStatus(w io.Writer, now time.Time, message string, kind statusKind, colorize bool) {
	fmt.Fprintln(w, renderStatusLine(now, kind, message, colorize))
}
