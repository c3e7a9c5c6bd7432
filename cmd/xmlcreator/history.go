package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"xmlcreator/internal/descriptor"
	"xmlcreator/internal/ledger"
	"xmlcreator/internal/services"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCommand(cc *commandContext) *cobra.Command {
	var limit int
	var filename string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs from the run ledger",
		Long: "history lists recent runs recorded in the run ledger with the number of\n" +
			"failed uploads. With --file it lists every descriptor produced for that video.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg, err := cc.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.Settings.LedgerEnabled || cfg.Settings.LedgerPath == "" {
				return services.Wrap(services.ErrConfiguration, "history", "ledger", "", fmt.Errorf("run ledger is disabled"))
			}
			loc, err := descriptor.LoadLocation(cfg.Settings.Timezone)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "config", "timezone", "", err)
			}

			store, err := ledger.Open(ctx, cfg.Settings.LedgerPath)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "history", "open ledger", cfg.Settings.LedgerPath, err)
			}
			defer store.Close()

			var out string
			if filename != "" {
				out, err = renderDescriptorHistory(ctx, store, filename, loc)
			} else {
				out, err = renderRunHistory(ctx, store, limit, loc)
			}
			if err != nil {
				return services.Wrap(services.ErrNotFound, "history", "query ledger", "", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	cmd.Flags().StringVar(&filename, "file", "", "Video filename to list produced descriptors for")
	return cmd
}

func renderRunHistory(ctx context.Context, store *ledger.Store, limit int, loc *time.Location) (string, error) {
	runs, err := store.RecentRuns(ctx, limit)
	if err != nil {
		return "", err
	}
	if len(runs) == 0 {
		return "No runs recorded.", nil
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		failed, err := store.FailedDeliveries(ctx, run.ID)
		if err != nil {
			return "", err
		}
		rows = append(rows, []string{
			run.StartedAt.In(loc).Format(historyTimeLayout),
			run.Status,
			strconv.Itoa(run.Produced),
			strconv.Itoa(run.Delivered),
			strconv.Itoa(len(failed)),
			run.Message,
		})
	}
	return renderTable(
		[]string{"Started", "Status", "Produced", "Delivered", "Failed", "Message"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	), nil
}

func renderDescriptorHistory(ctx context.Context, store *ledger.Store, filename string, loc *time.Location) (string, error) {
	records, err := store.DescriptorsByUniqueID(ctx, descriptor.UniqueID(filename))
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return fmt.Sprintf("No descriptors recorded for %s.", filename), nil
	}
	rows := make([][]string, 0, len(records))
	for _, d := range records {
		rows = append(rows, []string{
			d.CreatedAt.In(loc).Format(historyTimeLayout),
			filepath.Base(d.Path),
			d.RunID,
		})
	}
	return renderTable([]string{"Created", "Descriptor", "Run"}, rows, nil), nil
}
