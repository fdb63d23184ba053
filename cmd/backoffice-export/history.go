package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"backoffice/internal/platform/config"
	"backoffice/internal/platform/logger"
	"backoffice/internal/platform/store"
	"backoffice/internal/services/api/reports/audit"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Count recorded exports per dataset and format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		chURL, _ := cmd.Flags().GetString("ch")
		if chURL == "" {
			return errors.New("history needs --ch or SERVICE_CLICKHOUSE_DBURL")
		}
		since, _ := cmd.Flags().GetDuration("since")

		ctx := cmd.Context()
		cfg := store.Config{AppName: "export", CH: store.CHConfig{Enabled: true, URL: chURL}}
		st, err := store.Open(ctx, cfg, store.WithLogger(*logger.Named("store")))
		if err != nil {
			return fmt.Errorf("open clickhouse: %w", err)
		}
		defer func() { _ = st.Close() }()

		tallies, err := audit.Tallies(ctx, st.CH, time.Now().Add(-since))
		if err != nil {
			return err
		}
		printTallies(cmd.OutOrStdout(), tallies)
		return nil
	},
}

func printTallies(w io.Writer, ts []audit.Tally) {
	if len(ts) == 0 {
		_, _ = fmt.Fprintln(w, "no exports recorded")
		return
	}
	for _, t := range ts {
		_, _ = fmt.Fprintf(w, "%-16s %-4s %6d ok %4d failed %8d rows\n", t.Dataset, t.Format, t.OK, t.Failed, t.Rows)
	}
}

func init() {
	cfg := config.New()
	historyCmd.Flags().String("ch", cfg.MayString("SERVICE_CLICKHOUSE_DBURL", ""), "clickhouse url holding export_events")
	historyCmd.Flags().Duration("since", 24*time.Hour, "how far back to count")
}
