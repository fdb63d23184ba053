// Command backoffice-export writes dataset views as csv or pdf files
// into a local directory or an s3 bucket
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"backoffice/internal/platform/config"
	"backoffice/internal/platform/logger"
	"backoffice/internal/platform/store"
	"backoffice/internal/services/api/reports/audit"
	"backoffice/internal/services/api/reports/domain"
	reportsrepo "backoffice/internal/services/api/reports/repo"
	reportssvc "backoffice/internal/services/api/reports/service"
)

var (
	pgURL   string
	natsURL string
	subject string
	locale  string
)

var rootCmd = &cobra.Command{
	Use:           "backoffice-export",
	Short:         "Export back office datasets as csv or pdf",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cfg := config.New()
	rootCmd.PersistentFlags().StringVar(&pgURL, "pg", cfg.MayString("SERVICE_PGSQL_DBURL", ""), "postgres url, built in datasets when empty")
	rootCmd.PersistentFlags().StringVar(&natsURL, "nats", cfg.MayString("SERVICE_NATS_URL", ""), "nats url for export events")
	rootCmd.PersistentFlags().StringVar(&subject, "subject", cfg.MayString("SERVICE_NATS_SUBJECT", audit.DefaultSubject), "nats subject for export events")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", cfg.MayString("CORE_API_REPORTS_LOCALE", "es"), "collation locale for sorts")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(datasetsCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(historyCmd)
}

// env is what a command runs against
type env struct {
	svc   *reportssvc.Svc
	close func()
}

// open builds the reports service over postgres or the built in datasets
func open(ctx context.Context) (*env, error) {
	seed, err := reportsrepo.LoadSeed()
	if err != nil {
		return nil, err
	}
	closers := []func(){}
	e := &env{close: func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}}

	var repo reportsrepo.Repo = reportsrepo.NewMemory(seed)
	if pgURL != "" {
		st, err := openPG(ctx)
		if err != nil {
			return nil, err
		}
		closers = append(closers, func() { _ = st.Close() })
		repo = reportsrepo.NewPG().Bind(st.PG)
	}

	sinks := audit.Multi{audit.Log{}}
	if natsURL != "" {
		n, err := audit.NewNATS(natsURL, subject)
		if err != nil {
			e.close()
			return nil, err
		}
		closers = append(closers, func() { _ = n.Close() })
		sinks = append(sinks, n)
	}

	e.svc = reportssvc.New(repo, seed.Datasets, reportssvc.Options{
		Locale: reportssvc.ParseLocale(locale),
		Audit:  sinks,
	})
	return e, nil
}

// openPG connects to --pg, the remaining SERVICE_PGSQL_* knobs still apply
func openPG(ctx context.Context) (*store.Store, error) {
	cfg := store.ConfigFrom(config.New(), "export")
	cfg.PG.Enabled, cfg.PG.URL, cfg.PG.MaxConns = true, pgURL, 2
	cfg.CH, cfg.NATS = store.CHConfig{}, store.NATSConfig{}
	st, err := store.Open(ctx, cfg, store.WithLogger(*logger.Named("store")))
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return st, nil
}

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the datasets that can be exported",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer e.close()

		cat, err := e.svc.Catalog(cmd.Context())
		if err != nil {
			return err
		}
		printCatalog(cmd.OutOrStdout(), cat)
		return nil
	},
}

func printCatalog(w io.Writer, cat []domain.Dataset) {
	for _, ds := range cat {
		date := ds.DateField
		if date == "" {
			date = "-"
		}
		_, _ = fmt.Fprintf(w, "%-16s %-28s %6d  %s\n", ds.Name, ds.Title, ds.Rows, date)
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		logger.Get().Error().Err(err).Msg("export failed")
		os.Exit(1)
	}
}
