package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"backoffice/internal/platform/store/migrate"
	reportsrepo "backoffice/internal/services/api/reports/repo"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the postgres schema and load the built in datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if pgURL == "" {
			return errors.New("migrate needs --pg or SERVICE_PGSQL_DBURL")
		}
		ctx := cmd.Context()
		if err := migrate.Up(ctx, pgURL); err != nil {
			return err
		}
		seed, _ := cmd.Flags().GetBool("seed")
		if !seed {
			return nil
		}

		st, err := openPG(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		s, err := reportsrepo.LoadSeed()
		if err != nil {
			return err
		}
		n, err := reportsrepo.SeedPG(ctx, st.PG, s)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d records\n", n)
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("seed", true, "load the built in datasets into empty tables")
}
