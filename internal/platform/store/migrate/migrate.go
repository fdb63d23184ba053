// Package migrate applies the embedded postgres schema
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // registers the postgres database/sql driver

	"backoffice/internal/platform/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Up applies every pending migration against the database at url
// a database already at the latest version is not an error
func Up(ctx context.Context, url string) error {
	if url == "" {
		return errors.New("migrate: empty database url")
	}
	db, err := sql.Open("postgres", url)
	if err != nil {
		return fmt.Errorf("migrate: open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("migrate: ping database: %w", err)
	}
	return run(ctx, db)
}

func run(ctx context.Context, db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrate: source: %w", err)
	}
	drv, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migrate: db driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", drv)
	if err != nil {
		return fmt.Errorf("migrate: new: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate: up: %w", err)
	}
	v, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migrate: version: %w", err)
	}
	logger.C(ctx).Info().Uint("version", v).Bool("dirty", dirty).Msg("schema migrated")
	return nil
}

// Files lists the embedded migration file names in apply order
func Files() []string {
	var out []string
	_ = fs.WalkDir(migrationsFS, "migrations", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if strings.HasSuffix(p, ".sql") {
			out = append(out, strings.TrimPrefix(p, "migrations/"))
		}
		return nil
	})
	sort.Strings(out)
	return out
}
