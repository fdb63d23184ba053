// Package store opens the optional backends the back office can run on
// postgres holds datasets and sessions, clickhouse receives the export audit
package store

import (
	"context"
	"errors"

	"backoffice/internal/platform/logger"
)

// Store holds whichever backends were enabled, the zero value runs everything in memory
type Store struct {
	Log logger.Logger

	// PG is nil when postgres is off
	PG TxRunner
	// CH is nil when clickhouse is off
	CH Clickhouse
	// NATS is handed to publishers, Open never dials it
	NATS NATSConfig
}

type (
	// Row is a single row result
	Row interface {
		Scan(dest ...any) error
	}

	// Rows is a result set
	Rows interface {
		Next() bool
		Scan(dest ...any) error
		Err() error
		Close()
		Columns() []string
	}

	// CommandTag reports what a statement changed
	CommandTag interface {
		String() string
		RowsAffected() int64
	}

	// RowQuerier is the sql surface repos see, a pool or a tx
	RowQuerier interface {
		Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
		Query(ctx context.Context, sql string, args ...any) (Rows, error)
		QueryRow(ctx context.Context, sql string, args ...any) Row
	}

	// TxRunner runs fn inside one transaction
	TxRunner interface {
		RowQuerier
		Tx(ctx context.Context, fn func(q RowQuerier) error) error
	}

	// Clickhouse takes batched inserts, DDL and ad hoc queries
	Clickhouse interface {
		Insert(ctx context.Context, table string, rows [][]any) error
		Exec(ctx context.Context, sql string, args ...any) error
		Query(ctx context.Context, sql string, args ...any) (Rows, error)
		Close() error
	}

	// Pinger reports reachability
	Pinger interface {
		Ping(ctx context.Context) error
	}
)

// Option configures Open
type Option func(*Store)

// WithLogger sets the logger the sql tracer writes to
func WithLogger(l logger.Logger) Option { return func(s *Store) { s.Log = l } }

// Open connects every backend cfg enables, postgres blocks until it answers
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{Log: logger.Named("store").With().Logger()}
	for _, o := range opts {
		o(s)
	}

	if cfg.PG.Enabled {
		db, err := openPG(ctx, cfg.PG, s.Log)
		if err != nil {
			return nil, err
		}
		s.PG = db
	}
	if cfg.CH.Enabled {
		c, err := openCH(ctx, cfg.AppName, cfg.CH)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.CH = c
	}
	if cfg.NATS.Enabled && cfg.NATS.URL != "" {
		s.NATS = cfg.NATS
	}
	return s, nil
}

// Health is the outcome of pinging one backend
type Health struct {
	Name string
	Err  error
}

// Ping checks postgres and clickhouse, disabled backends are left out
func (s *Store) Ping(ctx context.Context) []Health {
	var out []Health
	if s == nil {
		return out
	}
	for _, b := range []struct {
		name string
		seam any
	}{{"pg", s.PG}, {"ch", s.CH}} {
		if b.seam == nil {
			continue
		}
		p, ok := b.seam.(Pinger)
		if !ok {
			continue
		}
		out = append(out, Health{Name: b.name, Err: p.Ping(ctx)})
	}
	return out
}

// Close releases every open backend
func (s *Store) Close() error {
	var errs []error
	if s.CH != nil {
		errs = append(errs, s.CH.Close())
	}
	if c, ok := s.PG.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
