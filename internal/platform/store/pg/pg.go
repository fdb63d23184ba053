// Package pg opens the postgres pool behind the store sql adapter
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool and the boot ping
type Config struct {
	URL      string
	MaxConns int32
	SlowMs   int

	// ConnectRetries bounds the boot ping, 0 means 6
	ConnectRetries int
	// PingTimeout caps each ping, 0 means 3s
	PingTimeout time.Duration
}

// PG is a ready pool plus the tracer queries report to
type PG struct {
	Pool   *pgxpool.Pool
	Tracer QueryTracer
	SlowMs int
}

// seams for tests
var (
	newPool   = pgxpool.NewWithConfig
	pingPool  = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
	closePool = func(p *pgxpool.Pool) { p.Close() }
	sleep     = func(ctx context.Context, d time.Duration) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			return nil
		}
	}
)

const (
	backoffStart = 200 * time.Millisecond
	backoffMax   = 5 * time.Second
)

// Open builds the pool and blocks until the server answers a ping
// a database that never comes up is an error after ConnectRetries pings
func Open(ctx context.Context, cfg Config, tracer QueryTracer) (*PG, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pool, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("pg: pool: %w", err)
	}

	retries := cfg.ConnectRetries
	if retries <= 0 {
		retries = 6
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	var last error
	wait := backoffStart
	for attempt := 1; attempt <= retries; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = pingPool(pctx, pool)
		cancel()
		if last == nil {
			return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
		}
		if attempt == retries {
			break
		}
		if err := sleep(ctx, wait); err != nil {
			closePool(pool)
			return nil, err
		}
		wait = min(wait*2, backoffMax)
	}
	closePool(pool)
	return nil, fmt.Errorf("pg: no answer after %d attempts: %w", retries, last)
}

// Close releases the pool, safe on nil
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
