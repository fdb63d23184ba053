package store

import (
	"context"

	"backoffice/internal/platform/logger"
	chx "backoffice/internal/platform/store/ch"
	"backoffice/internal/platform/store/pg"
)

func openPG(ctx context.Context, cfg PGConfig, log logger.Logger) (*pgAdapter, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:            cfg.URL,
		MaxConns:       cfg.MaxConns,
		SlowMs:         cfg.SlowQueryMs,
		ConnectRetries: cfg.ConnectRetries,
		PingTimeout:    cfg.PingTimeout,
	}, tracer)
	if err != nil {
		return nil, err
	}
	return newPGAdapter(p), nil
}

// openCH prepares the clickhouse pool, the first query dials
func openCH(ctx context.Context, role string, cfg CHConfig) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{URL: cfg.URL, Role: role})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
