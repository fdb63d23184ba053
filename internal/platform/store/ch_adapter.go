package store

import (
	"context"
	"errors"

	"backoffice/internal/platform/store/ch"
)

// chClient is what the adapter needs from *ch.CH
type chClient interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (ch.Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

var errNoCH = errors.New("store: clickhouse not open")

// chAdapter narrows ch.Rows to Rows, the rest passes through
type chAdapter struct{ chClient }

var (
	_ Clickhouse = chAdapter{}
	_ Pinger     = chAdapter{}
)

func newCHAdapter(c chClient) Clickhouse { return chAdapter{c} }

func (a chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if a.chClient == nil {
		return nil, errNoCH
	}
	r, err := a.chClient.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r}, nil
}

func (a chAdapter) Ping(ctx context.Context) error {
	if a.chClient == nil {
		return errNoCH
	}
	return a.chClient.Ping(ctx)
}

type chRows struct{ ch.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }
