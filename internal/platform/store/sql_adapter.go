package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"backoffice/internal/platform/store/pg"
)

// pgxQuerier is the surface pgxpool.Pool and pgx.Tx share
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxTx interface {
	pgxQuerier
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// tracedQuerier runs statements on db and reports each one to tracer
type tracedQuerier struct {
	db     pgxQuerier
	tracer pg.QueryTracer
	slow   time.Duration
}

func (q tracedQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := q.db.Exec(ctx, sql, args...)
	q.trace(ctx, sql, args, start, err)
	return ct, err
}

func (q tracedQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.db.Query(ctx, sql, args...)
	q.trace(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return pgxRows{rs}, nil
}

// QueryRow reports once Scan has run, the row is fetched lazily
func (q tracedQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return tracedRow{
		row:  q.db.QueryRow(ctx, sql, args...),
		done: func(err error) { q.trace(ctx, sql, args, start, err) },
	}
}

func (q tracedQuerier) trace(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if q.tracer == nil {
		return
	}
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
	}
	elapsed := time.Since(start)
	q.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: elapsed.Microseconds(),
		Err:       err,
		Slow:      q.slow > 0 && elapsed >= q.slow,
	})
}

// pgAdapter is the TxRunner over a pgx pool
type pgAdapter struct {
	tracedQuerier
	begin func(ctx context.Context) (pgxTx, error)
	ping  func(ctx context.Context) error
	close func()
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{
		tracedQuerier: tracedQuerier{db: p.Pool, tracer: p.Tracer, slow: time.Duration(p.SlowMs) * time.Millisecond},
		begin:         func(ctx context.Context) (pgxTx, error) { return p.Pool.Begin(ctx) },
		ping:          p.Pool.Ping,
		close:         p.Close,
	}
}

// Tx commits when fn returns nil and rolls back on error or panic
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
	}()

	inner := a.tracedQuerier
	inner.db = tx
	if err := fn(inner); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit(ctx)
}

func (a *pgAdapter) Ping(ctx context.Context) error { return a.ping(ctx) }

func (a *pgAdapter) Close() error {
	a.close()
	return nil
}

type tracedRow struct {
	row  pgx.Row
	done func(error)
}

func (r tracedRow) Scan(dst ...any) error {
	err := r.row.Scan(dst...)
	r.done(err)
	return err
}

type pgxRows struct{ pgx.Rows }

func (r pgxRows) Columns() []string {
	fds := r.FieldDescriptions()
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.Name
	}
	return out
}
