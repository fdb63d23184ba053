// Package repokit is the seam repositories use to reach the sql store without importing a driver
package repokit

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/platform/store"
)

type (
	// Queryer is the minimal read and write surface for SQL repos
	Queryer = store.RowQuerier
	// TxRunner can execute a function inside a transaction
	TxRunner = store.TxRunner
	// Rows are the result set of a query
	Rows = store.Rows
	// Row is a single row result from a query
	Row = store.Row
	// CommandTag is the result of a command that modifies data
	CommandTag = store.CommandTag
)

// Binder binds a domain repo to a Queryer, a pool or a tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BeginHook runs first inside a transaction, eg to set session settings
type BeginHook func(ctx context.Context, q Queryer) error

// WithTx runs fn in one transaction, hooks run before fn on the same tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error, hooks ...BeginHook) error {
	return tx.Tx(ctx, func(q Queryer) error {
		for _, hk := range hooks {
			if err := hk(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

// StatementTimeout caps every statement of the transaction
func StatementTimeout(d time.Duration) BeginHook {
	return func(ctx context.Context, q Queryer) error {
		_, err := q.Exec(ctx, fmt.Sprintf("SET LOCAL statement_timeout = %d", d.Milliseconds()))
		return err
	}
}
