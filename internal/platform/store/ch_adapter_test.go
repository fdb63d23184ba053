package store

import (
	"context"
	"errors"
	"testing"

	"backoffice/internal/platform/store/ch"
)

type fakeCH struct {
	inserted [][]any
	execs    []string
	rows     *fakeCHRows
	pingErr  error
	closed   bool
}

func (f *fakeCH) Insert(_ context.Context, _ string, rows [][]any) error {
	f.inserted = append(f.inserted, rows...)
	return nil
}

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.execs = append(f.execs, sql)
	return nil
}

func (f *fakeCH) Query(context.Context, string, ...any) (ch.Rows, error) {
	if f.rows == nil {
		return nil, errors.New("table missing")
	}
	return f.rows, nil
}

func (f *fakeCH) Ping(context.Context) error { return f.pingErr }
func (f *fakeCH) Close() error               { f.closed = true; return nil }

type fakeCHRows struct{ closed bool }

func (f *fakeCHRows) Next() bool        { return false }
func (f *fakeCHRows) Scan(...any) error { return nil }
func (f *fakeCHRows) Err() error        { return nil }
func (f *fakeCHRows) Close() error      { f.closed = true; return nil }
func (f *fakeCHRows) Columns() []string { return []string{"dataset", "exports"} }

func TestCHAdapter_PassThrough(t *testing.T) {
	t.Parallel()

	f := &fakeCH{}
	c := newCHAdapter(f)
	ctx := context.Background()

	if err := c.Exec(ctx, "CREATE TABLE t (a UInt8) ENGINE = Memory"); err != nil || len(f.execs) != 1 {
		t.Fatalf("Exec = %v %v", err, f.execs)
	}
	if err := c.Insert(ctx, "export_events", [][]any{{"exp-1"}, {"exp-2"}}); err != nil || len(f.inserted) != 2 {
		t.Fatalf("Insert = %v %v", err, f.inserted)
	}
	if err := c.Close(); err != nil || !f.closed {
		t.Fatalf("Close = %v closed=%v", err, f.closed)
	}
}

func TestCHAdapter_Query(t *testing.T) {
	t.Parallel()

	qr := &fakeCHRows{}
	rows, err := newCHAdapter(&fakeCH{rows: qr}).Query(context.Background(), "SELECT dataset, count() FROM export_events GROUP BY dataset")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if cols := rows.Columns(); len(cols) != 2 || cols[1] != "exports" {
		t.Fatalf("Columns = %v", cols)
	}
	rows.Close()
	if !qr.closed {
		t.Fatalf("Close not passed on")
	}

	if _, err := newCHAdapter(&fakeCH{}).Query(context.Background(), "SELECT 1"); err == nil {
		t.Fatalf("expected query error")
	}
}

func TestCHAdapter_Ping(t *testing.T) {
	t.Parallel()

	down := errors.New("down")
	p := newCHAdapter(&fakeCH{pingErr: down}).(Pinger)
	if err := p.Ping(context.Background()); !errors.Is(err, down) {
		t.Fatalf("Ping = %v", err)
	}

	var empty chAdapter
	if err := empty.Ping(context.Background()); !errors.Is(err, errNoCH) {
		t.Fatalf("empty Ping = %v", err)
	}
	if _, err := empty.Query(context.Background(), "SELECT 1"); !errors.Is(err, errNoCH) {
		t.Fatalf("empty Query = %v", err)
	}
}
