// Package repo provides dataset storage for reports
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"backoffice/internal/core/tableview"
	"backoffice/internal/modkit/repokit"
	perr "backoffice/internal/platform/errors"
	"backoffice/internal/services/api/reports/domain"
)

// IDField is the record key used as the row identity
const IDField = "id"

// Repo defines the dataset storage contract
type Repo interface {
	Records(ctx context.Context, dataset string) ([]tableview.Record, error)
	Append(ctx context.Context, dataset string, rec tableview.Record) error
	Get(ctx context.Context, dataset, id string) (tableview.Record, error)
	// Update replaces the stored record, it keeps its position
	Update(ctx context.Context, dataset, id string, rec tableview.Record) error
	// Delete removes the record and its line items
	Delete(ctx context.Context, dataset, id string) error
	// Lines returns the line items in order, empty for a record without lines or no record at all
	Lines(ctx context.Context, dataset, id string) ([]domain.LineItem, error)
}

// RecordID returns the identity of rec, empty when it has none
func RecordID(rec tableview.Record) string {
	v, ok := rec.Get(IDField)
	if !ok || v.IsNull() {
		return ""
	}
	return v.String()
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Records(ctx context.Context, dataset string) ([]tableview.Record, error) {
	const sql = `
select payload
from dataset_records
where dataset = $1
order by position
`
	rows, err := r.q.Query(ctx, sql, dataset)
	if err != nil {
		return nil, perr.FromPostgresf(err, "list %s", dataset)
	}
	defer rows.Close()

	out := []tableview.Record{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, perr.FromPostgresf(err, "scan %s", dataset)
		}
		var rec tableview.Record
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s payload", dataset)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgresf(err, "list %s", dataset)
	}
	return out, nil
}

func (r *queries) Append(ctx context.Context, dataset string, rec tableview.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "encode %s record", dataset)
	}
	const sql = `insert into dataset_records (dataset, record_id, payload) values ($1, $2, $3::jsonb)`
	if _, err := r.q.Exec(ctx, sql, dataset, RecordID(rec), payload); err != nil {
		if perr.IsDuplicateKey(err) {
			return perr.DuplicateKeyf("%s: record %q already exists", dataset, RecordID(rec))
		}
		return perr.FromPostgresf(err, "append %s", dataset)
	}
	return nil
}

func (r *queries) Get(ctx context.Context, dataset, id string) (tableview.Record, error) {
	const sql = `select payload from dataset_records where dataset = $1 and record_id = $2`
	var payload []byte
	if err := r.q.QueryRow(ctx, sql, dataset, id).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tableview.Record{}, notFound(dataset, id)
		}
		return tableview.Record{}, perr.FromPostgresf(err, "get %s %s", dataset, id)
	}
	var rec tableview.Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return tableview.Record{}, perr.Wrapf(err, perr.ErrorCodeJSON, "decode %s payload", dataset)
	}
	return rec, nil
}

func (r *queries) Update(ctx context.Context, dataset, id string, rec tableview.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "encode %s record", dataset)
	}
	const sql = `update dataset_records set payload = $3::jsonb where dataset = $1 and record_id = $2`
	tag, err := r.q.Exec(ctx, sql, dataset, id, payload)
	if err != nil {
		return perr.FromPostgresf(err, "update %s %s", dataset, id)
	}
	if tag.RowsAffected() == 0 {
		return notFound(dataset, id)
	}
	return nil
}

// Delete relies on the record_lines foreign key to cascade
func (r *queries) Delete(ctx context.Context, dataset, id string) error {
	tag, err := r.q.Exec(ctx, `delete from dataset_records where dataset = $1 and record_id = $2`, dataset, id)
	if err != nil {
		return perr.FromPostgresf(err, "delete %s %s", dataset, id)
	}
	if tag.RowsAffected() == 0 {
		return notFound(dataset, id)
	}
	return nil
}

func (r *queries) Lines(ctx context.Context, dataset, id string) ([]domain.LineItem, error) {
	const sql = `
select line_no, producto, cantidad::text, unidad, precio_unitario::text
from record_lines
where dataset = $1 and record_id = $2
order by line_no
`
	rows, err := r.q.Query(ctx, sql, dataset, id)
	if err != nil {
		return nil, perr.FromPostgresf(err, "lines %s %s", dataset, id)
	}
	defer rows.Close()

	out := []domain.LineItem{}
	for rows.Next() {
		var (
			line             int
			producto, unidad string
			qty, price       string
		)
		if err := rows.Scan(&line, &producto, &qty, &unidad, &price); err != nil {
			return nil, perr.FromPostgresf(err, "scan lines %s %s", dataset, id)
		}
		cantidad, err := decimal.NewFromString(qty)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "%s %s line %d: cantidad", dataset, id, line)
		}
		precio, err := decimal.NewFromString(price)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "%s %s line %d: precio", dataset, id, line)
		}
		out = append(out, NewLineItem(line, producto, unidad, cantidad, precio))
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromPostgresf(err, "lines %s %s", dataset, id)
	}
	return out, nil
}

func notFound(dataset, id string) error {
	return perr.NotFoundf("%s: record %q not found", dataset, id)
}

const seedStatementTimeout = 5 * time.Second

const linesSQL = `
insert into record_lines (dataset, record_id, line_no, producto, cantidad, unidad, precio_unitario)
values ($1, $2, $3, $4, $5::numeric, $6, $7::numeric)
on conflict (dataset, record_id, line_no) do nothing
`

// SeedPG copies s into postgres in one transaction, rows already present are kept
// returns the number of records inserted, line items are not counted
func SeedPG(ctx context.Context, db repokit.TxRunner, s Seed) (int, error) {
	const sql = `
insert into dataset_records (dataset, record_id, payload)
values ($1, $2, $3::jsonb)
on conflict (dataset, record_id) do nothing
`
	inserted := 0
	err := repokit.WithTx(ctx, db, func(q repokit.Queryer) error {
		for _, ds := range s.Datasets {
			for _, rec := range s.Records[ds.Name] {
				payload, err := json.Marshal(rec)
				if err != nil {
					return perr.Wrapf(err, perr.ErrorCodeJSON, "encode %s record", ds.Name)
				}
				tag, err := q.Exec(ctx, sql, ds.Name, RecordID(rec), payload)
				if err != nil {
					return perr.FromPostgresf(err, "seed %s", ds.Name)
				}
				inserted += int(tag.RowsAffected())
			}
			for id, lines := range s.Lines[ds.Name] {
				for _, l := range lines {
					if _, err := q.Exec(ctx, linesSQL, ds.Name, id, l.Line, l.Producto, l.Cantidad.String(), l.Unidad, l.PrecioUnitario.String()); err != nil {
						return perr.FromPostgresf(err, "seed %s lines", ds.Name)
					}
				}
			}
		}
		return nil
	}, repokit.StatementTimeout(seedStatementTimeout))
	return inserted, err
}

// Memory keeps datasets in process, the default when postgres is off
type Memory struct {
	mu    sync.RWMutex
	data  map[string][]tableview.Record
	lines map[string]map[string][]domain.LineItem
}

// NewMemory returns a store holding a copy of s
func NewMemory(s Seed) *Memory {
	m := &Memory{
		data:  make(map[string][]tableview.Record, len(s.Records)),
		lines: make(map[string]map[string][]domain.LineItem, len(s.Lines)),
	}
	for name, rows := range s.Records {
		m.data[name] = append([]tableview.Record(nil), rows...)
	}
	for name, byID := range s.Lines {
		m.lines[name] = make(map[string][]domain.LineItem, len(byID))
		for id, items := range byID {
			m.lines[name][id] = append([]domain.LineItem(nil), items...)
		}
	}
	for _, ds := range s.Datasets {
		if _, ok := m.data[ds.Name]; !ok {
			m.data[ds.Name] = nil
		}
	}
	return m
}

// Bind ignores q, memory datasets live outside any transaction
func (m *Memory) Bind(repokit.Queryer) Repo { return m }

// Records returns a snapshot of dataset
func (m *Memory) Records(_ context.Context, dataset string) ([]tableview.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, ok := m.data[dataset]
	if !ok {
		return nil, perr.NotFoundf("dataset %q not found", dataset)
	}
	return append([]tableview.Record(nil), rows...), nil
}

// Append adds rec to the end of dataset
func (m *Memory) Append(_ context.Context, dataset string, rec tableview.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, ok := m.data[dataset]
	if !ok {
		return perr.NotFoundf("dataset %q not found", dataset)
	}
	if id := RecordID(rec); id != "" {
		for _, r := range rows {
			if RecordID(r) == id {
				return perr.DuplicateKeyf("%s: record %q already exists", dataset, id)
			}
		}
	}
	m.data[dataset] = append(rows, rec)
	return nil
}

// Get returns a copy of the record with the given id
func (m *Memory) Get(_ context.Context, dataset, id string) (tableview.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows, i, err := m.find(dataset, id)
	if err != nil {
		return tableview.Record{}, err
	}
	return rows[i].Coerce(nil), nil
}

// Update replaces the record in place
func (m *Memory) Update(_ context.Context, dataset, id string, rec tableview.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, i, err := m.find(dataset, id)
	if err != nil {
		return err
	}
	rows[i] = rec
	return nil
}

// Delete removes the record and its lines, later rows keep their order
func (m *Memory) Delete(_ context.Context, dataset, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows, i, err := m.find(dataset, id)
	if err != nil {
		return err
	}
	m.data[dataset] = append(rows[:i:i], rows[i+1:]...)
	delete(m.lines[dataset], id)
	return nil
}

// Lines returns the line items of a record, empty when it has none
func (m *Memory) Lines(_ context.Context, dataset, id string) ([]domain.LineItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.data[dataset]; !ok {
		return nil, perr.NotFoundf("dataset %q not found", dataset)
	}
	return append([]domain.LineItem{}, m.lines[dataset][id]...), nil
}

// find must run under mu
func (m *Memory) find(dataset, id string) ([]tableview.Record, int, error) {
	rows, ok := m.data[dataset]
	if !ok {
		return nil, 0, perr.NotFoundf("dataset %q not found", dataset)
	}
	for i, r := range rows {
		if RecordID(r) == id {
			return rows, i, nil
		}
	}
	return nil, 0, notFound(dataset, id)
}
