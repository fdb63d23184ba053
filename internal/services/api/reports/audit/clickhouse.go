package audit

import (
	"context"
	"time"

	"backoffice/internal/platform/logger"
	"backoffice/internal/platform/store"
	"backoffice/internal/services/api/reports/domain"
)

// Table is the clickhouse table export events are written to
const Table = "export_events"

// TableDDL creates Table when missing
const TableDDL = `CREATE TABLE IF NOT EXISTS export_events (
    id        String,
    dataset   LowCardinality(String),
    format    LowCardinality(String),
    file_name String,
    rows      UInt32,
    user      String,
    ok        Bool,
    error     String,
    at        DateTime64(3, 'UTC'),
    took_ms   UInt32
) ENGINE = MergeTree
ORDER BY (dataset, at)`

// ClickHouse inserts one row per event
type ClickHouse struct {
	CH store.Clickhouse
}

// NewClickHouse returns a sink over c after creating Table
func NewClickHouse(ctx context.Context, c store.Clickhouse) (*ClickHouse, error) {
	if err := c.Exec(ctx, TableDDL); err != nil {
		return nil, err
	}
	return &ClickHouse{CH: c}, nil
}

// Row flattens ev in table column order
func Row(ev domain.ExportEvent) []any {
	return []any{
		ev.ID,
		ev.Dataset,
		ev.Format,
		ev.FileName,
		uint32(max(ev.Rows, 0)),
		ev.User,
		ev.OK,
		ev.Error,
		ev.At.UTC(),
		uint32(max(ev.Took.Milliseconds(), 0)),
	}
}

// Record implements domain.AuditPort, failures are logged and dropped
func (c *ClickHouse) Record(ctx context.Context, ev domain.ExportEvent) {
	if c == nil || c.CH == nil {
		return
	}
	wctx, cancel := detach(ctx)
	defer cancel()
	if err := c.CH.Insert(wctx, Table, [][]any{Row(ev)}); err != nil {
		logger.C(ctx).Error().Err(err).Str("export_id", ev.ID).Msg("audit: clickhouse insert failed")
	}
}

// Tally is the export count of one dataset and format
type Tally struct {
	Dataset string
	Format  string
	OK      uint64
	Failed  uint64
	Rows    uint64
}

const tallySQL = `SELECT dataset, format, countIf(ok), countIf(NOT ok), sum(rows)
FROM export_events
WHERE at >= ?
GROUP BY dataset, format
ORDER BY dataset, format`

// Tallies sums export events recorded at or after since
func Tallies(ctx context.Context, c store.Clickhouse, since time.Time) ([]Tally, error) {
	rows, err := c.Query(ctx, tallySQL, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Tally
	for rows.Next() {
		var t Tally
		if err := rows.Scan(&t.Dataset, &t.Format, &t.OK, &t.Failed, &t.Rows); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
