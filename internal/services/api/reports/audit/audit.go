// Package audit records export attempts
// events go to the log and, when configured, to clickhouse and nats
package audit

import (
	"context"
	"time"

	"backoffice/internal/platform/logger"
	"backoffice/internal/services/api/reports/domain"
)

// Log writes events as structured log lines
type Log struct{}

// Record implements domain.AuditPort
func (Log) Record(ctx context.Context, ev domain.ExportEvent) {
	l := logger.C(ctx)
	e := l.Info()
	if !ev.OK {
		e = l.Warn().Str("error", ev.Error)
	}
	e.Str("export_id", ev.ID).
		Str("dataset", ev.Dataset).
		Str("format", ev.Format).
		Str("file", ev.FileName).
		Int("rows", ev.Rows).
		Str("user", ev.User).
		Dur("took", ev.Took).
		Msg("export")
}

// Multi fans an event out to every sink in order
type Multi []domain.AuditPort

// Record implements domain.AuditPort
func (m Multi) Record(ctx context.Context, ev domain.ExportEvent) {
	for _, s := range m {
		if s != nil {
			s.Record(ctx, ev)
		}
	}
}

// Func adapts a function to domain.AuditPort
type Func func(ctx context.Context, ev domain.ExportEvent)

// Record implements domain.AuditPort
func (f Func) Record(ctx context.Context, ev domain.ExportEvent) { f(ctx, ev) }

// sinkTimeout bounds each remote write
const sinkTimeout = 3 * time.Second

// detach keeps request values but drops the request deadline and cancellation
func detach(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), sinkTimeout)
}
