package pg

import (
	"context"
	"strings"

	"backoffice/internal/platform/logger"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      []any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives every statement the adapter runs
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs statements through log, slow ones at warn
// the request id rides along when ctx carries a request scoped logger
func Tracer(log logger.Logger) QueryTracer {
	return &logTracer{log: log.With().Str("component", "pg").Logger()}
}

type logTracer struct{ log logger.Logger }

func (z *logTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	l := z.log
	if id := logger.RequestIDFrom(ctx); id != "" {
		l = l.With().Str("request_id", id).Logger()
	}
	evt := l.Debug()
	switch {
	case ev.Err != nil:
		evt = l.Error().Err(ev.Err)
	case ev.Slow:
		evt = l.Warn()
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Int("args", len(ev.Args)).
		Msg("pg query")
}

// compact folds whitespace runs so multi line statements log on one line
func compact(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
