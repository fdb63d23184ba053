package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"backoffice/internal/platform/logger"
	"backoffice/internal/services/api/reports/domain"
)

// DefaultSubject is where export events are published
const DefaultSubject = "backoffice.exports"

// NATS publishes events as JSON on Subject
type NATS struct {
	conn    *nats.Conn
	Subject string
}

// NewNATS connects to url, reconnecting forever in the background
func NewNATS(url, subject string, opts ...nats.Option) (*NATS, error) {
	if subject == "" {
		subject = DefaultSubject
	}
	defaults := []nats.Option{
		nats.Name("backoffice-audit"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	}
	nc, err := nats.Connect(url, append(defaults, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("audit: connect nats %s: %w", url, err)
	}
	return &NATS{conn: nc, Subject: subject}, nil
}

// Publish sends ev and waits for the server to acknowledge the write
func (n *NATS) Publish(ctx context.Context, ev domain.ExportEvent) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("audit: marshal event: %w", err)
	}
	if err := n.conn.Publish(n.Subject, data); err != nil {
		return fmt.Errorf("audit: publish %s: %w", n.Subject, err)
	}
	return n.conn.FlushWithContext(ctx)
}

// Record implements domain.AuditPort, failures are logged and dropped
func (n *NATS) Record(ctx context.Context, ev domain.ExportEvent) {
	if n == nil || n.conn == nil {
		return
	}
	wctx, cancel := detach(ctx)
	defer cancel()
	if err := n.Publish(wctx, ev); err != nil {
		logger.C(ctx).Error().Err(err).Str("export_id", ev.ID).Msg("audit: nats publish failed")
	}
}

// Close drains pending messages and closes the connection
func (n *NATS) Close() error {
	if n == nil || n.conn == nil {
		return nil
	}
	return n.conn.Drain()
}
