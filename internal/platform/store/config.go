package store

import (
	"time"

	"backoffice/internal/platform/config"
)

// Config enables and configures each backend
type Config struct {
	// AppName tags clickhouse connections, eg api or export
	AppName string

	PG   PGConfig
	CH   CHConfig
	NATS NATSConfig
}

// PGConfig configures postgres
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot ping, zero values use the pg package defaults
	ConnectRetries int
	PingTimeout    time.Duration
}

// CHConfig configures clickhouse
type CHConfig struct {
	Enabled bool
	URL     string
}

// NATSConfig configures the export event bus
type NATSConfig struct {
	Enabled bool
	URL     string
	Subject string
}

// ConfigFrom reads SERVICE_PGSQL_*, SERVICE_CLICKHOUSE_* and SERVICE_NATS_*
// a backend without a url stays disabled
func ConfigFrom(root config.Conf, app string) Config {
	pgc := root.Prefix("SERVICE_PGSQL_")
	chc := root.Prefix("SERVICE_CLICKHOUSE_")
	nc := root.Prefix("SERVICE_NATS_")

	c := Config{
		AppName: app,
		PG: PGConfig{
			URL:            pgc.MayString("DBURL", ""),
			MaxConns:       int32(pgc.MayIntIn("MAX_CONNS", 4, 1, 64)),
			LogSQL:         pgc.MayBool("LOG_SQL", false),
			SlowQueryMs:    pgc.MayInt("SLOW_MS", 500),
			ConnectRetries: pgc.MayIntIn("CONNECT_RETRIES", 6, 1, 30),
			PingTimeout:    pgc.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH:   CHConfig{URL: chc.MayString("DBURL", "")},
		NATS: NATSConfig{URL: nc.MayString("URL", ""), Subject: nc.MayString("SUBJECT", "backoffice.exports")},
	}
	c.PG.Enabled = c.PG.URL != ""
	c.CH.Enabled = c.CH.URL != ""
	c.NATS.Enabled = c.NATS.URL != ""
	return c
}
