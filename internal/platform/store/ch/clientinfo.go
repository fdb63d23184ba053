package ch

import (
	"os"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"

	"backoffice/internal/core/version"
)

// ClientInfo tags every connection so system.query_log shows which binary and role ran a query
// role is "api" or "export"
func ClientInfo(role string) clickhouse.ClientInfo {
	b := version.Info()
	host, _ := os.Hostname()
	tag := func(name, v string) struct{ Name, Version string } {
		v = strings.TrimSpace(v)
		if v == "" {
			v = "unknown"
		}
		return struct{ Name, Version string }{Name: name, Version: v}
	}
	return clickhouse.ClientInfo{Products: []struct{ Name, Version string }{
		tag("backoffice", b.Version),
		tag("role", role),
		tag("commit", b.Commit),
		tag("host", host),
	}}
}
