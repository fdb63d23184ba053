// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"backoffice/internal/core/version"
	modkit "backoffice/internal/modkit"
	"backoffice/internal/modkit/httpkit"
	"backoffice/internal/platform/store"
	str "backoffice/internal/platform/strings"

	metahttp "backoffice/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	d := metahttp.Deps{
		Service:   version.Info().Service,
		StartedAt: time.Now(),
		Storage:   "memory",
		Audit:     []string{"log"},
	}
	if deps.PG != nil {
		d.Storage = "postgres"
	}
	if deps.CH != nil {
		d.Audit = append(d.Audit, "clickhouse")
	}
	if deps.NATS.Enabled {
		d.Audit = append(d.Audit, "nats")
	}
	if deps.PG != nil || deps.CH != nil {
		d.Ping = (&store.Store{PG: deps.PG, CH: deps.CH}).Ping
	}
	return &Module{b: b, deps: d}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.b.Name, "meta") }

// Ports implements the modkit.Module interface, meta exposes none
func (m *Module) Ports() any { return nil }
