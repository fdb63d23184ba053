// Package modkit wires API modules: the deps they share, build options and mounting
package modkit

import (
	"net/http"

	"backoffice/internal/modkit/httpkit"
	"backoffice/internal/modkit/module"
	"backoffice/internal/modkit/repokit"
	"backoffice/internal/platform/config"
	"backoffice/internal/platform/logger"
	"backoffice/internal/platform/store"
	str "backoffice/internal/platform/strings"
)

// Deps holds the backends modules may use, any of them can be zero
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
	// NATS is the event bus config, zero when publishing is off
	NATS store.NATSConfig
}

// Module is the surface api.Mount works with
type Module = module.Module

// Option mutates what Build returns
type Option func(*Built)

// Built is the resolved module configuration
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	// Ports carries ports injected from other modules, the importing module owns the type
	Ports any
}

// Build applies opts in order, later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// WithName sets a module name used in logs and the port registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts a module under a path prefix
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares attaches per module middleware in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects ports another module exposes
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// Mount routes register under the prefix with the module middleware applied
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(rr httpkit.Router) {
		rr.Use(b.Mw...)
		register(rr)
	})
}
