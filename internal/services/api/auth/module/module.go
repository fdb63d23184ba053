// Package module wires auth into the API using modkit
package module

import (
	modkit "backoffice/internal/modkit"
	"backoffice/internal/modkit/httpkit"
	str "backoffice/internal/platform/strings"
	authhttp "backoffice/internal/services/api/auth/http"
	authrepo "backoffice/internal/services/api/auth/repo"
	authsvc "backoffice/internal/services/api/auth/service"
)

// Module implements the modkit.Module interface
type Module struct {
	b     modkit.Built
	ports Ports
	svc   authsvc.Service
}

// New constructs the auth module, sessions go to postgres when deps.PG is set
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("auth"), modkit.WithPrefix("/auth")}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var sessions authrepo.Repo
	if deps.PG != nil {
		sessions = authrepo.NewPG().Bind(deps.PG)
	} else {
		sessions = authrepo.NewMemory()
	}
	svc := authsvc.New(sessions, cfg)

	return &Module{
		b:     b,
		ports: Ports{Auth: httpkit.NewPortFunc(svc.ParseToken), Sessions: svc},
		svc:   svc,
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { authhttp.Register(rr, m.svc, m.ports.Auth) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }
