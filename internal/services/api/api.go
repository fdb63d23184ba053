// Package api provides the HTTP API for the application
package api

import (
	"time"

	"backoffice/internal/platform/config"
	phttp "backoffice/internal/platform/net/http"
	"backoffice/internal/platform/net/middleware"
	"backoffice/internal/platform/store"

	"backoffice/internal/modkit"
	"backoffice/internal/modkit/httpkit"
	"backoffice/internal/modkit/module"
	"backoffice/internal/modkit/swaggerkit"

	authmod "backoffice/internal/services/api/auth/module"
	metamod "backoffice/internal/services/api/meta/module"
	reportsmod "backoffice/internal/services/api/reports/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	EnableSwagger  bool
	EnableProfiler bool
}

// Closer is returned by Mount for resources modules opened
type Closer func() error

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) Closer {
	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
		deps.NATS = opt.Store.NATS
	}

	// auth owns the bearer port every other module guards its routes with
	// login is throttled so a password guesser queues behind real users
	auth := authmod.New(deps, modkit.WithMiddlewares(middleware.Throttle(8, 32, 5*time.Second)))
	authPort := module.MustPortsOf[authmod.Ports](auth).Auth

	reports := reportsmod.New(
		deps,
		reportsmod.FromConfig(deps.Cfg),
		modkit.WithPorts(reportsmod.Deps{Auth: authPort}),
	)

	mods := []module.Module{
		metamod.New(deps),
		auth,
		reports,
	}

	// load balancer heartbeat, answered before routing
	r.Use(middleware.Heartbeat("/health"))

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Config), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	return reports.Close
}
