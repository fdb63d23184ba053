// Package module wires reports into the API using modkit
package module

import (
	"context"
	"time"


	"backoffice/internal/core/snapshot"
	modkit "backoffice/internal/modkit"
	"backoffice/internal/modkit/httpkit"
	"backoffice/internal/platform/files"
	"backoffice/internal/platform/logger"
	str "backoffice/internal/platform/strings"
	"backoffice/internal/services/api/reports/audit"
	"backoffice/internal/services/api/reports/domain"
	reportshttp "backoffice/internal/services/api/reports/http"
	reportsrepo "backoffice/internal/services/api/reports/repo"
	reportssvc "backoffice/internal/services/api/reports/service"
)

// Module implements the modkit.Module interface
type Module struct {
	b     modkit.Built
	deps  modkit.Deps
	ports Ports
	needs Deps

	svc  reportssvc.Service
	nats *audit.NATS
}

// New constructs the reports module
// datasets live in postgres when deps.PG is set, in memory otherwise
// inject the auth port with modkit.WithPorts(Deps{Auth: ...})
func New(deps modkit.Deps, opt Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("reports"), modkit.WithPrefix("/reports")}, opts...)...)
	log := logger.Named("reports")

	seed, err := reportsrepo.LoadSeed()
	if err != nil {
		log.Panic().Err(err).Msg("built in datasets are invalid")
	}

	var store reportsrepo.Repo
	if deps.PG != nil {
		store = reportsrepo.NewPG().Bind(deps.PG)
		if opt.SeedPG {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			n, err := reportsrepo.SeedPG(ctx, deps.PG, seed)
			cancel()
			if err != nil {
				log.Error().Err(err).Msg("seed datasets failed")
			} else {
				log.Info().Int("inserted", n).Msg("datasets seeded")
			}
		}
	} else {
		store = reportsrepo.NewMemory(seed)
	}

	m := &Module{b: b, deps: deps}
	if needs, ok := b.Ports.(Deps); ok {
		m.needs = needs
	}
	if m.needs.Auth == nil {
		log.Warn().Msg("no auth port injected, reports routes will answer 401")
	}

	svc := reportssvc.New(store, seed.Datasets, reportssvc.Options{
		Locale:      reportssvc.ParseLocale(opt.Locale),
		DefaultPage: opt.DefaultPage,
		MaxPage:     opt.MaxPage,
		IDLength:    opt.IDLength,
		Archive:     m.archive(opt),
		Audit:       m.auditSinks(),
	})
	m.svc = svc
	m.ports = Ports{Reports: svc}
	return m
}

// auditSinks always logs, clickhouse and nats are added when the deps carry them
func (m *Module) auditSinks() domain.AuditPort {
	log := logger.Named("reports")
	sinks := audit.Multi{audit.Log{}}

	if m.deps.CH != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		chs, err := audit.NewClickHouse(ctx, m.deps.CH)
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("clickhouse audit disabled")
		} else {
			sinks = append(sinks, chs)
		}
	}

	if m.deps.NATS.Enabled {
		n, err := audit.NewNATS(m.deps.NATS.URL, m.deps.NATS.Subject)
		if err != nil {
			log.Warn().Err(err).Msg("nats audit disabled")
		} else {
			m.nats = n
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// archive resolves where pdfs without a request go
func (m *Module) archive(opt Options) snapshot.DocumentSink {
	bucket, prefix, ok := files.ParseS3URL(opt.ArchiveURL)
	if !ok {
		return files.NewDir(opt.ArchiveURL)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	b, err := files.NewBucket(ctx, bucket, prefix, files.S3Options{Region: opt.S3Region, Endpoint: opt.S3Endpoint})
	if err != nil {
		logger.Named("reports").Warn().Err(err).Str("archive", opt.ArchiveURL).Msg("s3 archive unavailable, using ./exports")
		return files.NewDir("exports")
	}
	return b
}

// Close drops the nats connection if one was opened
func (m *Module) Close() error {
	if m.nats == nil {
		return nil
	}
	return m.nats.Close()
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { reportshttp.Register(rr, m.svc, m.needs.Auth) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.b.Prefix) }
