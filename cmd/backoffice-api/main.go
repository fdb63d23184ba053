// @title         Back Office API
// @version       0.1.0
// @description   Dataset views, csv and pdf exports for the restaurant back office
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"backoffice/internal/platform/config"
	"backoffice/internal/platform/logger"
	phttp "backoffice/internal/platform/net/http"
	"backoffice/internal/platform/store"
	"backoffice/internal/platform/store/migrate"

	"backoffice/internal/services/api"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// every backend is optional, without postgres datasets and sessions stay in memory
	stCfg := store.ConfigFrom(root, "api")
	if stCfg.PG.Enabled && root.Prefix("SERVICE_PGSQL_").MayBool("MIGRATE", true) {
		mctx, cancel := context.WithTimeout(ctx, time.Minute)
		err := migrate.Up(mctx, stCfg.PG.URL)
		cancel()
		if err != nil {
			l.Fatal().Err(err).Msg("migrations failed")
		}
	}

	st, err := store.Open(ctx, stCfg, store.WithLogger(*logger.Named("store")))
	if err != nil {
		l.Fatal().Err(err).Msg("store open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("store close")
		}
	}()
	for _, p := range st.Ping(ctx) {
		if p.Err != nil {
			l.Warn().Str("backend", p.Name).Err(p.Err).Msg("backend not reachable at boot")
		}
	}

	srv := phttp.NewServer(apiCfg)
	closeAPI := api.Mount(srv.Router(), api.Options{
		Config:         apiCfg,
		Store:          st,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	defer func() {
		if err := closeAPI(); err != nil {
			l.Error().Err(err).Msg("api close")
		}
	}()

	l.Info().Str("addr", srv.Addr()).Bool("postgres", stCfg.PG.Enabled).Bool("clickhouse", stCfg.CH.Enabled).
		Bool("nats", stCfg.NATS.Enabled).Msg("back office api starting")
	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
}
