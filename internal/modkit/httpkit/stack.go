package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"backoffice/internal/platform/config"
	"backoffice/internal/platform/net/middleware"
)

// CommonStack is the middleware every API route runs through, tuned by cfg
//
//	CORS_ORIGINS   comma separated, default *
//	SLOW_REQUEST   access log warns past this, default 500ms
//	TIMEOUT        per request, default 30s, a pdf render has to fit
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RequestScope,
		middleware.AccessLog(cfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond)),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: cfg.MayList("CORS_ORIGINS", nil)}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(cfg.MayDuration("TIMEOUT", 30*time.Second)),
	}
}
