// Package http serves the unauthenticated meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"backoffice/internal/core/version"
	"backoffice/internal/modkit/httpkit"
	"backoffice/internal/platform/store"
)

// Deps are what the meta routes report on
type Deps struct {
	Service   string
	StartedAt time.Time

	// Ping checks the configured backends, nil means none are configured
	Ping func(ctx context.Context) []store.Health

	// Storage names where datasets live, Audit where export events go
	Storage string
	Audit   []string
}

// readyTimeout bounds one readiness round
const readyTimeout = 2 * time.Second

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{d: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/capabilities", h.capabilities)
}

type handlers struct{ d Deps }

// HealthResponse says the process is up
type HealthResponse struct {
	Service string `json:"service" example:"backoffice-api"`
	Started string `json:"started" example:"2026-10-19T08:00:00Z"`
	Uptime  int64  `json:"uptime_s" example:"300"`
}

// BackendStatus is the readiness of one backend
type BackendStatus struct {
	Name  string `json:"name" example:"pg"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse lists every checked backend
type ReadyResponse struct {
	Ready    bool            `json:"ready"`
	Backends []BackendStatus `json:"backends"`
}

// CapabilitiesResponse tells clients what this deployment can do
type CapabilitiesResponse struct {
	Formats []string          `json:"formats" example:"csv,pdf"`
	Storage string            `json:"storage" example:"postgres"`
	Audit   []string          `json:"audit" example:"log,clickhouse"`
	Build   version.BuildInfo `json:"build"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{
		Service: h.d.Service,
		Started: h.d.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.d.StartedAt) / time.Second),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness, every configured backend must answer
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ready"
// @Failure 503 {object} ReadyResponse "a backend is down"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	out := ReadyResponse{Ready: true, Backends: []BackendStatus{}}
	if h.d.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()
		for _, p := range h.d.Ping(ctx) {
			b := BackendStatus{Name: p.Name, OK: p.Err == nil}
			if p.Err != nil {
				b.Error = p.Err.Error()
				out.Ready = false
			}
			out.Backends = append(out.Backends, b)
		}
	}
	if !out.Ready {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}, nil
	}
	return out, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(*http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/capabilities Meta metaCapabilities
// @Summary Export formats and active backends
// @Tags Meta
// @Produce json
// @Success 200 {object} CapabilitiesResponse "ok"
// @Router /meta/capabilities [get]
func (h *handlers) capabilities(*http.Request) (any, error) {
	return CapabilitiesResponse{
		Formats: []string{"csv", "pdf"},
		Storage: h.d.Storage,
		Audit:   h.d.Audit,
		Build:   version.Info(),
	}, nil
}
