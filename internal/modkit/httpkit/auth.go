package httpkit

import (
	"net/http"
	"strings"

	perrs "backoffice/internal/platform/errors"
	pnet "backoffice/internal/platform/net"
	phttp "backoffice/internal/platform/net/http"
	"backoffice/internal/platform/net/middleware"
)

// TokenFunc resolves a bearer token to the user and role of its session
type TokenFunc func(token string) (userID, role string, err error)

// Port implements middleware.AuthPort over a TokenFunc
type Port struct{ parse TokenFunc }

// NewPortFunc builds a Port from a token parser
func NewPortFunc(fn TokenFunc) *Port { return &Port{parse: fn} }

// Parse reads the bearer token and hands it to the parser
// any parser error is reported as an invalid token
func (p *Port) Parse(r *http.Request) (string, string, error) {
	raw, err := JWT(r)
	if err != nil {
		return "", "", err
	}
	if p == nil || p.parse == nil {
		return "", "", perrs.Unauthorizedf("invalid bearer token")
	}
	uid, role, err := p.parse(raw)
	if err != nil {
		return "", "", perrs.Unauthorizedf("invalid bearer token")
	}
	return uid, role, nil
}

// JWT returns the raw bearer token, the scheme is case insensitive
func JWT(r *http.Request) (string, error) {
	const scheme = "bearer "
	authz := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(authz) < len(scheme) || !strings.EqualFold(authz[:len(scheme)], scheme) {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(authz[len(scheme):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}

// User returns the signed in user set by the auth middleware
func User(r *http.Request) (string, error) {
	if uid := pnet.UserID(r.Context()); uid != "" {
		return uid, nil
	}
	return "", perrs.Unauthorizedf("missing bearer token")
}

// Role returns the role of the signed in user, empty outside Protected
func Role(r *http.Request) string { return pnet.Role(r.Context()) }

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}

// RequireRole limits a route to the given roles, use inside Protected
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return middleware.RequireRole(phttp.JSON, roles...)
}

// Protected groups routes behind bearer auth
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}
