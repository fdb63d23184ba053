package middleware

import (
	"net/http"

	perr "backoffice/internal/platform/errors"
	"backoffice/internal/platform/logger"
	pnet "backoffice/internal/platform/net"
)

// AuthPort resolves the signed in user from a request
type AuthPort interface {
	Parse(r *http.Request) (userID, role string, err error)
}

// WriteFunc writes an envelope, http.JSON has this shape
type WriteFunc func(w http.ResponseWriter, status int, body any)

// Auth rejects requests the port cannot resolve, a nil port rejects everything
func Auth(p AuthPort, write WriteFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := pnet.RequestID(r.Context())
			if p == nil {
				status, body := pnet.Error(perr.Unauthorizedf("no session backend"), reqID)
				write(w, status, body)
				return
			}
			uid, role, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, reqID)
				write(w, status, body)
				return
			}
			ctx := pnet.WithUser(r.Context(), uid, role)
			ctx = logger.WithRequest(ctx, reqID, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets through users holding one of roles, mount it after Auth
func RequireRole(write WriteFunc, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := pnet.Role(r.Context())
			for _, want := range roles {
				if have == want {
					next.ServeHTTP(w, r)
					return
				}
			}
			status, body := pnet.Error(perr.Forbiddenf("role %q may not do this", have), pnet.RequestID(r.Context()))
			write(w, status, body)
		})
	}
}
