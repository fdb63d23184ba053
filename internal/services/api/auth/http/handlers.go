// Package http provides http transport for auth
package http

import (
	stdhttp "net/http"

	"backoffice/internal/modkit/httpkit"
	"backoffice/internal/platform/net/middleware"
	"backoffice/internal/services/api/auth/domain"
	svc "backoffice/internal/services/api/auth/service"
)

// Register mounts auth endpoints on the given router
// logout and me sit behind the bearer port
func Register(r httpkit.Router, s svc.Service, port middleware.AuthPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.LoginInput](r, "/login", h.login)
	httpkit.Protected(r, port, func(pr httpkit.Router) {
		httpkit.Post(pr, "/logout", h.logout)
		httpkit.Get(pr, "/me", h.me)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route POST /auth/login Auth authLogin
// @Summary Sign in with the back office account
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.LoginInput true "Credentials"
// @Success 200 {object} domain.Session "ok"
// @Failure 401 {object} httpkit.Envelope "invalid credentials"
// @Router /auth/login [post]
func (h *handlers) login(r *stdhttp.Request, in domain.LoginInput) (any, error) {
	return h.svc.Login(r.Context(), in)
}

// swagger:route POST /auth/logout Auth authLogout
// @Summary Close the current session
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.LogoutResult "ok"
// @Router /auth/logout [post]
func (h *handlers) logout(r *stdhttp.Request) (any, error) {
	tok, err := httpkit.JWT(r)
	if err != nil {
		return nil, err
	}
	ok, err := h.svc.Logout(r.Context(), tok)
	if err != nil {
		return nil, err
	}
	return domain.LogoutResult{LoggedOut: ok}, nil
}

// swagger:route GET /auth/me Auth authMe
// @Summary Current identity
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Identity "ok"
// @Failure 401 {object} httpkit.Envelope "no session"
// @Router /auth/me [get]
func (h *handlers) me(r *stdhttp.Request) (any, error) {
	tok, err := httpkit.JWT(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Current(r.Context(), tok)
}
