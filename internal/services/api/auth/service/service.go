// Package service contains auth workflows
package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"github.com/google/uuid"

	perr "backoffice/internal/platform/errors"
	"backoffice/internal/platform/logger"
	"backoffice/internal/services/api/auth/domain"
	"backoffice/internal/services/api/auth/repo"
)

// Service defines the service contract for auth
type Service interface {
	domain.ServicePort
	domain.TokenPort
}

// Options holds the single back office account
type Options struct {
	Username string
	Password string
	Role     string

	// LookupTimeout bounds token lookups made from middleware
	LookupTimeout time.Duration
}

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo
	opt  Options

	now     func() time.Time
	newUUID func() string
}

// New creates a new auth service over r
func New(r repo.Repo, opt Options) *Svc {
	if r == nil {
		panic("auth.Service requires a non nil session Repo")
	}
	if opt.Username == "" || opt.Password == "" {
		panic("auth.Service requires credentials")
	}
	if opt.Role == "" {
		opt.Role = "admin"
	}
	if opt.LookupTimeout <= 0 {
		opt.LookupTimeout = 2 * time.Second
	}
	return &Svc{Repo: r, opt: opt, now: time.Now, newUUID: uuid.NewString}
}

// Login checks the credentials and opens a session
func (s *Svc) Login(ctx context.Context, in domain.LoginInput) (domain.Session, error) {
	user := strings.TrimSpace(in.Username)
	okUser := subtle.ConstantTimeCompare([]byte(user), []byte(s.opt.Username)) == 1
	okPass := subtle.ConstantTimeCompare([]byte(in.Password), []byte(s.opt.Password)) == 1
	if !okUser || !okPass {
		logger.C(ctx).Warn().Str("username", user).Msg("login rejected")
		return domain.Session{}, perr.Unauthorizedf("invalid credentials")
	}

	row := repo.RowSession{
		Token:     s.newUUID(),
		Username:  s.opt.Username,
		Role:      s.opt.Role,
		CreatedAt: s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, row); err != nil {
		return domain.Session{}, err
	}
	logger.C(ctx).Info().Str("username", row.Username).Msg("login")
	return toSession(row), nil
}

// Logout drops the session, unknown tokens are not an error
func (s *Svc) Logout(ctx context.Context, token string) (bool, error) {
	if _, err := uuid.Parse(token); err != nil {
		return false, nil
	}
	return s.Repo.Delete(ctx, token)
}

// Current returns the identity behind token
func (s *Svc) Current(ctx context.Context, token string) (domain.Identity, error) {
	if _, err := uuid.Parse(token); err != nil {
		return domain.Identity{}, perr.Unauthorizedf("invalid bearer token")
	}
	row, err := s.Repo.Get(ctx, token)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return domain.Identity{}, perr.Unauthorizedf("session not found")
		}
		return domain.Identity{}, err
	}
	return domain.Identity{Username: row.Username, Role: row.Role}, nil
}

// ParseToken resolves token to the username and role of its session
func (s *Svc) ParseToken(token string) (string, string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opt.LookupTimeout)
	defer cancel()
	id, err := s.Current(ctx, token)
	if err != nil {
		return "", "", err
	}
	return id.Username, id.Role, nil
}

func toSession(r repo.RowSession) domain.Session {
	return domain.Session{
		Token:     r.Token,
		Identity:  domain.Identity{Username: r.Username, Role: r.Role},
		CreatedAt: r.CreatedAt,
	}
}
