// Package repo provides session storage for auth
package repo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"backoffice/internal/modkit/repokit"
	perr "backoffice/internal/platform/errors"
)

// Repo defines the session store contract
type Repo interface {
	Create(ctx context.Context, s RowSession) error
	Get(ctx context.Context, token string) (RowSession, error)
	Delete(ctx context.Context, token string) (bool, error)
}

// RowSession is a stored session
type RowSession struct {
	Token     string
	Username  string
	Role      string
	CreatedAt time.Time
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Create(ctx context.Context, s RowSession) error {
	const sql = `insert into sessions (token, username, role, created_at) values ($1::uuid, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, sql, s.Token, s.Username, s.Role, s.CreatedAt); err != nil {
		return perr.FromPostgres(err, "create session")
	}
	return nil
}

func (r *queries) Get(ctx context.Context, token string) (RowSession, error) {
	const sql = `select token::text, username, role, created_at from sessions where token = $1::uuid`
	var s RowSession
	if err := r.q.QueryRow(ctx, sql, token).Scan(&s.Token, &s.Username, &s.Role, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RowSession{}, perr.ErrNotFound
		}
		return RowSession{}, perr.FromPostgres(err, "get session")
	}
	return s, nil
}

func (r *queries) Delete(ctx context.Context, token string) (bool, error) {
	tag, err := r.q.Exec(ctx, `delete from sessions where token = $1::uuid`, token)
	if err != nil {
		return false, perr.FromPostgres(err, "delete session")
	}
	return tag.RowsAffected() > 0, nil
}

// Memory keeps sessions in process, the default when postgres is off
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]RowSession
}

// NewMemory returns an empty in process store
func NewMemory() *Memory { return &Memory{sessions: map[string]RowSession{}} }

// Bind ignores q, memory sessions live outside any transaction
func (m *Memory) Bind(repokit.Queryer) Repo { return m }

// Create stores s under its token
func (m *Memory) Create(_ context.Context, s RowSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.Token]; ok {
		return perr.DuplicateKeyf("session already exists")
	}
	m.sessions[s.Token] = s
	return nil
}

// Get returns the session for token
func (m *Memory) Get(_ context.Context, token string) (RowSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[token]
	if !ok {
		return RowSession{}, perr.ErrNotFound
	}
	return s, nil
}

// Delete removes the session for token
func (m *Memory) Delete(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[token]
	delete(m.sessions, token)
	return ok, nil
}
