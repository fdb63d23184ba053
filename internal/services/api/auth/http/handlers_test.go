package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/modkit/httpkit"
	phttp "backoffice/internal/platform/net/http"
	"backoffice/internal/services/api/auth/repo"
	svc "backoffice/internal/services/api/auth/service"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	s := svc.New(repo.NewMemory(), svc.Options{Username: "admin", Password: "admin"})
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, s, httpkit.NewPortFunc(s.ParseToken))
	return r.Mux()
}

func do(t *testing.T, h http.Handler, method, path, token, body string) (int, httpkit.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env httpkit.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s %s: %v (%q)", method, path, err, rec.Body.String())
	}
	return rec.Code, env
}

func TestLoginMeLogout(t *testing.T) {
	t.Parallel()

	h := newRouter(t)

	code, env := do(t, h, http.MethodPost, "/login", "", `{"username":"admin","password":"admin"}`)
	if code != http.StatusOK {
		t.Fatalf("login status = %d env=%+v", code, env)
	}
	data, _ := env.Data.(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("no token in %+v", env.Data)
	}

	code, env = do(t, h, http.MethodGet, "/me", token, "")
	if code != http.StatusOK {
		t.Fatalf("me status = %d", code)
	}
	if me, _ := env.Data.(map[string]any); me["username"] != "admin" || me["role"] != "admin" {
		t.Fatalf("me = %+v", env.Data)
	}

	if code, _ = do(t, h, http.MethodPost, "/logout", token, ""); code != http.StatusOK {
		t.Fatalf("logout status = %d", code)
	}
	if code, _ = do(t, h, http.MethodGet, "/me", token, ""); code != http.StatusUnauthorized {
		t.Fatalf("me after logout status = %d", code)
	}
}

func TestLogin_Failures(t *testing.T) {
	t.Parallel()

	h := newRouter(t)
	cases := []struct {
		body string
		want int
	}{
		{`{"username":"admin","password":"x"}`, http.StatusUnauthorized},
		{`{"username":"","password":""}`, http.StatusBadRequest},
		{`{"username":"admin","password":"admin","extra":1}`, http.StatusBadRequest},
		{`{`, http.StatusBadRequest},
	}
	for _, c := range cases {
		if code, env := do(t, h, http.MethodPost, "/login", "", c.body); code != c.want {
			t.Fatalf("login %s status = %d want %d (%+v)", c.body, code, c.want, env)
		}
	}
}

func TestMe_RequiresBearer(t *testing.T) {
	t.Parallel()

	h := newRouter(t)
	if code, _ := do(t, h, http.MethodGet, "/me", "", ""); code != http.StatusUnauthorized {
		t.Fatalf("status = %d", code)
	}
	if code, _ := do(t, h, http.MethodGet, "/me", "nope", ""); code != http.StatusUnauthorized {
		t.Fatalf("status = %d", code)
	}
}
