package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"backoffice/internal/platform/config"
	perr "backoffice/internal/platform/errors"
)

func serve(t *testing.T, h stdhttp.Handler, method, path string) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	var env Envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") != "" {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %s: %v (%q)", path, err, rec.Body.String())
		}
	}
	return rec, env
}

func TestHandle(t *testing.T) {
	m := chi.NewRouter()
	m.Use(chimw.RequestID)
	r := AdaptChi(m)
	r.Get("/ok", Handle(func(*stdhttp.Request) Response { return OK([]string{"income"}) }))
	r.Post("/made", Handle(func(*stdhttp.Request) Response {
		resp := Created(map[string]string{"id": "C-1"})
		resp.Header = stdhttp.Header{"Location": {"/clients/C-1"}}
		return resp
	}))
	r.Get("/missing", Handle(func(*stdhttp.Request) Response {
		return Error(perr.NotFoundf("dataset %q not found", "nope"))
	}))
	r.Delete("/empty", Handle(func(*stdhttp.Request) Response { return NoContent() }))
	r.Put("/made", Handle(func(*stdhttp.Request) Response { return OK(map[string]string{"id": "C-1"}) }))

	rec, env := serve(t, r.Mux(), stdhttp.MethodGet, "/ok")
	if rec.Code != 200 || env.Status != "OK" || env.RequestID == "" {
		t.Fatalf("ok = %d %+v", rec.Code, env)
	}

	rec, env = serve(t, r.Mux(), stdhttp.MethodPost, "/made")
	if rec.Code != 201 || rec.Header().Get("Location") != "/clients/C-1" || env.StatusCode != 201 {
		t.Fatalf("created = %d %+v", rec.Code, env)
	}

	rec, env = serve(t, r.Mux(), stdhttp.MethodGet, "/missing")
	if rec.Code != 404 || env.Code != perr.ErrorCodeNotFound || env.Error != `dataset "nope" not found` {
		t.Fatalf("missing = %d %+v", rec.Code, env)
	}

	if rec, _ = serve(t, r.Mux(), stdhttp.MethodDelete, "/empty"); rec.Code != 204 || rec.Body.Len() != 0 {
		t.Fatalf("empty = %d %q", rec.Code, rec.Body.String())
	}
	if rec, env = serve(t, r.Mux(), stdhttp.MethodPut, "/made"); rec.Code != 200 || env.StatusCode != 200 {
		t.Fatalf("put = %d %+v", rec.Code, env)
	}
	if rec, _ = serve(t, r.Mux(), stdhttp.MethodGet, "/empty"); rec.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("GET on a DELETE route = %d", rec.Code)
	}
}

func TestRespondError_UnknownIs500(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, httptest.NewRequest(stdhttp.MethodGet, "/", nil), errors.New("boom"))
	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestRouter_GroupsRoutesAndWith(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	mark := func(v string) func(stdhttp.Handler) stdhttp.Handler {
		return func(next stdhttp.Handler) stdhttp.Handler {
			return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				w.Header().Add("X-Mark", v)
				next.ServeHTTP(w, req)
			})
		}
	}
	ok := func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusOK) }

	r.Route("/reports", func(sub Router) {
		sub.Use(mark("route"))
		sub.Get("/", ok)
		sub.Group(func(g Router) {
			g.Use(mark("group"))
			g.With(mark("with")).Post("/income/export/pdf", ok)
		})
	})

	rec, _ := serve(t, r.Mux(), stdhttp.MethodGet, "/reports/")
	if got := rec.Header().Values("X-Mark"); len(got) != 1 || got[0] != "route" {
		t.Fatalf("GET marks = %v", got)
	}
	rec, _ = serve(t, r.Mux(), stdhttp.MethodPost, "/reports/income/export/pdf")
	if got := rec.Header().Values("X-Mark"); len(got) != 3 || got[2] != "with" {
		t.Fatalf("POST marks = %v", got)
	}
	if rec, _ = serve(t, r.Mux(), stdhttp.MethodPost, "/reports/"); rec.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("wrong method = %d", rec.Code)
	}
}

func get(h stdhttp.Handler, path string) int {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	return rec.Code
}

func TestMountProfiler_Enabled(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	MountProfiler(r, "/debug", true)

	for _, path := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
		if code := get(r.Mux(), path); code != stdhttp.StatusOK {
			t.Fatalf("GET %s = %d", path, code)
		}
	}
}

func TestMountProfiler_Disabled(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	MountProfiler(r, "/debug", false)

	if code := get(r.Mux(), "/debug/pprof/"); code != stdhttp.StatusNotFound {
		t.Fatalf("disabled profiler = %d", code)
	}
}

func TestServer_RunStopsWithContext(t *testing.T) {
	t.Setenv("TEST_API_PORT", "127.0.0.1:0")
	s := NewServer(config.New().Prefix("TEST_API_"))
	if s.Addr() != "127.0.0.1:0" {
		t.Fatalf("addr = %q", s.Addr())
	}
	s.Router().Get("/ping", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}
