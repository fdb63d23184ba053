package middleware_test

import (
	"compress/flate"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perr "backoffice/internal/platform/errors"
	pnet "backoffice/internal/platform/net"
	"backoffice/internal/platform/net/middleware"
)

type port struct {
	user, role string
	err        error
}

func (p port) Parse(*http.Request) (string, string, error) { return p.user, p.role, p.err }

func write(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func chain(h http.Handler, mw ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

func call(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestAuth(t *testing.T) {
	var user, role string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, role = pnet.UserID(r.Context()), pnet.Role(r.Context())
	})

	rec := call(middleware.Auth(port{user: "admin", role: "admin"}, write)(next), http.MethodGet, "/")
	if rec.Code != http.StatusOK || user != "admin" || role != "admin" {
		t.Fatalf("ok = %d user=%q role=%q", rec.Code, user, role)
	}

	rec = call(middleware.Auth(port{err: perr.Unauthorizedf("invalid bearer token")}, write)(next), http.MethodGet, "/")
	var env pnet.Wire
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if rec.Code != http.StatusUnauthorized || env.Error != "invalid bearer token" {
		t.Fatalf("rejected = %d %+v", rec.Code, env)
	}

	if rec = call(middleware.Auth(nil, write)(next), http.MethodGet, "/"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("nil port = %d", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusCreated) })
	guard := middleware.RequireRole(write, "admin", "manager")

	for role, want := range map[string]int{"admin": 201, "manager": 201, "cashier": 403, "": 403} {
		h := chain(ok, middleware.Auth(port{user: "u", role: role}, write), guard)
		if rec := call(h, http.MethodPost, "/clients/records"); rec.Code != want {
			t.Fatalf("role %q = %d want %d", role, rec.Code, want)
		}
	}
}

func TestRecoverJSON(t *testing.T) {
	h := chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }),
		middleware.RequestID(), middleware.RequestScope, middleware.RecoverJSON)

	rec := call(h, http.MethodGet, "/")
	var env pnet.Wire
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != 500 || env.Code != perr.ErrorCodePanic || env.RequestID == "" {
		t.Fatalf("recovered = %d %+v", rec.Code, env)
	}
	if rec.Header().Get("X-Request-ID") != env.RequestID {
		t.Fatalf("request id header = %q", rec.Header().Get("X-Request-ID"))
	}
}

func TestAccessLog_PassesThrough(t *testing.T) {
	h := middleware.AccessLog(time.Nanosecond)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("id,fecha\n"))
		w.(http.Flusher).Flush()
	}))
	rec := call(h, http.MethodGet, "/")
	if rec.Code != http.StatusAccepted || rec.Body.String() != "id,fecha\n" || !rec.Flushed {
		t.Fatalf("access log = %d %q", rec.Code, rec.Body.String())
	}
}

func TestCORS_ExposesDownloadHeaders(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{AllowedOrigins: []string{"https://backoffice.test"}})(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/income/export/csv", nil)
	req.Header.Set("Origin", "https://backoffice.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(got, "Content-Disposition") {
		t.Fatalf("exposed = %q", got)
	}
}

func TestCompress_CSV(t *testing.T) {
	h := middleware.Compress(flate.BestSpeed)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(strings.Repeat(`"ING001","2023-05-15","1500.00"`+"\n", 200)))
	}))
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("encoding = %q", rec.Header().Get("Content-Encoding"))
	}
}

func TestThrottle_RejectsOverflow(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	h := middleware.Throttle(1, 0, 10*time.Millisecond)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		close(started)
		<-release
	}))

	done := make(chan struct{})
	go func() {
		call(h, http.MethodPost, "/")
		close(done)
	}()
	<-started
	if rec := call(h, http.MethodPost, "/"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("overflow = %d", rec.Code)
	}
	close(release)
	<-done
}

func TestHeartbeat(t *testing.T) {
	h := middleware.Heartbeat("/health")(http.NotFoundHandler())
	if rec := call(h, http.MethodGet, "/health"); rec.Code != http.StatusOK {
		t.Fatalf("health = %d", rec.Code)
	}
	if rec := call(h, http.MethodGet, "/other"); rec.Code != http.StatusNotFound {
		t.Fatalf("other = %d", rec.Code)
	}
}
