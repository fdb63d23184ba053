package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/modkit/httpkit"
	phttp "backoffice/internal/platform/net/http"
	"backoffice/internal/services/api/reports/repo"
	svc "backoffice/internal/services/api/reports/service"
)

const (
	token        = "good-token"
	cashierToken = "cashier-token"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	seed, err := repo.LoadSeed()
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	s := svc.New(repo.NewMemory(seed), seed.Datasets, svc.Options{})
	port := httpkit.NewPortFunc(func(tok string) (string, string, error) {
		switch tok {
		case token:
			return "admin", "admin", nil
		case cashierToken:
			return "caja1", "cashier", nil
		}
		return "", "", errors.New("bad token")
	})
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, s, port)
	return r.Mux()
}

func raw(t *testing.T, h http.Handler, method, path, tok, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func do(t *testing.T, h http.Handler, method, path, body string) (int, httpkit.Envelope) {
	t.Helper()
	rec := raw(t, h, method, path, token, body)
	var env httpkit.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s %s: %v (%q)", method, path, err, rec.Body.String())
	}
	return rec.Code, env
}

func TestRoutes_RequireBearer(t *testing.T) {
	t.Parallel()

	h := newRouter(t)
	for _, c := range []struct{ method, path string }{
		{http.MethodGet, "/"},
		{http.MethodPost, "/income/view"},
		{http.MethodPost, "/income/export/csv"},
		{http.MethodGet, "/finance/summary"},
		{http.MethodGet, "/invoices/records/1"},
		{http.MethodDelete, "/invoices/records/1"},
	} {
		if rec := raw(t, h, c.method, c.path, "", ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s status = %d", c.method, c.path, rec.Code)
		}
		if rec := raw(t, h, c.method, c.path, "bad", ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s bad token status = %d", c.method, c.path, rec.Code)
		}
	}
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	code, env := do(t, newRouter(t), http.MethodGet, "/", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	list, _ := env.Data.([]any)
	if len(list) != 9 {
		t.Fatalf("catalog = %+v", env.Data)
	}
}

func TestView(t *testing.T) {
	t.Parallel()

	h := newRouter(t)
	code, env := do(t, h, http.MethodPost, "/income/view", `{"search":"tienda","sort":{"field":"monto","direction":"desc"}}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d env=%+v", code, env)
	}
	data, _ := env.Data.(map[string]any)
	if data["total"] != float64(3) {
		t.Fatalf("view = %+v", data)
	}
	rows, _ := data["rows"].([]any)
	first, _ := rows[0].(map[string]any)
	if first["id"] != "ING001" || first["fecha"] != "2023-05-15" {
		t.Fatalf("first row = %+v", first)
	}

	cases := []struct {
		path, body string
		want       int
	}{
		{"/nope/view", `{}`, http.StatusNotFound},
		{"/income/view", `{"sort":{"direction":"sideways"}}`, http.StatusBadRequest},
		{"/income/view", `{"date_from":"15/05/2023"}`, http.StatusBadRequest},
		{"/income/view", `{"filters":{"monto":["mucho"]}}`, http.StatusUnprocessableEntity},
		{"/products/view", `{"date_from":"2023-05-15"}`, http.StatusUnprocessableEntity},
		{"/income/view", `{"unknown":1}`, http.StatusBadRequest},
	}
	for _, c := range cases {
		if code, env := do(t, h, http.MethodPost, c.path, c.body); code != c.want {
			t.Fatalf("%s %s status = %d want %d (%+v)", c.path, c.body, code, c.want, env)
		}
	}
}

func TestToggleSort(t *testing.T) {
	t.Parallel()

	code, env := do(t, newRouter(t), http.MethodPost, "/sort/toggle", `{"sort":{"field":"monto","direction":"asc"},"field":"monto"}`)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if data, _ := env.Data.(map[string]any); data["field"] != "monto" || data["direction"] != "desc" {
		t.Fatalf("toggle = %+v", env.Data)
	}
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	h := newRouter(t)
	rec := raw(t, h, http.MethodPost, "/income/export/csv", token, `{"search":"efectivo","file_name":"ingresos"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "ingresos.csv") {
		t.Fatalf("disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), `"id","fecha","monto"`) {
		t.Fatalf("body = %q", rec.Body.String())
	}

	if rec := raw(t, h, http.MethodPost, "/income/export/csv", token, ""); rec.Code != http.StatusOK {
		t.Fatalf("empty body status = %d", rec.Code)
	}
	if rec := raw(t, h, http.MethodPost, "/income/export/csv", token, `{"search":"zzz"}`); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("no rows status = %d", rec.Code)
	}
	if rec := raw(t, h, http.MethodPost, "/income/export/csv", token, `{"file_name":"../ingresos"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("path file name status = %d", rec.Code)
	}
}

func TestExportPDF(t *testing.T) {
	t.Parallel()

	rec := raw(t, newRouter(t), http.MethodPost, "/movements/export/pdf", token, `{"date_from":"2023-05-13"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "reporte.pdf") {
		t.Fatalf("disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("not a pdf")
	}
}

func TestPreview(t *testing.T) {
	t.Parallel()

	h := newRouter(t)
	code, env := do(t, h, http.MethodPost, "/products/export/preview", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if data, _ := env.Data.(map[string]any); data["width_mm"] != float64(210) || data["pages"] != float64(1) {
		t.Fatalf("preview = %+v", env.Data)
	}

	rec := raw(t, h, http.MethodPost, "/products/export/preview?format=png", token, "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" || rec.Header().Get("X-Preview-Pages") != "1" {
		t.Fatalf("png preview = %d %v", rec.Code, rec.Header())
	}
}

func TestAddRecord(t *testing.T) {
	t.Parallel()

	h := newRouter(t)
	code, env := do(t, h, http.MethodPost, "/clients/records", `{"fields":{"nombre":"Ana Pérez"}}`)
	if code != http.StatusCreated {
		t.Fatalf("status = %d env=%+v", code, env)
	}
	data, _ := env.Data.(map[string]any)
	id, _ := data["id"].(string)
	if !strings.HasPrefix(id, "C-") {
		t.Fatalf("record = %+v", data)
	}

	body := `{"fields":{"id":"` + id + `","nombre":"Otra"}}`
	if code, _ := do(t, h, http.MethodPost, "/clients/records", body); code != http.StatusConflict {
		t.Fatalf("duplicate status = %d", code)
	}
	if code, _ := do(t, h, http.MethodPost, "/clients/records", `{"fields":{}}`); code != http.StatusBadRequest {
		t.Fatalf("empty fields status = %d", code)
	}
	if code, _ := do(t, h, http.MethodPost, "/clients/records", `{"fields":{"color":"rojo"}}`); code != http.StatusUnprocessableEntity {
		t.Fatalf("unknown column status = %d", code)
	}
	if rec := raw(t, h, http.MethodPost, "/clients/records", cashierToken, `{"fields":{"nombre":"Caja"}}`); rec.Code != http.StatusForbidden {
		t.Fatalf("cashier status = %d", rec.Code)
	}
	// cashiers still read and export
	if rec := raw(t, h, http.MethodPost, "/clients/export/csv", cashierToken, ""); rec.Code != http.StatusOK {
		t.Fatalf("cashier export status = %d", rec.Code)
	}
}

func TestRecordDetailUpdateDelete(t *testing.T) {
	t.Parallel()

	h := newRouter(t)
	code, env := do(t, h, http.MethodGet, "/purchase_orders/records/1", "")
	if code != http.StatusOK {
		t.Fatalf("detail status = %d env=%+v", code, env)
	}
	data, _ := env.Data.(map[string]any)
	lines, _ := data["lines"].([]any)
	if len(lines) != 3 || data["lines_total"] != "701.5" {
		t.Fatalf("detail = %+v", data)
	}
	if first, _ := lines[0].(map[string]any); first["producto"] != "Aceite de oliva extra virgen" || first["subtotal"] != "459" {
		t.Fatalf("first line = %+v", first)
	}
	// cashiers may read a record
	if rec := raw(t, h, http.MethodGet, "/invoices/records/2", cashierToken, ""); rec.Code != http.StatusOK {
		t.Fatalf("cashier detail status = %d", rec.Code)
	}

	code, env = do(t, h, http.MethodPut, "/invoices/records/2", `{"fields":{"estado":"anulada"}}`)
	if code != http.StatusOK {
		t.Fatalf("update status = %d env=%+v", code, env)
	}
	if data, _ := env.Data.(map[string]any); data["estado"] != "anulada" || data["numero"] != "F-2023-002" {
		t.Fatalf("updated = %+v", env.Data)
	}
	if code, _ := do(t, h, http.MethodPut, "/invoices/records/2", `{"fields":{"id":"9"}}`); code != http.StatusUnprocessableEntity {
		t.Fatalf("id change status = %d", code)
	}
	if rec := raw(t, h, http.MethodPut, "/invoices/records/2", cashierToken, `{"fields":{"estado":"pagada"}}`); rec.Code != http.StatusForbidden {
		t.Fatalf("cashier update status = %d", rec.Code)
	}

	if rec := raw(t, h, http.MethodDelete, "/invoices/records/2", cashierToken, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("cashier delete status = %d", rec.Code)
	}
	if rec := raw(t, h, http.MethodDelete, "/invoices/records/2", token, ""); rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("delete = %d %q", rec.Code, rec.Body.String())
	}
	for _, c := range []struct{ method, path, body string }{
		{http.MethodGet, "/invoices/records/2", ""},
		{http.MethodPut, "/invoices/records/2", `{"fields":{"estado":"pagada"}}`},
		{http.MethodDelete, "/invoices/records/2", ""},
		{http.MethodGet, "/nope/records/1", ""},
	} {
		if code, env := do(t, h, c.method, c.path, c.body); code != http.StatusNotFound {
			t.Fatalf("%s %s = %d %+v", c.method, c.path, code, env)
		}
	}
}

func TestFinanceSummary(t *testing.T) {
	t.Parallel()

	code, env := do(t, newRouter(t), http.MethodGet, "/finance/summary", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if data, _ := env.Data.(map[string]any); data["balance"] != "-140.75" || data["movements"] != float64(5) {
		t.Fatalf("summary = %+v", env.Data)
	}
}
