package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeDuplicateKey, http.StatusConflict},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeForbidden, http.StatusForbidden},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeDB, http.StatusInternalServerError},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{ErrorCode("bogus"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%q) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestError_WrapAndUnwrap(t *testing.T) {
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil render = %q", nilErr.Error())
	}

	cause := stderrs.New("connection reset")
	err := Wrapf(cause, ErrorCodeDB, "list %s", "income")
	if err.Error() != "list income: connection reset" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) || Root(err) != cause {
		t.Fatalf("cause lost")
	}

	// wrapping through fmt keeps the code reachable
	outer := fmt.Errorf("handler: %w", NotFoundf("dataset %q not found", "nope"))
	if !IsCode(outer, ErrorCodeNotFound) || HTTPStatus(outer) != http.StatusNotFound {
		t.Fatalf("code lost through fmt wrap: %q", CodeOf(outer))
	}
	if CodeOf(stderrs.New("plain")) != ErrorCodeUnknown || Root(nil) != nil {
		t.Fatalf("plain errors should be unknown")
	}
}

func TestWithField(t *testing.T) {
	base := InvalidArgf("income: unknown column %q", "color")
	withF := WithField(base, "color")

	if e, _ := As(withF); e.Field() != "color" {
		t.Fatalf("field = %q", e.Field())
	}
	if e, _ := As(base); e.Field() != "" {
		t.Fatalf("WithField must not mutate the original")
	}
	plain := stderrs.New("x")
	if WithField(plain, "f") != plain {
		t.Fatalf("foreign errors pass through")
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil wire = %+v", w)
	}
	w := WireFrom(WithField(Wrap(stderrs.New("secret dsn"), ErrorCodeInvalidArgument, "fecha: want YYYY-MM-DD"), "date_from"))
	if w.Code != ErrorCodeInvalidArgument || w.Message != "fecha: want YYYY-MM-DD" || w.Field != "date_from" {
		t.Fatalf("wire = %+v", w)
	}
	if w := WireFrom(stderrs.New("boom")); w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
}

func TestFromContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err, ok := FromContext(fmt.Errorf("render: %w", ctx.Err()), "%s: export canceled", "income")
	if !ok || !IsCode(err, ErrorCodeUnavailable) || !stderrs.Is(err, context.Canceled) {
		t.Fatalf("canceled = %v %v", err, ok)
	}
	if _, ok := FromContext(context.DeadlineExceeded, "x"); !ok {
		t.Fatalf("deadline should map")
	}
	other := stderrs.New("font missing")
	if err, ok := FromContext(other, "x"); ok || err != other {
		t.Fatalf("unrelated error should pass through")
	}
}

func TestSugar(t *testing.T) {
	cases := []struct {
		err  error
		code ErrorCode
	}{
		{NotFoundf("a"), ErrorCodeNotFound},
		{InvalidArgf("a"), ErrorCodeInvalidArgument},
		{DuplicateKeyf("a"), ErrorCodeDuplicateKey},
		{JSONErrf("a"), ErrorCodeJSON},
		{PanicErrf("a"), ErrorCodePanic},
		{Unauthorizedf("a"), ErrorCodeUnauthorized},
		{Forbiddenf("a"), ErrorCodeForbidden},
		{Conflictf("a"), ErrorCodeConflict},
		{Unavailablef("a"), ErrorCodeUnavailable},
		{ErrNotFound, ErrorCodeNotFound},
	}
	for i, c := range cases {
		if CodeOf(c.err) != c.code {
			t.Fatalf("case %d: code = %q want %q", i, CodeOf(c.err), c.code)
		}
	}
}
