package strings

import (
	"reflect"
	"testing"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	if got := IfEmpty([]string{"GET"}, []string{"POST"}); !reflect.DeepEqual(got, []string{"GET"}) {
		t.Fatalf("IfEmpty kept = %v", got)
	}
	if got := IfEmpty(nil, []int{9}); !reflect.DeepEqual(got, []int{9}) {
		t.Fatalf("IfEmpty default = %v", got)
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()

	if got := MustString("reports", "name"); got != "reports" {
		t.Fatalf("MustString = %q", got)
	}
	defer func() {
		if r := recover(); r != "name is required" {
			t.Fatalf("panic = %v", r)
		}
	}()
	MustString("  ", "name")
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{"reports": "/reports", " /reports/ ": "/reports", "//a/b//": "/a/b"} {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q want %q", in, got, want)
		}
	}
	for _, in := range []string{"", " / "} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("MustPrefix(%q) should panic", in)
				}
			}()
			MustPrefix(in)
		}()
	}
}

func TestPair(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, sep  string
		key, val string
		ok       bool
	}{
		{"tipo=egreso", "=", "tipo", "egreso", true},
		{" tipo = egreso = x ", "=", "tipo", "egreso = x", true},
		{"monto:desc", ":", "monto", "desc", true},
		{"tipo=", "=", "tipo", "", true},
		{"tipo", "=", "tipo", "", false},
		{" =egreso", "=", "", "egreso", false},
	}
	for _, c := range cases {
		k, v, ok := Pair(c.in, c.sep)
		if k != c.key || v != c.val || ok != c.ok {
			t.Fatalf("Pair(%q) = %q %q %v", c.in, k, v, ok)
		}
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	if got := List(" tiendaOrigen, ,tiendaDestino ,"); !reflect.DeepEqual(got, []string{"tiendaOrigen", "tiendaDestino"}) {
		t.Fatalf("List = %v", got)
	}
	if got := List(" , "); got != nil {
		t.Fatalf("List blank = %v", got)
	}
}
