package module

import (
	"net/http"
	"testing"

	phttp "backoffice/internal/platform/net/http"
	"backoffice/internal/platform/net/middleware"
	kit "backoffice/internal/platform/testkit"
)

type authPort struct{ user string }

func (a authPort) Parse(*http.Request) (string, string, error) { return a.user, "admin", nil }

type fake struct {
	name  string
	ports any
}

func (f fake) Name() string             { return f.name }
func (f fake) Ports() any               { return f.ports }
func (f fake) MountRoutes(phttp.Router) {}

func TestPortsOf(t *testing.T) {
	type Ports struct {
		Auth     middleware.AuthPort
		sessions middleware.AuthPort
		Count    int
	}

	cases := []struct {
		name  string
		ports any
		want  string
	}{
		{"nil", nil, ""},
		{"direct", authPort{user: "direct"}, "direct"},
		{"field", Ports{Auth: authPort{user: "field"}}, "field"},
		{"pointer", &Ports{Auth: authPort{user: "ptr"}}, "ptr"},
		{"unexported only", Ports{sessions: authPort{user: "hidden"}}, ""},
		{"scalar", 42, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := PortsOf[middleware.AuthPort](fake{name: "auth", ports: c.ports})
			if ok != (c.want != "") {
				t.Fatalf("ok = %v", ok)
			}
			if ok {
				if uid, _, _ := got.Parse(nil); uid != c.want {
					t.Fatalf("user = %q want %q", uid, c.want)
				}
			}
		})
	}
}

func TestMustPortsOf(t *testing.T) {
	kit.MustPanic(t, func() { MustPortsOf[middleware.AuthPort](fake{name: "meta"}) })

	p := MustPortsOf[middleware.AuthPort](fake{name: "auth", ports: authPort{user: "admin"}})
	if uid, _, _ := p.Parse(nil); uid != "admin" {
		t.Fatalf("user = %q", uid)
	}
}
