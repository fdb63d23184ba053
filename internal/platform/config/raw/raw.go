// Package raw reads env vars during bootstrap.
// It has no logger dependency so the logger can use it
package raw

import (
	"os"
	"strings"
)

// Conf is a namespaced view over environment variables, eg "LOG_"
type Conf struct{ prefix string }

// New returns a root Conf (no prefix)
func New() Conf { return Conf{} }

// Prefix returns a child Conf with an additional prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Name is the full variable name for key
func (c Conf) Name(key string) string { return c.prefix + key }

// Get returns the trimmed env var or def if empty
func (c Conf) Get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(c.Name(key))); v != "" {
		return v
	}
	return def
}

// GetBool reads 1, true or yes as true, def when unset
func (c Conf) GetBool(key string, def bool) bool {
	switch strings.ToLower(c.Get(key, "")) {
	case "":
		return def
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
