// Package config reads typed settings from namespaced environment variables
// a value that does not parse is logged and the default is used, only MayEnum refuses to start
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/platform/config/raw"
	"backoffice/internal/platform/logger"
)

// Conf reads variables under a prefix, eg CORE_API_ or SERVICE_PGSQL_
type Conf struct{ env raw.Conf }

// New reads unprefixed variables
func New() Conf { return Conf{env: raw.New()} }

// Prefix narrows c, eg New().Prefix("CORE_API_").Prefix("REPORTS_")
func (c Conf) Prefix(p string) Conf { return Conf{env: c.env.Prefix(p)} }

func (c Conf) key(k string) string { return c.env.Name(k) }

func parse[T any](c Conf, key string, def T, fn func(string) (T, error)) T {
	s := c.env.Get(key, "")
	if s == "" {
		return def
	}
	v, err := fn(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Err(err).Msg("bad config value, using default")
		return def
	}
	return v
}

// MayString is the trimmed value or def
func (c Conf) MayString(key, def string) string { return c.env.Get(key, def) }

// MayInt is the value as an int or def
func (c Conf) MayInt(key string, def int) int { return parse(c, key, def, strconv.Atoi) }

// MayIntIn is MayInt, values outside [lo, hi] count as bad
func (c Conf) MayIntIn(key string, def, lo, hi int) int {
	return parse(c, key, def, func(s string) (int, error) {
		v, err := strconv.Atoi(s)
		if err == nil && (v < lo || v > hi) {
			err = fmt.Errorf("outside [%d, %d]", lo, hi)
		}
		return v, err
	})
}

// MayBool accepts what strconv.ParseBool does
func (c Conf) MayBool(key string, def bool) bool { return parse(c, key, def, strconv.ParseBool) }

// MayDuration accepts time.ParseDuration strings, eg 750ms
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return parse(c, key, def, time.ParseDuration)
}

// MayList splits a comma separated value, blank items are dropped
func (c Conf) MayList(key string, def []string) []string {
	return parse(c, key, def, func(s string) ([]string, error) {
		var out []string
		for _, item := range strings.Split(s, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("empty list")
		}
		return out, nil
	})
}

// MayEnum is the value lowercased when it is one of allowed, def when unset
// anything else panics, a typo here would silently change behaviour
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.env.Get(key, "")
	if v == "" {
		return def
	}
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return strings.ToLower(a)
		}
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("invalid enum value")
	return ""
}
