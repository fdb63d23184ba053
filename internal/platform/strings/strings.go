// Package strings provides small string helpers shared by modules and commands
package strings

import std "strings"

// IfEmpty returns def if in is empty, otherwise returns in
func IfEmpty[T any](in []T, def []T) []T {
	if len(in) == 0 {
		return def
	}
	return in
}

// MustString returns s if it has non whitespace content otherwise panics
// name is used in the panic message so you can tell what was missing
func MustString(s string, name string) string {
	if std.TrimSpace(s) == "" {
		panic(name + " is required")
	}
	return s
}

// MustPrefix normalizes and asserts a root path like /reports
// ensures a single leading slash and no trailing slash
// panics if the input is empty after trimming
func MustPrefix(s string) string {
	s = "/" + std.Trim(std.TrimSpace(s), " /")
	if s == "/" {
		panic("root path is required")
	}
	return s
}

// Pair splits s around the first sep and trims both halves
// ok is false when sep is missing or the key is blank
func Pair(s, sep string) (key, val string, ok bool) {
	k, v, found := std.Cut(s, sep)
	key, val = std.TrimSpace(k), std.TrimSpace(v)
	return key, val, found && key != ""
}

// List splits a comma separated list, dropping blank items
func List(s string) []string {
	var out []string
	for _, it := range std.Split(s, ",") {
		if it = std.TrimSpace(it); it != "" {
			out = append(out, it)
		}
	}
	return out
}
