// Package testkit holds small helpers shared by package tests
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// seams serializes tests that replace package level variables
var seams sync.Mutex

// Serial holds the seam lock until t finishes, call it before Swap
func Serial(t *testing.T) {
	t.Helper()
	seams.Lock()
	t.Cleanup(seams.Unlock)
}

// Swap replaces *target with v until t finishes
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	prev := *target
	t.Cleanup(func() { *target = prev })
	*target = v
}

// MustPanic fails t unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	panicked := func() (p bool) {
		defer func() { p = recover() != nil }()
		fn()
		return false
	}()
	if !panicked {
		t.Fatalf("expected a panic")
	}
}

// MustContain fails t unless out contains want
// long outputs are saved to a temp file instead of flooding the log
func MustContain(t *testing.T, out, want string) {
	t.Helper()
	if strings.Contains(out, want) {
		return
	}
	if len(out) <= 512 {
		t.Fatalf("missing %q in:\n%s", want, out)
	}
	dump := filepath.Join(t.TempDir(), "output.txt")
	_ = os.WriteFile(dump, []byte(out), 0o600)
	t.Fatalf("missing %q, output (%d bytes) saved to %s", want, len(out), dump)
}

// ReadFile returns dir/name as a string
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return string(b)
}

// Clock is a now func stopped at the given UTC time
func Clock(year int, month time.Month, day, hour, min, sec int) func() time.Time {
	at := time.Date(year, month, day, hour, min, sec, 0, time.UTC)
	return func() time.Time { return at }
}
