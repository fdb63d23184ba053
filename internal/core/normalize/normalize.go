// Package normalize lowers text into a comparable search key
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFC normalization
// 3 Unicode default lower casing, no full case folding so ß stays ß
package normalize

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh transformer chains, a chain keeps state between calls
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFC,
			cases.Lower(language.Und),
		)
	},
}

// Lower returns the lower cased NFC form of s
// whitespace is kept as is
func Lower(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Contains reports whether needle occurs in haystack ignoring case
// an empty needle is contained in everything
func Contains(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(Lower(haystack), Lower(needle))
}
