package tableview

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the sort order
type Direction string

const (
	// Asc sorts smallest first
	Asc Direction = "asc"
	// Desc sorts largest first
	Desc Direction = "desc"
)

// SortSpec selects the sort field and direction
// an empty Field keeps input order
type SortSpec struct {
	Field     string    `json:"field,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// IsZero reports no active sort
func (s SortSpec) IsZero() bool { return s.Field == "" }

// DefaultLocale is the collation language for text columns
var DefaultLocale = language.Spanish

type sortConfig struct {
	tag language.Tag
}

// SortOption tweaks Sort
type SortOption func(*sortConfig)

// WithLocale selects the collation language for string comparisons
func WithLocale(tag language.Tag) SortOption {
	return func(c *sortConfig) { c.tag = tag }
}

// Sort returns a stably sorted copy of records
// numbers, strings and dates compare within their kind, every other pairing compares equal
// direction only flips the sign of the comparison
func Sort(records []Record, spec SortSpec, opts ...SortOption) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	if spec.IsZero() || len(out) < 2 {
		return out
	}

	cfg := sortConfig{tag: DefaultLocale}
	for _, o := range opts {
		o(&cfg)
	}
	cmpFn := Comparator(spec, collate.New(cfg.tag))
	slices.SortStableFunc(out, cmpFn)
	return out
}

// Comparator builds the record comparison used by Sort
// the collator is not safe for concurrent use, give each goroutine its own
func Comparator(spec SortSpec, coll *collate.Collator) func(a, b Record) int {
	sign := 1
	if spec.Direction == Desc {
		sign = -1
	}
	return func(a, b Record) int {
		av, _ := a.Get(spec.Field)
		bv, _ := b.Get(spec.Field)
		return sign * compareValues(av, bv, coll)
	}
}

func compareValues(a, b Value, coll *collate.Collator) int {
	if a.kind != b.kind {
		return 0
	}
	switch a.kind {
	case KindNumber:
		return cmp.Compare(a.n, b.n)
	case KindString:
		if coll == nil {
			return cmp.Compare(a.s, b.s)
		}
		return coll.CompareString(a.s, b.s)
	case KindDate:
		return a.t.Compare(b.t)
	default:
		return 0
	}
}

// ToggleSort advances the sort for a clicked column
// the same field flips direction, a different field starts ascending
func ToggleSort(current SortSpec, field string) SortSpec {
	if current.Field == field && current.Direction == Asc {
		return SortSpec{Field: field, Direction: Desc}
	}
	return SortSpec{Field: field, Direction: Asc}
}
