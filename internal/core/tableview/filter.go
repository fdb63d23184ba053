package tableview

import (
	"strings"
	"time"

	"backoffice/internal/core/normalize"
)

// DateRange bounds a date field inclusively, a nil bound is open
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Contains reports whether t lies within the range
func (d DateRange) Contains(t time.Time) bool {
	if d.Start != nil && t.Before(*d.Start) {
		return false
	}
	if d.End != nil && t.After(*d.End) {
		return false
	}
	return true
}

// IsZero reports an unbounded range
func (d DateRange) IsZero() bool { return d.Start == nil && d.End == nil }

// FieldGroup accepts a record when any of Fields holds a value in Values
// used where one choice applies to several columns, eg a store that is either origin or destination
// Values are coerced to each field's value kind before comparing, so one group can span columns of different kinds
type FieldGroup struct {
	Fields []string `json:"fields"`
	Values []Value  `json:"values"`
}

// FilterSpec describes which records survive Filter
// the zero FilterSpec keeps everything
type FilterSpec struct {
	// Search is matched case insensitively against the joined field values
	Search string `json:"search,omitempty"`

	// Fields maps a field to its accepted values, an empty set leaves the field unconstrained
	Fields map[string][]Value `json:"fields,omitempty"`

	// AnyOf groups are each satisfied when one of their fields matches
	AnyOf []FieldGroup `json:"any_of,omitempty"`

	// DateField names the field DateRange applies to
	DateField string     `json:"date_field,omitempty"`
	DateRange *DateRange `json:"date_range,omitempty"`
}

// IsZero reports whether s constrains nothing
func (s FilterSpec) IsZero() bool {
	if s.Search != "" {
		return false
	}
	for _, vs := range s.Fields {
		if len(vs) > 0 {
			return false
		}
	}
	for _, g := range s.AnyOf {
		if len(g.Values) > 0 && len(g.Fields) > 0 {
			return false
		}
	}
	return s.DateRange == nil || s.DateRange.IsZero()
}

// Filter returns the records matching spec in their original order
// the input slice is never modified
func Filter(records []Record, spec FilterSpec) []Record {
	out := make([]Record, 0, len(records))
	if spec.IsZero() {
		return append(out, records...)
	}
	m := newMatcher(spec)
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Match reports whether a single record passes spec
func Match(r Record, spec FilterSpec) bool {
	return newMatcher(spec).match(r)
}

type matcher struct {
	spec   FilterSpec
	needle string
}

func newMatcher(spec FilterSpec) matcher {
	return matcher{spec: spec, needle: normalize.Lower(spec.Search)}
}

func (m matcher) match(r Record) bool {
	return m.matchSearch(r) && m.matchFields(r) && m.matchGroups(r) && m.matchDates(r)
}

func (m matcher) matchSearch(r Record) bool {
	if m.needle == "" {
		return true
	}
	return strings.Contains(normalize.Lower(SearchText(r)), m.needle)
}

func (m matcher) matchFields(r Record) bool {
	for name, accepted := range m.spec.Fields {
		if len(accepted) == 0 {
			continue
		}
		v, ok := r.Get(name)
		if !ok || !containsValue(accepted, v) {
			return false
		}
	}
	return true
}

func (m matcher) matchGroups(r Record) bool {
	for _, g := range m.spec.AnyOf {
		if len(g.Values) == 0 || len(g.Fields) == 0 {
			continue
		}
		hit := false
		for _, name := range g.Fields {
			if v, ok := r.Get(name); ok && containsCoerced(g.Values, v) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

func (m matcher) matchDates(r Record) bool {
	dr := m.spec.DateRange
	if dr == nil || dr.IsZero() {
		return true
	}
	v, ok := r.Get(m.spec.DateField)
	if !ok {
		return false
	}
	t, ok := v.AsTime()
	if !ok {
		return false
	}
	return dr.Contains(t)
}

// SearchText joins the record's values with single spaces, in key order
func SearchText(r Record) string {
	var b strings.Builder
	for i, v := range r.Values() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.String())
	}
	return b.String()
}

// containsCoerced is containsValue after converting each candidate to v's kind
func containsCoerced(set []Value, v Value) bool {
	for _, a := range set {
		if c, ok := a.Coerce(v.Kind()); ok && c.Equal(v) {
			return true
		}
	}
	return false
}

func containsValue(set []Value, v Value) bool {
	for _, a := range set {
		if a.Equal(v) {
			return true
		}
	}
	return false
}
