// Package tableview filters, sorts and pages in-memory tabular records
//
// A Record is an ordered set of named Values. Values are a tagged union so
// comparisons dispatch on the tag instead of probing dynamic types.
package tableview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Kind tags the payload a Value carries
type Kind uint8

const (
	// KindNull is a missing or null value
	KindNull Kind = iota
	// KindString is free text
	KindString
	// KindNumber is a float64
	KindNumber
	// KindBool is true or false
	KindBool
	// KindDate is an instant in time
	KindDate
)

// String returns the lower case kind name
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	default:
		return "null"
	}
}

// ParseKind maps a kind name back to a Kind, unknown names are KindNull
func ParseKind(s string) Kind {
	switch s {
	case "string":
		return KindString
	case "number":
		return KindNumber
	case "bool":
		return KindBool
	case "date":
		return KindDate
	default:
		return KindNull
	}
}

// DateLayout is the day precision layout used for display and parsing
const DateLayout = "2006-01-02"

// dateLayouts are tried in order when a string is read as a date
var dateLayouts = []string{DateLayout, time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// Value is a single typed cell
// the zero Value is null
type Value struct {
	kind Kind
	s    string
	n    float64
	b    bool
	t    time.Time
}

// Null returns the null Value
func Null() Value { return Value{} }

// String wraps text
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number wraps a float64
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// Int wraps an int as a Number
func Int(n int) Value { return Number(float64(n)) }

// Bool wraps a bool
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Date wraps an instant
func Date(t time.Time) Value { return Value{kind: KindDate, t: t} }

// Day builds a Date at UTC midnight
func Day(year int, month time.Month, day int) Value {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Kind returns the tag
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null
func (v Value) IsNull() bool { return v.kind == KindNull }

// Text returns the string payload and whether v is a string
func (v Value) Text() (string, bool) { return v.s, v.kind == KindString }

// Float returns the number payload and whether v is a number
func (v Value) Float() (float64, bool) { return v.n, v.kind == KindNumber }

// Truth returns the bool payload and whether v is a bool
func (v Value) Truth() (bool, bool) { return v.b, v.kind == KindBool }

// Time returns the date payload and whether v is a date
func (v Value) Time() (time.Time, bool) { return v.t, v.kind == KindDate }

// String renders v the way it appears in exports and search text
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindDate:
		return formatDate(v.t)
	default:
		return ""
	}
}

// Equal reports same kind and equal payload, dates compare by instant
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == o.s
	case KindNumber:
		return v.n == o.n
	case KindBool:
		return v.b == o.b
	case KindDate:
		return v.t.Equal(o.t)
	default:
		return true
	}
}

// AsTime reads v as an instant
// dates return their payload and strings are parsed with the known layouts
func (v Value) AsTime() (time.Time, bool) {
	switch v.kind {
	case KindDate:
		return v.t, true
	case KindString:
		return ParseDate(v.s)
	default:
		return time.Time{}, false
	}
}

// Coerce converts v to kind k when the payload allows it
// null stays null, unconvertible values are returned unchanged with false
func (v Value) Coerce(k Kind) (Value, bool) {
	if v.kind == k || v.kind == KindNull {
		return v, true
	}
	switch k {
	case KindString:
		return String(v.String()), true
	case KindDate:
		if t, ok := v.AsTime(); ok {
			return Date(t), true
		}
	case KindNumber:
		if v.kind == KindString {
			if n, err := strconv.ParseFloat(v.s, 64); err == nil {
				return Number(n), true
			}
		}
	case KindBool:
		if v.kind == KindString {
			if b, err := strconv.ParseBool(v.s); err == nil {
				return Bool(b), true
			}
		}
	}
	return v, false
}

// ParseDate reads s with the known layouts
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatDate(t time.Time) string {
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 && u.Second() == 0 && u.Nanosecond() == 0 {
		return u.Format(DateLayout)
	}
	return t.Format(time.RFC3339)
}

// MarshalJSON writes the natural JSON form, dates as strings
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindNumber:
		if math.IsNaN(v.n) || math.IsInf(v.n, 0) {
			return []byte("null"), nil
		}
		return []byte(strconv.FormatFloat(v.n, 'f', -1, 64)), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindDate:
		return json.Marshal(formatDate(v.t))
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON reads scalars, nested arrays and objects are kept as their compact text
// strings are never guessed as dates, use Coerce with a column kind
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("tableview: empty value")
	}
	switch data[0] {
	case 'n':
		*v = Null()
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = Bool(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
	case '[', '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, data); err != nil {
			return err
		}
		*v = String(buf.String())
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("tableview: bad number %q: %w", data, err)
		}
		*v = Number(n)
	}
	return nil
}
