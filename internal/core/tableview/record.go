package tableview

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single name value pair used to build records
type Field struct {
	Name  string
	Value Value
}

// F is shorthand for a Field
func F(name string, v Value) Field { return Field{Name: name, Value: v} }

// Record is an ordered mapping from field name to Value
// key order is definition order and drives export headers
type Record struct {
	keys []string
	vals map[string]Value
}

// NewRecord builds a record, a repeated name overwrites the earlier value in place
func NewRecord(fields ...Field) Record {
	r := Record{keys: make([]string, 0, len(fields)), vals: make(map[string]Value, len(fields))}
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// Set stores v under name, new names are appended to the key order
func (r *Record) Set(name string, v Value) {
	if r.vals == nil {
		r.vals = map[string]Value{}
	}
	if _, ok := r.vals[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.vals[name] = v
}

// Get returns the value under name and whether it is present
func (r Record) Get(name string) (Value, bool) {
	v, ok := r.vals[name]
	return v, ok
}

// Keys returns a copy of the field names in order
func (r Record) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len is the number of fields
func (r Record) Len() int { return len(r.keys) }

// Values returns the values in key order
func (r Record) Values() []Value {
	out := make([]Value, 0, len(r.keys))
	for _, k := range r.keys {
		out = append(out, r.vals[k])
	}
	return out
}

// Coerce returns a copy with the named fields converted to the given kinds
// values that do not convert are left as they are
func (r Record) Coerce(kinds map[string]Kind) Record {
	out := NewRecord()
	for _, k := range r.keys {
		v := r.vals[k]
		if want, ok := kinds[k]; ok && want != KindNull {
			v, _ = v.Coerce(want)
		}
		out.Set(k, v)
	}
	return out
}

// MarshalJSON writes an object with keys in record order
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := r.vals[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping the key order of the document
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("tableview: record must be a JSON object")
	}
	out := NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("tableview: unexpected key token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var v Value
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("tableview: field %q: %w", name, err)
		}
		out.Set(name, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = out
	return nil
}
