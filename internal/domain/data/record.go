package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a single cell. Raw always holds the textual form as it is
// stored; numeric cells also carry the number parsed at insert time.
type Value struct {
	Raw     string
	Num     float64
	Numeric bool
}

// Text creates a non-numeric value
func Text(raw string) Value {
	return Value{Raw: raw}
}

// Number parses raw as a float64 and returns a numeric value
func Number(raw string) (Value, error) {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Value{}, err
	}
	return Value{Raw: raw, Num: n, Numeric: true}, nil
}

// Float returns the numeric form of the value, parsing Raw if the value
// was not typed as a number
func (v Value) Float() (float64, error) {
	if v.Numeric {
		return v.Num, nil
	}
	return strconv.ParseFloat(v.Raw, 64)
}

func (v Value) String() string {
	return v.Raw
}

// Field is one named cell of a record
type Field struct {
	Name  string
	Value Value
}

// Record represents a single table row as an ordered list of fields.
// Records are values: every mutating helper returns a fresh copy.
type Record struct {
	fields []Field
}

// NewRecord creates a record from fields in the given order
func NewRecord(fields ...Field) Record {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return Record{fields: cp}
}

// Len returns the number of fields
func (r Record) Len() int {
	return len(r.fields)
}

// Get retrieves a value by attribute name
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Raw returns the textual value of an attribute
func (r Record) Raw(name string) (string, bool) {
	v, ok := r.Get(name)
	return v.Raw, ok
}

// Names returns attribute names in record order
func (r Record) Names() []string {
	names := make([]string, len(r.fields))
	for i, f := range r.fields {
		names[i] = f.Name
	}
	return names
}

// Fields returns a copy of the ordered fields
func (r Record) Fields() []Field {
	cp := make([]Field, len(r.fields))
	copy(cp, r.fields)
	return cp
}

// Values returns the raw values in record order
func (r Record) Values() []string {
	vals := make([]string, len(r.fields))
	for i, f := range r.fields {
		vals[i] = f.Value.Raw
	}
	return vals
}

// Copy creates a copy of the record to prevent aliasing between tables
func (r Record) Copy() Record {
	return NewRecord(r.fields...)
}

// Merge overlays other onto r. Fields of other replace same-named fields
// of r in place; new names are appended in other's order.
func (r Record) Merge(other Record) Record {
	merged := r.Copy()
	for _, f := range other.fields {
		replaced := false
		for i := range merged.fields {
			if merged.fields[i].Name == f.Name {
				merged.fields[i].Value = f.Value
				replaced = true
				break
			}
		}
		if !replaced {
			merged.fields = append(merged.fields, f)
		}
	}
	return merged
}

// Map returns the record as a name → raw value map
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.fields))
	for _, f := range r.fields {
		m[f.Name] = f.Value.Raw
	}
	return m
}

// MarshalJSON writes the record as a JSON object keeping field order
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var val []byte
		if f.Value.Numeric {
			val, err = json.Marshal(f.Value.Num)
		} else {
			val, err = json.Marshal(f.Value.Raw)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String returns a string representation for debugging
func (r Record) String() string {
	return fmt.Sprintf("Record%v", r.fields)
}
