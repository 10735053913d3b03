// Package value models values returned by embedded script interpreters.
//
// A Value is a tagged variant: exactly one of the payloads is meaningful and
// Kind reports which. Interpreter adapters build values with the constructors
// below; consumers switch on Kind instead of inspecting interpreter types.
package value

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindRecord
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindRecord:
		return "record"
	case KindOther:
		return "other"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

type Value struct {
	kind     Kind
	typeName string
	b        bool
	i        int64
	f        float64
	s        string
	fields   map[string]Value
}

func Nil() Value { return Value{kind: KindNil, typeName: "nil"} }

func Bool(b bool) Value { return Value{kind: KindBool, typeName: "boolean", b: b} }

func Int(i int64) Value { return Value{kind: KindInt, typeName: "integer", i: i} }

func Float(f float64) Value { return Value{kind: KindFloat, typeName: "number", f: f} }

func Text(s string) Value { return Value{kind: KindText, typeName: "string", s: s} }

// Record copies fields; later changes to the map do not affect the value.
func Record(fields map[string]Value) Value {
	cp := make(map[string]Value, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return Value{kind: KindRecord, typeName: "record", fields: cp}
}

// Other is any value the host cannot represent (functions, userdata, threads).
func Other(typeName string) Value {
	return Value{kind: KindOther, typeName: typeName}
}

// Named returns a copy of v reporting typeName as its interpreter type name.
func (v Value) Named(typeName string) Value {
	v.typeName = typeName
	return v
}

func (v Value) Kind() Kind { return v.kind }

// TypeName is the interpreter-level type name ("number", "table", ...).
func (v Value) TypeName() string {
	if v.typeName == "" {
		return v.kind.String()
	}
	return v.typeName
}

func (v Value) IsNil() bool { return v.kind == KindNil }

func (v Value) IsNumber() bool { return v.kind == KindInt || v.kind == KindFloat }

func (v Value) IsRecord() bool { return v.kind == KindRecord }

func (v Value) Bool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) Int() (int64, bool) { return v.i, v.kind == KindInt }

func (v Value) Float() (float64, bool) { return v.f, v.kind == KindFloat }

func (v Value) Text() (string, bool) { return v.s, v.kind == KindText }

// Number widens Int and Float payloads to float64.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Field looks up a named field. It reports false for non-record values.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindRecord {
		return Value{}, false
	}
	f, ok := v.fields[name]
	return f, ok
}

// Keys returns the record's field names in sorted order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (v Value) Len() int { return len(v.fields) }

func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return strconv.Quote(v.s)
	case KindRecord:
		parts := make([]string, 0, len(v.fields))
		for _, k := range v.Keys() {
			parts = append(parts, k+"="+v.fields[k].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<" + v.TypeName() + ">"
	}
}
