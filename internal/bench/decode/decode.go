// Package decode converts script values into typed benchmark records.
//
// Decoding is driven by a Shape: an ordered list of named fields with their
// host types. Every shape goes through the same lookup-and-coerce pass, and a
// record is returned only when every field succeeds.
package decode

import (
	"fmt"
	"math"
	"strconv"

	"github.com/DjordjeVuckovic/callbench/internal/apperr"
	"github.com/DjordjeVuckovic/callbench/internal/types/value"
)

type FieldType int

const (
	Float FieldType = iota
	Uint32
)

func (t FieldType) String() string {
	switch t {
	case Float:
		return "float64"
	case Uint32:
		return "uint32"
	default:
		return "field_type(" + strconv.Itoa(int(t)) + ")"
	}
}

type Field struct {
	Name string
	Type FieldType
}

type Shape struct {
	Name   string
	Fields []Field
}

// Fields holds the coerced values of one decoded record.
type Fields struct {
	floats map[string]float64
	uints  map[string]uint32
}

func (f Fields) Float(name string) float64 { return f.floats[name] }

func (f Fields) Uint32(name string) uint32 { return f.uints[name] }

// maxExactInt is the largest integer magnitude a float64 holds exactly.
const maxExactInt = 1 << 53

func Decode(v value.Value, shape Shape) (Fields, error) {
	if !v.IsRecord() {
		return Fields{}, apperr.NewShapeMismatch(shape.Name, v.TypeName())
	}

	out := Fields{
		floats: make(map[string]float64),
		uints:  make(map[string]uint32),
	}
	for _, field := range shape.Fields {
		raw, err := lookup(v, field.Name)
		if err != nil {
			return Fields{}, err
		}
		switch field.Type {
		case Float:
			f, err := toFloat(field.Name, raw)
			if err != nil {
				return Fields{}, err
			}
			out.floats[field.Name] = f
		case Uint32:
			u, err := toUint32(field.Name, raw)
			if err != nil {
				return Fields{}, err
			}
			out.uints[field.Name] = u
		default:
			return Fields{}, apperr.NewTypeCoercion(field.Name, field.Type.String(), raw.String())
		}
	}
	return out, nil
}

func lookup(rec value.Value, name string) (value.Value, error) {
	raw, ok := rec.Field(name)
	if !ok || raw.IsNil() {
		return value.Value{}, apperr.NewFieldAccess(name, apperr.ErrFieldMissing)
	}
	if !raw.IsNumber() {
		return value.Value{}, apperr.NewFieldAccess(name, fmt.Errorf("expected a number, got %s", raw.TypeName()))
	}
	return raw, nil
}

func toFloat(name string, raw value.Value) (float64, error) {
	if i, ok := raw.Int(); ok {
		if i > maxExactInt || i < -maxExactInt {
			return 0, apperr.NewTypeCoercion(name, Float.String(), raw.String())
		}
		return float64(i), nil
	}
	f, _ := raw.Float()
	return f, nil
}

func toUint32(name string, raw value.Value) (uint32, error) {
	if i, ok := raw.Int(); ok {
		if i < 0 || i > math.MaxUint32 {
			return 0, apperr.NewTypeCoercion(name, Uint32.String(), raw.String())
		}
		return uint32(i), nil
	}
	f, _ := raw.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < 0 || f > math.MaxUint32 {
		return 0, apperr.NewTypeCoercion(name, Uint32.String(), raw.String())
	}
	return uint32(f), nil
}
