package decode

import (
	"github.com/DjordjeVuckovic/callbench/internal/apperr"
	"github.com/DjordjeVuckovic/callbench/internal/types/value"
)

const (
	FieldResult     = "result"
	FieldOperations = "operations"
	FieldMaxValue   = "max_value"
)

var (
	FullShape = Shape{
		Name: "BenchmarkResult",
		Fields: []Field{
			{Name: FieldResult, Type: Float},
			{Name: FieldOperations, Type: Uint32},
			{Name: FieldMaxValue, Type: Float},
		},
	}

	SimpleShape = Shape{
		Name: "SimpleResult",
		Fields: []Field{
			{Name: FieldResult, Type: Float},
		},
	}
)

// BenchmarkResult is the record returned by the full benchmark scripts.
type BenchmarkResult struct {
	Result     float64 `json:"result"`
	Operations uint32  `json:"operations"`
	MaxValue   float64 `json:"max_value"`
}

// SimpleResult is the record returned by the single-field variant.
type SimpleResult struct {
	Result float64 `json:"result"`
}

func DecodeResult(v value.Value) (BenchmarkResult, error) {
	f, err := Decode(v, FullShape)
	if err != nil {
		return BenchmarkResult{}, err
	}
	return BenchmarkResult{
		Result:     f.Float(FieldResult),
		Operations: f.Uint32(FieldOperations),
		MaxValue:   f.Float(FieldMaxValue),
	}, nil
}

func DecodeSimple(v value.Value) (SimpleResult, error) {
	f, err := Decode(v, SimpleShape)
	if err != nil {
		return SimpleResult{}, err
	}
	return SimpleResult{Result: f.Float(FieldResult)}, nil
}

// DecodeNumber accepts a bare scalar, as returned by probe expressions.
func DecodeNumber(v value.Value) (float64, error) {
	if n, ok := v.Number(); ok {
		return n, nil
	}
	return 0, apperr.NewShapeMismatch("number", v.TypeName())
}
