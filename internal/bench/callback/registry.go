package callback

import (
	"errors"
	"fmt"
	"sort"

	"github.com/DjordjeVuckovic/callbench/internal/apperr"
)

const (
	LengthFastName  = "length_fast"
	DistanceName    = "distance"
	ComplexCalcName = "complex_calc"
)

const MaxArity = 4

var errDuplicate = errors.New("already registered")

// Func receives exactly Arity arguments.
type Func func(args []float64) float64

type Callback struct {
	Name  string
	Arity int
	Fn    Func
}

func (c Callback) Call(args ...float64) float64 {
	return c.Fn(args)
}

func (c Callback) validate() error {
	if c.Name == "" {
		return fmt.Errorf("callback has no name")
	}
	if c.Arity < 1 || c.Arity > MaxArity {
		return fmt.Errorf("arity %d outside 1..%d", c.Arity, MaxArity)
	}
	if c.Fn == nil {
		return fmt.Errorf("callback has no function")
	}
	return nil
}

// Registry holds the callbacks bound into each interpreter. It is filled
// before any interpreter is created and only read afterwards.
type Registry struct {
	byName map[string]Callback
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Callback)}
}

func (r *Registry) Register(cb Callback) error {
	if err := cb.validate(); err != nil {
		return apperr.NewRegistration(cb.Name, err)
	}
	if _, exists := r.byName[cb.Name]; exists {
		return apperr.NewRegistration(cb.Name, errDuplicate)
	}
	r.byName[cb.Name] = cb
	return nil
}

func (r *Registry) Get(name string) (Callback, bool) {
	cb, ok := r.byName[name]
	return cb, ok
}

// All returns the callbacks sorted by name.
func (r *Registry) All() []Callback {
	out := make([]Callback, 0, len(r.byName))
	for _, cb := range r.byName {
		out = append(out, cb)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) Len() int {
	return len(r.byName)
}

// NewDefaultRegistry registers length_fast, distance and complex_calc.
func NewDefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	defaults := []Callback{
		{Name: LengthFastName, Arity: 2, Fn: func(a []float64) float64 { return Length(a[0], a[1]) }},
		{Name: DistanceName, Arity: 4, Fn: func(a []float64) float64 { return Distance(a[0], a[1], a[2], a[3]) }},
		{Name: ComplexCalcName, Arity: 2, Fn: func(a []float64) float64 { return ComplexCalc(a[0], a[1]) }},
	}
	for _, cb := range defaults {
		if err := r.Register(cb); err != nil {
			return nil, err
		}
	}
	return r, nil
}
