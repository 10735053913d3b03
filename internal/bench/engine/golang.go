package engine

import (
	"context"
	"fmt"
	"go/token"
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/DjordjeVuckovic/callbench/internal/apperr"
	"github.com/DjordjeVuckovic/callbench/internal/bench/callback"
	"github.com/DjordjeVuckovic/callbench/internal/types/value"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// hostImportPath is the package the interpreter resolves bound callbacks
// from. Scripts never import it; Bind aliases every symbol as a global.
const hostImportPath = "callbench/host"

// Sources declaring Run are evaluated and then Run's result is returned.
var runFuncRegex = regexp.MustCompile(`(?m)^func\s+Run\s*\(\s*\)`)

type GoInterpreter struct {
	in *interp.Interpreter
}

func NewGoInterpreter() (*GoInterpreter, error) {
	in := interp.New(interp.Options{})
	if err := in.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("load stdlib symbols: %w", err)
	}
	return &GoInterpreter{in: in}, nil
}

func (g *GoInterpreter) Kind() Kind { return Go }

func (g *GoInterpreter) Bind(reg *callback.Registry) error {
	if g.in == nil {
		return apperr.NewRegistration("", fmt.Errorf("interpreter is closed"))
	}
	if reg.Len() == 0 {
		return nil
	}

	symbols := make(map[string]reflect.Value, reg.Len())
	var decl strings.Builder
	decl.WriteString("package main\n\nimport host \"" + hostImportPath + "\"\n\nvar (\n")
	for _, cb := range reg.All() {
		if !token.IsIdentifier(cb.Name) {
			return apperr.NewRegistration(cb.Name, fmt.Errorf("not a valid Go identifier"))
		}
		fn, err := goCallback(cb)
		if err != nil {
			return apperr.NewRegistration(cb.Name, err)
		}
		exported := "Fn_" + cb.Name
		symbols[exported] = fn
		fmt.Fprintf(&decl, "\t%s = host.%s\n", cb.Name, exported)
	}
	decl.WriteString(")\n")

	if err := g.in.Use(interp.Exports{hostImportPath + "/host": symbols}); err != nil {
		return apperr.NewRegistration("", fmt.Errorf("export callbacks: %w", err))
	}
	if _, err := g.in.Eval(decl.String()); err != nil {
		return apperr.NewRegistration("", fmt.Errorf("declare callbacks: %w", err))
	}
	return nil
}

func goCallback(cb callback.Callback) (reflect.Value, error) {
	fn := cb.Fn
	switch cb.Arity {
	case 1:
		return reflect.ValueOf(func(a float64) float64 {
			return fn([]float64{a})
		}), nil
	case 2:
		return reflect.ValueOf(func(a, b float64) float64 {
			return fn([]float64{a, b})
		}), nil
	case 3:
		return reflect.ValueOf(func(a, b, c float64) float64 {
			return fn([]float64{a, b, c})
		}), nil
	case 4:
		return reflect.ValueOf(func(a, b, c, d float64) float64 {
			return fn([]float64{a, b, c, d})
		}), nil
	default:
		return reflect.Value{}, fmt.Errorf("unsupported arity %d", cb.Arity)
	}
}

func (g *GoInterpreter) Eval(ctx context.Context, src string) (value.Value, error) {
	if g.in == nil {
		return value.Value{}, apperr.NewScript(string(Go), fmt.Errorf("interpreter is closed"))
	}

	res, err := g.in.EvalWithContext(ctx, src)
	if err != nil {
		return value.Value{}, apperr.NewScript(string(Go), err)
	}
	if runFuncRegex.MatchString(src) {
		res, err = g.in.EvalWithContext(ctx, "main.Run()")
		if err != nil {
			return value.Value{}, apperr.NewScript(string(Go), err)
		}
	}
	return fromReflect(res), nil
}

func (g *GoInterpreter) Expr(expr string) string {
	return expr
}

func (g *GoInterpreter) Close() error {
	g.in = nil
	return nil
}

// fromReflect converts an interpreter result. Maps keyed by strings become
// records; everything without a host representation becomes Other.
func fromReflect(rv reflect.Value) value.Value {
	if !rv.IsValid() {
		return value.Nil()
	}
	for rv.Kind() == reflect.Interface || rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return value.Nil()
		}
		rv = rv.Elem()
	}

	typeName := rv.Type().String()
	switch rv.Kind() {
	case reflect.Bool:
		return value.Bool(rv.Bool()).Named(typeName)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return value.Int(rv.Int()).Named(typeName)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return value.Other(typeName)
		}
		return value.Int(int64(u)).Named(typeName)
	case reflect.Float32, reflect.Float64:
		return value.Float(rv.Float()).Named(typeName)
	case reflect.String:
		return value.Text(rv.String()).Named(typeName)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return value.Other(typeName)
		}
		fields := make(map[string]value.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			fields[iter.Key().String()] = fromReflect(iter.Value())
		}
		return value.Record(fields).Named(typeName)
	default:
		return value.Other(typeName)
	}
}
