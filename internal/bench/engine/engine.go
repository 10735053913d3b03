package engine

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/callbench/internal/bench/callback"
	"github.com/DjordjeVuckovic/callbench/internal/types/value"
)

type Kind string

const (
	Lua Kind = "lua"
	Go  Kind = "go"
)

var Kinds = []Kind{Lua, Go}

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case Lua, Go:
		return k, nil
	default:
		return "", fmt.Errorf("unsupported engine %q (want one of %v)", s, Kinds)
	}
}

// Interpreter is one embedded interpreter instance. It is not safe for
// concurrent use; every benchmark creates its own and closes it when done.
type Interpreter interface {
	Kind() Kind

	// Bind installs every callback of reg as a global function.
	Bind(reg *callback.Registry) error

	// Eval runs src and converts its result into a value.Value.
	Eval(ctx context.Context, src string) (value.Value, error)

	// Expr wraps a single expression into source whose result is that expression.
	Expr(expr string) string

	Close() error
}

func New(kind Kind) (Interpreter, error) {
	switch kind {
	case Lua:
		return NewLuaInterpreter(), nil
	case Go:
		return NewGoInterpreter()
	default:
		return nil, fmt.Errorf("unsupported engine %q", kind)
	}
}

// NewWithRegistry creates an interpreter with reg already bound. The
// interpreter is closed again if binding fails.
func NewWithRegistry(kind Kind, reg *callback.Registry) (Interpreter, error) {
	in, err := New(kind)
	if err != nil {
		return nil, err
	}
	if err := in.Bind(reg); err != nil {
		_ = in.Close()
		return nil, err
	}
	return in, nil
}
