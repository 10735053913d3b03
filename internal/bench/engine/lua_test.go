package engine

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/callbench/internal/apperr"
	"github.com/DjordjeVuckovic/callbench/internal/bench/callback"
	"github.com/DjordjeVuckovic/callbench/internal/bench/decode"
	"github.com/DjordjeVuckovic/callbench/internal/types/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lengthRegistry(t *testing.T) *callback.Registry {
	t.Helper()
	reg := callback.NewRegistry()
	require.NoError(t, reg.Register(callback.Callback{
		Name:  "length",
		Arity: 2,
		Fn:    func(a []float64) float64 { return callback.Length(a[0], a[1]) },
	}))
	return reg
}

func defaultRegistry(t *testing.T) *callback.Registry {
	t.Helper()
	reg, err := callback.NewDefaultRegistry()
	require.NoError(t, err)
	return reg
}

func newLua(t *testing.T, reg *callback.Registry) Interpreter {
	t.Helper()
	in, err := NewWithRegistry(Lua, reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = in.Close() })
	return in
}

func TestLua_CallbackRoundTrip(t *testing.T) {
	in := newLua(t, lengthRegistry(t))

	v, err := in.Eval(context.Background(), "return length(3, 4)")
	require.NoError(t, err)

	n, err := decode.DecodeNumber(v)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, n, 1e-10)
}

func TestLua_DefaultCallbacks(t *testing.T) {
	in := newLua(t, defaultRegistry(t))
	ctx := context.Background()

	tests := []struct {
		expr string
		want float64
	}{
		{expr: "length_fast(1, 1)", want: callback.Length(1, 1)},
		{expr: "distance(0, 0, 3, 4)", want: 5},
		{expr: "complex_calc(0.25, 15)", want: callback.ComplexCalc(0.25, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := in.Eval(ctx, in.Expr(tt.expr))
			require.NoError(t, err)
			n, ok := v.Float()
			require.True(t, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestLua_DecodesResultTable(t *testing.T) {
	in := newLua(t, callback.NewRegistry())

	v, err := in.Eval(context.Background(), `
		return {
			result = 42.5,
			operations = 1000,
			max_value = 99.9
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, "table", v.TypeName())

	got, err := decode.DecodeResult(v)
	require.NoError(t, err)
	assert.Equal(t, 42.5, got.Result)
	assert.Equal(t, uint32(1000), got.Operations)
	assert.Equal(t, 99.9, got.MaxValue)
}

func TestLua_OperationCountIsExact(t *testing.T) {
	in := newLua(t, defaultRegistry(t))

	const iterations, opsPerIteration = 2500, 3
	v, err := in.Eval(context.Background(), `
		local sum, operations, max_value = 0.0, 0, 0.0
		for i = 1, 2500 do
			local len = length_fast(i * 0.5, i * 0.3)
			local dist = distance(0, 0, len, i)
			local complex = complex_calc(i * 0.01, 10 + (i % 20))
			local combined = len + dist + complex
			sum = sum + combined
			operations = operations + 3
			if combined > max_value then
				max_value = combined
			end
		end
		return { result = sum, operations = operations, max_value = max_value }
	`)
	require.NoError(t, err)

	got, err := decode.DecodeResult(v)
	require.NoError(t, err)
	assert.Equal(t, uint32(iterations*opsPerIteration), got.Operations)
	assert.Greater(t, got.MaxValue, 0.0)
	assert.LessOrEqual(t, got.MaxValue, got.Result)
}

func TestLua_Conversions(t *testing.T) {
	in := newLua(t, callback.NewRegistry())
	ctx := context.Background()

	tests := []struct {
		src      string
		kind     value.Kind
		typeName string
	}{
		{src: "return 1.5", kind: value.KindFloat, typeName: "number"},
		{src: "return 'x'", kind: value.KindText, typeName: "string"},
		{src: "return true", kind: value.KindBool, typeName: "boolean"},
		{src: "return nil", kind: value.KindNil, typeName: "nil"},
		{src: "return", kind: value.KindNil, typeName: "nil"},
		{src: "return print", kind: value.KindOther, typeName: "function"},
		{src: "return {}", kind: value.KindRecord, typeName: "table"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			v, err := in.Eval(ctx, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.typeName, v.TypeName())
		})
	}

	t.Run("only string keys become fields", func(t *testing.T) {
		v, err := in.Eval(ctx, `return { 10, 20, result = 1, [3] = 5 }`)
		require.NoError(t, err)
		assert.Equal(t, []string{"result"}, v.Keys())
	})

	t.Run("plain number is a shape mismatch", func(t *testing.T) {
		v, err := in.Eval(ctx, "return 5")
		require.NoError(t, err)
		_, err = decode.DecodeResult(v)
		assert.ErrorIs(t, err, apperr.ErrShapeMismatch)
		assert.ErrorContains(t, err, "got number")
	})
}

func TestLua_ScriptErrors(t *testing.T) {
	in := newLua(t, defaultRegistry(t))
	ctx := context.Background()

	tests := []struct {
		name string
		src  string
	}{
		{name: "syntax error", src: "return {result ="},
		{name: "runtime error", src: "error('boom')"},
		{name: "undefined global call", src: "return nope(1)"},
		{name: "callback argument error", src: "return length_fast({}, 1)"},
		{name: "callback missing argument", src: "return distance(0, 0, 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := in.Eval(ctx, tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrScript)
		})
	}

	t.Run("state survives a failed chunk", func(t *testing.T) {
		v, err := in.Eval(ctx, "return length_fast(3, 4)")
		require.NoError(t, err)
		n, _ := v.Float()
		assert.Equal(t, 5.0, n)
	})
}

func TestLua_BindConflicts(t *testing.T) {
	reg := callback.NewRegistry()
	require.NoError(t, reg.Register(callback.Callback{
		Name:  "print",
		Arity: 1,
		Fn:    func(a []float64) float64 { return a[0] },
	}))

	_, err := NewWithRegistry(Lua, reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrRegistration)
	assert.ErrorContains(t, err, `"print"`)

	in := newLua(t, defaultRegistry(t))
	err = in.Bind(defaultRegistry(t))
	assert.ErrorIs(t, err, apperr.ErrRegistration)
}

func TestLua_Closed(t *testing.T) {
	in := NewLuaInterpreter()
	require.NoError(t, in.Close())
	require.NoError(t, in.Close())

	_, err := in.Eval(context.Background(), "return 1")
	assert.ErrorIs(t, err, apperr.ErrScript)
	assert.ErrorIs(t, in.Bind(callback.NewRegistry()), apperr.ErrRegistration)
}

func TestLua_CancelledContext(t *testing.T) {
	in := newLua(t, callback.NewRegistry())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := in.Eval(ctx, "while true do end")
	assert.ErrorIs(t, err, apperr.ErrScript)
}
