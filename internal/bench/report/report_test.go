package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/callbench/internal/bench/decode"
	"github.com/DjordjeVuckovic/callbench/internal/bench/engine"
	"github.com/DjordjeVuckovic/callbench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/callbench/internal/bench/runner"
	"github.com/DjordjeVuckovic/callbench/internal/bench/spec"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullResult(t *testing.T) runner.Result {
	t.Helper()
	rates, err := metrics.Compute(2*time.Second, 1_000_000, 3_000_000)
	require.NoError(t, err)
	return runner.Result{
		Benchmark: "enhanced",
		Engine:    engine.Lua,
		Shape:     spec.ShapeFull,
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Value:     decode.BenchmarkResult{Result: 42.5, Operations: 3_000_000, MaxValue: 99.9},
		Rates:     rates,
	}
}

func simpleResult(t *testing.T) runner.Result {
	t.Helper()
	rates, err := metrics.Compute(time.Second, 1000, 0)
	require.NoError(t, err)
	return runner.Result{
		Benchmark: "length-only",
		Engine:    engine.Lua,
		Shape:     spec.ShapeSimple,
		Value:     decode.BenchmarkResult{Result: 7},
		Rates:     rates,
	}
}

func TestWriteRun(t *testing.T) {
	t.Run("full shape", func(t *testing.T) {
		var buf bytes.Buffer
		WriteRun(&buf, fullResult(t))

		assert.Equal(t, `Result: 42.5
Total operations: 3000000
Maximum value encountered: 99.9
Total time: 2s
Time per iteration: 2µs
Time per operation: 666ns
Iterations per second: 500000
Operations per second: 1500000
`, buf.String())
	})

	t.Run("zero operations prints n/a", func(t *testing.T) {
		var buf bytes.Buffer
		WriteRun(&buf, simpleResult(t))

		out := buf.String()
		assert.Contains(t, out, "Total operations: n/a\n")
		assert.Contains(t, out, "Maximum value encountered: n/a\n")
		assert.Contains(t, out, "Time per iteration: 1ms\n")
		assert.Contains(t, out, "Time per operation: n/a\n")
		assert.Contains(t, out, "Operations per second: n/a\n")
		assert.NotContains(t, out, "Inf")
	})
}

func TestGenerate(t *testing.T) {
	id := uuid.New()
	pr := &runner.PlanResult{
		Config: runner.Config{WarmupIterations: 5000},
		Results: []runner.Result{
			fullResult(t),
			simpleResult(t),
			{Benchmark: "broken", Engine: engine.Go, Shape: spec.ShapeFull, Error: errors.New("boom")},
		},
	}

	r := Generate(id, pr)
	assert.Equal(t, id, r.Meta.RunID)
	assert.Equal(t, 5000, r.Meta.WarmupIterations)
	assert.NotEmpty(t, r.Meta.Environment.GoVersion)
	require.Len(t, r.Entries, 3)

	full := r.Entries[0]
	assert.Equal(t, int64(2_000_000_000), full.TotalNs)
	assert.Equal(t, int64(2000), full.NsPerIteration)
	require.NotNil(t, full.NsPerOperation)
	assert.Equal(t, int64(666), *full.NsPerOperation)
	require.NotNil(t, full.OperationsPerSecond)
	assert.Equal(t, 1_500_000.0, *full.OperationsPerSecond)

	simple := r.Entries[1]
	assert.Zero(t, simple.Operations)
	assert.Nil(t, simple.NsPerOperation)
	assert.Nil(t, simple.OperationsPerSecond)
	assert.Equal(t, 1000.0, simple.IterationsPerSecond)

	broken := r.Entries[2]
	assert.Equal(t, "boom", broken.Error)
	assert.Zero(t, broken.TotalNs)
}

func TestWriteTable(t *testing.T) {
	pr := &runner.PlanResult{Results: []runner.Result{
		fullResult(t),
		simpleResult(t),
		{Benchmark: "broken", Engine: engine.Go, Shape: spec.ShapeFull, Error: errors.New("boom")},
	}}

	var buf bytes.Buffer
	WriteTable(Generate(uuid.New(), pr), &buf)
	out := buf.String()

	assert.Contains(t, out, "=== Callback Overhead Benchmark ===")
	assert.Contains(t, out, "Benchmark")
	assert.Contains(t, out, "enhanced")
	assert.Contains(t, out, "2.00µs")
	assert.Contains(t, out, "666ns")
	assert.Contains(t, out, "1500000")
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "ERR")
}

func TestWriteJSON(t *testing.T) {
	pr := &runner.PlanResult{Results: []runner.Result{fullResult(t), simpleResult(t)}}
	r := Generate(uuid.New(), pr)
	path := filepath.Join(t.TempDir(), "nested", "report.json")

	require.NoError(t, WriteJSON(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	meta := decoded["meta"].(map[string]any)
	assert.Equal(t, r.Meta.RunID.String(), meta["run_id"])

	entries := decoded["benchmarks"].([]any)
	require.Len(t, entries, 2)
	first := entries[0].(map[string]any)
	assert.Equal(t, "enhanced", first["benchmark"])
	assert.Equal(t, 3_000_000.0, first["operations"])
	assert.Equal(t, "2026-01-02T03:04:05Z", first["started_at"])

	second := entries[1].(map[string]any)
	assert.NotContains(t, second, "ns_per_operation")
	assert.NotContains(t, second, "operations_per_second")
	assert.NotContains(t, second, "started_at")
}

func TestWriteJSON_NonFiniteValues(t *testing.T) {
	res := fullResult(t)
	res.Value.Result = math.Inf(1)
	res.Value.MaxValue = math.NaN()
	r := Generate(uuid.New(), &runner.PlanResult{Results: []runner.Result{res}})
	path := filepath.Join(t.TempDir(), "report.json")

	require.NoError(t, WriteJSON(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Entries, 1)
	assert.True(t, math.IsInf(float64(decoded.Entries[0].Result), 1))
	assert.True(t, math.IsNaN(float64(decoded.Entries[0].MaxValue)))
	assert.Equal(t, uint64(3_000_000), decoded.Entries[0].Operations)
}

func TestNewEntry_SimpleShapeUsesRatedOperations(t *testing.T) {
	rates, err := metrics.Compute(time.Second, 1000, 2000)
	require.NoError(t, err)
	e := NewEntry(runner.Result{
		Benchmark: "length-only",
		Engine:    engine.Lua,
		Shape:     spec.ShapeSimple,
		Value:     decode.BenchmarkResult{Result: 7},
		Rates:     rates,
	})

	assert.Equal(t, uint64(2000), e.Operations)
	require.NotNil(t, e.NsPerOperation)
	assert.Equal(t, int64(500_000), *e.NsPerOperation)
	require.NotNil(t, e.OperationsPerSecond)
	assert.Equal(t, 2000.0, *e.OperationsPerSecond)
}

func TestFloat_JSON(t *testing.T) {
	tests := []struct {
		name string
		in   Float
		want string
	}{
		{name: "finite", in: 42.5, want: `42.5`},
		{name: "positive infinity", in: Float(math.Inf(1)), want: `"+Inf"`},
		{name: "negative infinity", in: Float(math.Inf(-1)), want: `"-Inf"`},
		{name: "nan", in: Float(math.NaN()), want: `"NaN"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			var back Float
			require.NoError(t, json.Unmarshal(data, &back))
			if math.IsNaN(float64(tt.in)) {
				assert.True(t, math.IsNaN(float64(back)))
			} else {
				assert.Equal(t, tt.in, back)
			}
		})
	}

	var f Float
	assert.Error(t, json.Unmarshal([]byte(`"big"`), &f))
}
