package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/callbench/internal/bench/callback"
	"github.com/DjordjeVuckovic/callbench/internal/bench/decode"
	"github.com/DjordjeVuckovic/callbench/internal/bench/engine"
	"github.com/DjordjeVuckovic/callbench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/callbench/internal/bench/spec"
	"github.com/DjordjeVuckovic/callbench/internal/bench/suite"
	"github.com/DjordjeVuckovic/callbench/internal/types/value"
)

var ErrOperationCount = errors.New("operation count mismatch")

type Runner struct {
	config   Config
	registry *callback.Registry
}

func New(cfg Config, reg *callback.Registry) *Runner {
	return &Runner{config: cfg, registry: reg}
}

// Eval runs src and returns the raw script value. Errors are returned as the
// interpreter reported them.
func (r *Runner) Eval(ctx context.Context, in engine.Interpreter, src string) (value.Value, error) {
	return in.Eval(ctx, src)
}

func (r *Runner) Run(ctx context.Context, in engine.Interpreter, src string) (decode.BenchmarkResult, error) {
	v, err := r.Eval(ctx, in, src)
	if err != nil {
		return decode.BenchmarkResult{}, err
	}
	return decode.DecodeResult(v)
}

func (r *Runner) RunSimple(ctx context.Context, in engine.Interpreter, src string) (decode.SimpleResult, error) {
	v, err := r.Eval(ctx, in, src)
	if err != nil {
		return decode.SimpleResult{}, err
	}
	return decode.DecodeSimple(v)
}

// Warmup evaluates the probe expressions WarmupIterations times, decoding
// each as a number.
func (r *Runner) Warmup(ctx context.Context, in engine.Interpreter) error {
	for i := 0; i < r.config.WarmupIterations; i++ {
		angle := strconv.FormatFloat(float64(i)*0.001, 'g', -1, 64)
		probes := [...]string{
			callback.LengthFastName + "(1, 1)",
			callback.DistanceName + "(0, 0, 3, 4)",
			callback.ComplexCalcName + "(" + angle + ", 15)",
		}
		for _, probe := range probes {
			v, err := r.Eval(ctx, in, in.Expr(probe))
			if err != nil {
				return fmt.Errorf("probe %q: %w", probe, err)
			}
			if _, err := decode.DecodeNumber(v); err != nil {
				return fmt.Errorf("probe %q: %w", probe, err)
			}
		}
	}
	return nil
}

// Execute runs one benchmark on a fresh interpreter: render, bind, warm up,
// then time a single evaluation and derive its rates.
func (r *Runner) Execute(ctx context.Context, b spec.Benchmark, src string) (*Result, error) {
	tmpl := suite.ScriptTemplate{Name: b.Name, Source: src}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	script, err := tmpl.Render(suite.WithIterations(b.Params, b.Iterations))
	if err != nil {
		return nil, fmt.Errorf("render script: %w", err)
	}

	in, err := engine.NewWithRegistry(b.Engine, r.registry)
	if err != nil {
		return nil, fmt.Errorf("create %s interpreter: %w", b.Engine, err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			slog.Warn("close interpreter failed", "benchmark", b.Name, "error", err)
		}
	}()

	if err := r.Warmup(ctx, in); err != nil {
		return nil, fmt.Errorf("warm up: %w", err)
	}

	res := &Result{
		Benchmark: b.Name,
		Engine:    b.Engine,
		Shape:     b.Shape,
		StartedAt: time.Now().UTC(),
	}
	slog.Info("Starting benchmark", "name", b.Name, "engine", b.Engine, "iterations", b.Iterations)

	var elapsed time.Duration
	var operations uint64
	switch b.Shape {
	case spec.ShapeSimple:
		var simple decode.SimpleResult
		simple, elapsed, err = metrics.Measure(func() (decode.SimpleResult, error) {
			return r.RunSimple(ctx, in, script)
		})
		if err != nil {
			return nil, err
		}
		res.Value = decode.BenchmarkResult{Result: simple.Result}
		operations = b.ExpectedOperations()
	default:
		res.Value, elapsed, err = metrics.Measure(func() (decode.BenchmarkResult, error) {
			return r.Run(ctx, in, script)
		})
		if err != nil {
			return nil, err
		}
		operations = uint64(res.Value.Operations)
		if want := b.ExpectedOperations(); want != 0 && operations != want {
			return nil, fmt.Errorf("%w: script reported %d, expected %d (%d iterations x %d)",
				ErrOperationCount, operations, want, b.Iterations, b.OpsPerIteration)
		}
	}

	res.Rates, err = metrics.Compute(elapsed, b.Iterations, operations)
	if err != nil {
		return nil, fmt.Errorf("compute rates: %w", err)
	}

	slog.Info("Benchmark finished", "name", b.Name, "duration", elapsed, "operations", operations)
	return res, nil
}

// RunAll executes every benchmark of the plan in order. A failing benchmark
// is recorded in its Result and does not stop the others.
func (r *Runner) RunAll(ctx context.Context, plan *spec.Plan) *PlanResult {
	pr := &PlanResult{Config: r.config}

	for _, b := range plan.Benchmarks {
		res, err := r.runBenchmark(ctx, plan, b)
		if err != nil {
			slog.Warn("benchmark failed", "name", b.Name, "engine", b.Engine, "error", err)
			res = &Result{Benchmark: b.Name, Engine: b.Engine, Shape: b.Shape, Error: err}
		}
		pr.Results = append(pr.Results, *res)
	}

	return pr
}

func (r *Runner) runBenchmark(ctx context.Context, plan *spec.Plan, b spec.Benchmark) (*Result, error) {
	src, err := b.LoadSource(plan.Scripts)
	if err != nil {
		return nil, err
	}
	return r.Execute(ctx, b, src)
}
