package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/callbench/internal/bench/engine"
	"github.com/DjordjeVuckovic/callbench/internal/bench/spec"
	"github.com/DjordjeVuckovic/callbench/pkg/config/env"
	"github.com/DjordjeVuckovic/callbench/pkg/utils"
)

type cliConfig struct {
	PlanPath        string
	ScriptPath      string
	Engine          string
	Shape           string
	Iterations      uint64
	OpsPerIteration uint64
	Warmup          int
	Output          string
	Store           string
	Only            string
	EnvPath         string
}

func parseFlags(args []string) (cliConfig, error) {
	cfg := cliConfig{}
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)

	fs.StringVar(&cfg.PlanPath, "plan", "", "Path to benchmark plan YAML (default: built-in plan)")
	fs.StringVar(&cfg.ScriptPath, "script", "", "Run a single script file instead of a plan")
	fs.StringVar(&cfg.Engine, "engine", string(engine.Lua), "Interpreter for -script: lua or go")
	fs.StringVar(&cfg.Shape, "shape", string(spec.ShapeFull), "Result shape for -script: full or simple")
	fs.Uint64Var(&cfg.Iterations, "iterations", 5_000_000, "Loop iterations for -script, exposed as {{iterations}}")
	fs.Uint64Var(&cfg.OpsPerIteration, "ops-per-iteration", 0, "Callback calls per iteration for -script; 0 skips verification")
	fs.IntVar(&cfg.Warmup, "warmup", -1, "Warm-up probe rounds; -1 keeps the plan's value")
	fs.StringVar(&cfg.Output, "output", "", "Output path for the JSON report")
	fs.StringVar(&cfg.Store, "store", "", "History store: none, in_mem, json, pg or es (default: STORAGE_TYPE)")
	fs.StringVar(&cfg.Only, "only", "", "Run only these benchmarks, comma-separated")
	fs.StringVar(&cfg.EnvPath, "env", env.DefaultPath, "Path to .env file, overridden by ENV_PATH")

	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}
	if fs.NArg() > 0 {
		return cliConfig{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if cfg.PlanPath != "" && cfg.ScriptPath != "" {
		return cliConfig{}, fmt.Errorf("-plan and -script are mutually exclusive")
	}
	return cfg, nil
}

func (c cliConfig) loadPlan() (*spec.Plan, error) {
	var (
		plan *spec.Plan
		err  error
	)
	switch {
	case c.ScriptPath != "":
		plan, err = c.scriptPlan()
	case c.PlanPath != "":
		plan, err = spec.LoadFromFile(c.PlanPath)
	default:
		plan, err = spec.Default()
	}
	if err != nil {
		return nil, err
	}

	if c.Warmup >= 0 {
		plan.Warmup.Iterations = c.Warmup
	}
	return plan.Filter(c.onlyNames())
}

func (c cliConfig) scriptPlan() (*spec.Plan, error) {
	base := filepath.Base(c.ScriptPath)
	plan := &spec.Plan{
		Benchmarks: []spec.Benchmark{{
			Name:            strings.TrimSuffix(base, filepath.Ext(base)),
			Engine:          engine.Kind(c.Engine),
			Shape:           spec.Shape(c.Shape),
			Iterations:      c.Iterations,
			OpsPerIteration: c.OpsPerIteration,
			Script:          base,
		}},
		Scripts: os.DirFS(filepath.Dir(c.ScriptPath)),
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return plan, nil
}

func (c cliConfig) onlyNames() []string {
	return utils.RemoveEmptyStrings(strings.Split(c.Only, ","))
}
