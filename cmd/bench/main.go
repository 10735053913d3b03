package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/callbench/internal/bench/callback"
	"github.com/DjordjeVuckovic/callbench/internal/bench/report"
	"github.com/DjordjeVuckovic/callbench/internal/bench/runner"
	"github.com/DjordjeVuckovic/callbench/internal/storage"
	"github.com/DjordjeVuckovic/callbench/internal/storage/factory"
	"github.com/DjordjeVuckovic/callbench/pkg/config/env"
	"github.com/google/uuid"
)

var errBenchmarksFailed = errors.New("benchmarks failed")

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		slog.Error("Invalid arguments", "error", err)
		os.Exit(2)
	}

	if err := env.LoadDotEnv(cfg.EnvPath); err != nil {
		slog.Error("Failed to load environment", "error", err)
		os.Exit(1)
	}
	level, err := env.LogLevel()
	if err != nil {
		slog.Warn("Falling back to info logging", "error", err)
	}
	slog.SetLogLoggerLevel(level)

	if err := run(context.Background(), cfg, os.Stdout); err != nil {
		slog.Error("Benchmark run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg cliConfig, out io.Writer) error {
	plan, err := cfg.loadPlan()
	if err != nil {
		return fmt.Errorf("load plan: %w", err)
	}

	reg, err := callback.NewDefaultRegistry()
	if err != nil {
		return fmt.Errorf("build callback registry: %w", err)
	}

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				slog.Warn("Failed to close history store", "error", err)
			}
		}()
	}

	r := runner.New(runner.Config{WarmupIterations: plan.Warmup.Iterations}, reg)
	result := r.RunAll(ctx, plan)

	for _, res := range result.Results {
		if res.Error != nil {
			continue
		}
		fmt.Fprintf(out, "\n--- %s (%s) ---\n", res.Benchmark, res.Engine)
		report.WriteRun(out, res)
	}

	rpt := report.Generate(uuid.New(), result)
	report.WriteTable(rpt, out)

	if cfg.Output != "" {
		if err := report.WriteJSON(rpt, cfg.Output); err != nil {
			return err
		}
		slog.Info("Report written", "path", cfg.Output)
	}

	if store != nil {
		recs := storage.NewRunRecords(rpt)
		if err := store.SaveBulk(ctx, recs); err != nil {
			return fmt.Errorf("store run records: %w", err)
		}
		slog.Info("Run history stored", "run_id", rpt.Meta.RunID, "records", len(recs))
	}

	if failed := result.Failed(); len(failed) > 0 {
		for _, f := range failed {
			slog.Error("Benchmark failed", "name", f.Benchmark, "engine", f.Engine, "error", f.Error)
		}
		return fmt.Errorf("%w: %d of %d", errBenchmarksFailed, len(failed), len(result.Results))
	}
	return nil
}

func openStore(ctx context.Context, override string) (storage.Storer, error) {
	var (
		storeCfg *factory.StorageConfig
		err      error
	)
	if override != "" {
		storeCfg, err = factory.ConfigFor(storage.Type(override))
	} else {
		storeCfg, err = factory.LoadEnv()
	}
	if err != nil {
		return nil, err
	}
	return factory.NewStorer(ctx, storeCfg)
}
