package runner

import (
	"time"

	"github.com/DjordjeVuckovic/callbench/internal/bench/decode"
	"github.com/DjordjeVuckovic/callbench/internal/bench/engine"
	"github.com/DjordjeVuckovic/callbench/internal/bench/metrics"
	"github.com/DjordjeVuckovic/callbench/internal/bench/spec"
)

type Result struct {
	Benchmark string
	Engine    engine.Kind
	Shape     spec.Shape
	StartedAt time.Time

	// Value holds the decoded script result. For the simple shape only
	// Value.Result is set by the script.
	Value decode.BenchmarkResult
	Rates metrics.Rates
	Error error
}

type PlanResult struct {
	Results []Result
	Config  Config
}

func (pr *PlanResult) Failed() []Result {
	var failed []Result
	for _, r := range pr.Results {
		if r.Error != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
