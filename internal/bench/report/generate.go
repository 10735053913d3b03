package report

import (
	"time"

	"github.com/DjordjeVuckovic/callbench/internal/bench/runner"
	"github.com/DjordjeVuckovic/callbench/pkg/utils"
	"github.com/google/uuid"
)

const rateDecimals = 2

func Generate(runID uuid.UUID, pr *runner.PlanResult) *Report {
	r := &Report{
		Meta: BenchMeta{
			RunID:            runID,
			Timestamp:        time.Now().UTC(),
			WarmupIterations: pr.Config.WarmupIterations,
			Environment:      NewEnvironmentInfo(),
		},
		Entries: make([]Entry, 0, len(pr.Results)),
	}

	for _, res := range pr.Results {
		r.Entries = append(r.Entries, NewEntry(res))
	}

	return r
}

func NewEntry(res runner.Result) Entry {
	e := Entry{
		Benchmark: res.Benchmark,
		Engine:    string(res.Engine),
		Shape:     string(res.Shape),
	}
	if res.Error != nil {
		e.Error = res.Error.Error()
		return e
	}

	e.StartedAt = res.StartedAt
	e.Result = Float(res.Value.Result)
	e.Operations = res.Rates.Operations
	e.MaxValue = Float(res.Value.MaxValue)
	e.Iterations = res.Rates.Iterations
	e.TotalNs = res.Rates.Duration.Nanoseconds()
	e.NsPerIteration = res.Rates.TimePerIteration.Nanoseconds()
	e.IterationsPerSecond = utils.RoundDecimal(res.Rates.IterationsPerSecond, rateDecimals)

	if perOp, opsPerSec, err := res.Rates.PerOperation(); err == nil {
		ns := perOp.Nanoseconds()
		rounded := utils.RoundDecimal(opsPerSec, rateDecimals)
		e.NsPerOperation = &ns
		e.OperationsPerSecond = &rounded
	}
	return e
}
