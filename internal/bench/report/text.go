package report

import (
	"fmt"
	"io"

	"github.com/DjordjeVuckovic/callbench/internal/bench/runner"
	"github.com/DjordjeVuckovic/callbench/internal/bench/spec"
)

const notAvailable = "n/a"

// WriteRun prints the human-readable summary of one successful benchmark.
func WriteRun(w io.Writer, res runner.Result) {
	perOp, opsPerSec, opErr := res.Rates.PerOperation()

	fmt.Fprintf(w, "Result: %v\n", res.Value.Result)
	if res.Shape == spec.ShapeSimple {
		fmt.Fprintf(w, "Total operations: %s\n", orNotAvailable(res.Rates.Operations))
		fmt.Fprintf(w, "Maximum value encountered: %s\n", notAvailable)
	} else {
		fmt.Fprintf(w, "Total operations: %d\n", res.Value.Operations)
		fmt.Fprintf(w, "Maximum value encountered: %v\n", res.Value.MaxValue)
	}
	fmt.Fprintf(w, "Total time: %v\n", res.Rates.Duration)
	fmt.Fprintf(w, "Time per iteration: %v\n", res.Rates.TimePerIteration)
	if opErr != nil {
		fmt.Fprintf(w, "Time per operation: %s\n", notAvailable)
	} else {
		fmt.Fprintf(w, "Time per operation: %v\n", perOp)
	}
	fmt.Fprintf(w, "Iterations per second: %.0f\n", res.Rates.IterationsPerSecond)
	if opErr != nil {
		fmt.Fprintf(w, "Operations per second: %s\n", notAvailable)
	} else {
		fmt.Fprintf(w, "Operations per second: %.0f\n", opsPerSec)
	}
}

func orNotAvailable(n uint64) string {
	if n == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%d", n)
}
