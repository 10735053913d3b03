package metrics

import (
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/callbench/internal/apperr"
)

type Rates struct {
	Duration            time.Duration `json:"duration"`
	Iterations          uint64        `json:"iterations"`
	Operations          uint64        `json:"operations"`
	TimePerIteration    time.Duration `json:"time_per_iteration"`
	TimePerOperation    time.Duration `json:"time_per_operation,omitempty"`
	IterationsPerSecond float64       `json:"iterations_per_second"`
	OperationsPerSecond float64       `json:"operations_per_second,omitempty"`
}

// Compute derives every rate for one measured run. Zero operations leaves
// the per-operation fields unset; see PerOperation.
func Compute(d time.Duration, iterations, operations uint64) (Rates, error) {
	perIter, err := TimePerIteration(d, iterations)
	if err != nil {
		return Rates{}, fmt.Errorf("time per iteration: %w", err)
	}
	itersPerSec, err := PerSecond(iterations, d)
	if err != nil {
		return Rates{}, fmt.Errorf("iterations per second: %w", err)
	}

	r := Rates{
		Duration:            d,
		Iterations:          iterations,
		Operations:          operations,
		TimePerIteration:    perIter,
		IterationsPerSecond: itersPerSec,
	}
	if operations == 0 {
		return r, nil
	}

	r.TimePerOperation, err = TimePerOperation(d, operations)
	if err != nil {
		return Rates{}, fmt.Errorf("time per operation: %w", err)
	}
	r.OperationsPerSecond, err = PerSecond(operations, d)
	if err != nil {
		return Rates{}, fmt.Errorf("operations per second: %w", err)
	}
	return r, nil
}

// PerOperation returns the per-operation time and operations per second,
// or ErrDivisionByZero when the run reported no operations.
func (r Rates) PerOperation() (time.Duration, float64, error) {
	if r.Operations == 0 {
		return 0, 0, apperr.ErrDivisionByZero
	}
	return r.TimePerOperation, r.OperationsPerSecond, nil
}
