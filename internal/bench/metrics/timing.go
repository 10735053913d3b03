package metrics

import (
	"time"

	"github.com/DjordjeVuckovic/callbench/internal/apperr"
)

// Measure times exactly one call of fn on the monotonic clock. A failed call
// reports no duration.
func Measure[T any](fn func() (T, error)) (T, time.Duration, error) {
	start := time.Now()
	res, err := fn()
	elapsed := time.Since(start)
	if err != nil {
		var zero T
		return zero, 0, err
	}
	return res, elapsed, nil
}

func TimePerIteration(d time.Duration, iterations uint64) (time.Duration, error) {
	if iterations == 0 {
		return 0, apperr.ErrDivisionByZero
	}
	return time.Duration(float64(d) / float64(iterations)), nil
}

func TimePerOperation(d time.Duration, operations uint64) (time.Duration, error) {
	if operations == 0 {
		return 0, apperr.ErrDivisionByZero
	}
	return time.Duration(float64(d) / float64(operations)), nil
}

// PerSecond converts a count over d into a rate per second.
func PerSecond(count uint64, d time.Duration) (float64, error) {
	if d <= 0 {
		return 0, apperr.ErrDivisionByZero
	}
	return float64(count) / d.Seconds(), nil
}
