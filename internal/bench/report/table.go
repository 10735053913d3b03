package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
)

func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Callback Overhead Benchmark ===\n\n")

	header := []string{"Benchmark", "Engine", "Shape", "Iterations", "Operations", "Total", "Per iter", "Per op", "Iter/s", "Ops/s", "Status"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, e := range r.Entries {
		if e.Error != "" {
			row := []string{e.Benchmark, e.Engine, e.Shape, "-", "-", "-", "-", "-", "-", "-", "ERR"}
			fmt.Fprintln(tw, strings.Join(row, "\t"))
			continue
		}

		row := []string{
			e.Benchmark,
			e.Engine,
			e.Shape,
			fmt.Sprintf("%d", e.Iterations),
			fmtCount(e.Operations),
			fmtDuration(time.Duration(e.TotalNs)),
			fmtDuration(time.Duration(e.NsPerIteration)),
			fmtOptionalNs(e.NsPerOperation),
			fmt.Sprintf("%.0f", e.IterationsPerSecond),
			fmtOptionalRate(e.OperationsPerSecond),
			"OK",
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
	tw.Flush()
}

func fmtCount(n uint64) string {
	if n == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%d", n)
}

func fmtOptionalNs(ns *int64) string {
	if ns == nil {
		return notAvailable
	}
	return fmtDuration(time.Duration(*ns))
}

func fmtOptionalRate(rate *float64) string {
	if rate == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.0f", *rate)
}

func fmtDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.2fµs", float64(d.Nanoseconds())/1000)
	case d < time.Second:
		return fmt.Sprintf("%.2fms", float64(d.Microseconds())/1000)
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
