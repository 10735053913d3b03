package report

import (
	"runtime"
	"time"

	"github.com/google/uuid"
)

type Report struct {
	Meta    BenchMeta `json:"meta"`
	Entries []Entry   `json:"benchmarks"`
}

type BenchMeta struct {
	RunID            uuid.UUID       `json:"run_id"`
	Timestamp        time.Time       `json:"timestamp"`
	WarmupIterations int             `json:"warmup_iterations"`
	Environment      EnvironmentInfo `json:"environment"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

// Entry is one benchmark in serialized form. Durations are nanoseconds and
// rates are rounded; per-operation fields are omitted when undefined.
type Entry struct {
	Benchmark           string    `json:"benchmark"`
	Engine              string    `json:"engine"`
	Shape               string    `json:"shape"`
	StartedAt           time.Time `json:"started_at,omitzero"`
	Result              Float     `json:"result"`
	Operations          uint64    `json:"operations"`
	MaxValue            Float     `json:"max_value"`
	Iterations          uint64    `json:"iterations"`
	TotalNs             int64     `json:"total_ns"`
	NsPerIteration      int64     `json:"ns_per_iteration"`
	NsPerOperation      *int64    `json:"ns_per_operation,omitempty"`
	IterationsPerSecond float64   `json:"iterations_per_second"`
	OperationsPerSecond *float64  `json:"operations_per_second,omitempty"`
	Error               string    `json:"error,omitempty"`
}
