package storage

import (
	"time"

	"github.com/DjordjeVuckovic/callbench/internal/bench/report"
	"github.com/google/uuid"
)

// RunRecord is one benchmark outcome of one harness invocation. Records of
// the same invocation share RunID.
type RunRecord struct {
	ID                  uuid.UUID    `json:"id"`
	RunID               uuid.UUID    `json:"run_id"`
	Benchmark           string       `json:"benchmark"`
	Engine              string       `json:"engine"`
	Shape               string       `json:"shape"`
	Iterations          uint64       `json:"iterations"`
	Result              report.Float `json:"result"`
	Operations          uint64       `json:"operations"`
	MaxValue            report.Float `json:"max_value"`
	TotalNs             int64        `json:"total_ns"`
	NsPerIteration      int64        `json:"ns_per_iteration"`
	NsPerOperation      *int64       `json:"ns_per_operation,omitempty"`
	IterationsPerSecond float64      `json:"iterations_per_second"`
	OperationsPerSecond *float64     `json:"operations_per_second,omitempty"`
	StartedAt           time.Time    `json:"started_at"`
	RecordedAt          time.Time    `json:"recorded_at"`
}

// NewRunRecords converts the successful entries of a report. Failed
// benchmarks have no measurement and are skipped.
func NewRunRecords(r *report.Report) []RunRecord {
	var recs []RunRecord
	for _, e := range r.Entries {
		if e.Error != "" {
			continue
		}
		recs = append(recs, RunRecord{
			RunID:               r.Meta.RunID,
			Benchmark:           e.Benchmark,
			Engine:              e.Engine,
			Shape:               e.Shape,
			Iterations:          e.Iterations,
			Result:              e.Result,
			Operations:          e.Operations,
			MaxValue:            e.MaxValue,
			TotalNs:             e.TotalNs,
			NsPerIteration:      e.NsPerIteration,
			NsPerOperation:      e.NsPerOperation,
			IterationsPerSecond: e.IterationsPerSecond,
			OperationsPerSecond: e.OperationsPerSecond,
			StartedAt:           e.StartedAt,
		})
	}
	return recs
}

// Prepare fills the id and recording time when unset.
func (r *RunRecord) Prepare(now time.Time) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.RecordedAt.IsZero() {
		r.RecordedAt = now
	}
}
