package pg

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/callbench/internal/bench/report"
	"github.com/DjordjeVuckovic/callbench/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tableName = "bench_runs"

var columns = []string{
	"id", "run_id", "benchmark", "engine", "shape", "iterations",
	"result", "operations", "max_value",
	"total_ns", "ns_per_iteration", "ns_per_operation",
	"iterations_per_second", "operations_per_second",
	"started_at", "recorded_at",
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS bench_runs (
    id                    UUID PRIMARY KEY,
    run_id                UUID             NOT NULL,
    benchmark             TEXT             NOT NULL,
    engine                TEXT             NOT NULL,
    shape                 TEXT             NOT NULL,
    iterations            BIGINT           NOT NULL CHECK (iterations > 0),
    result                DOUBLE PRECISION NOT NULL,
    operations            BIGINT           NOT NULL CHECK (operations >= 0),
    max_value             DOUBLE PRECISION NOT NULL,
    total_ns              BIGINT           NOT NULL,
    ns_per_iteration      BIGINT           NOT NULL,
    ns_per_operation      BIGINT,
    iterations_per_second DOUBLE PRECISION NOT NULL,
    operations_per_second DOUBLE PRECISION,
    started_at            TIMESTAMPTZ      NOT NULL,
    recorded_at           TIMESTAMPTZ      NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_bench_runs_run_id ON bench_runs (run_id);
CREATE INDEX IF NOT EXISTS idx_bench_runs_benchmark_started ON bench_runs (benchmark, started_at DESC);
`

type Storer struct {
	pool *ConnectionPool
	db   *pgxpool.Pool
}

func NewStorer(ctx context.Context, pool *ConnectionPool) (*Storer, error) {
	s := &Storer{pool: pool, db: pool.GetConn()}
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// EnsureSchema creates the runs table when missing. It mirrors
// db/migrations/001_bench_runs.up.sql.
func (s *Storer) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("create %s: %w", tableName, err)
	}
	return nil
}

func (s *Storer) Save(ctx context.Context, rec storage.RunRecord) (uuid.UUID, error) {
	rec.Prepare(time.Now().UTC())

	cmd := `
        INSERT INTO bench_runs (id, run_id, benchmark, engine, shape, iterations,
            result, operations, max_value, total_ns, ns_per_iteration, ns_per_operation,
            iterations_per_second, operations_per_second, started_at, recorded_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING id;
    `
	var id uuid.UUID
	err := s.db.QueryRow(ctx, cmd, row(rec)...).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert run record: %w", err)
	}

	slog.Debug("Run record inserted", "id", id, "benchmark", rec.Benchmark)
	return id, nil
}

func (s *Storer) SaveBulk(ctx context.Context, recs []storage.RunRecord) error {
	if len(recs) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([][]any, len(recs))
	for i, rec := range recs {
		rec.Prepare(now)
		rows[i] = row(rec)
	}

	n, err := s.db.CopyFrom(ctx, pgx.Identifier{tableName}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("bulk insert run records: %w", err)
	}
	slog.Info("Run records stored", "table", tableName, "count", n)
	return nil
}

// recent returns the latest records of a benchmark, newest first.
func (s *Storer) recent(ctx context.Context, benchmark string, limit int) ([]storage.RunRecord, error) {
	query := `
        SELECT id, run_id, benchmark, engine, shape, iterations,
            result, operations, max_value, total_ns, ns_per_iteration, ns_per_operation,
            iterations_per_second, operations_per_second, started_at, recorded_at
        FROM bench_runs
        WHERE benchmark = $1
        ORDER BY started_at DESC
        LIMIT $2;
    `
	rows, err := s.db.Query(ctx, query, benchmark, limit)
	if err != nil {
		return nil, fmt.Errorf("query run records: %w", err)
	}
	defer rows.Close()

	var recs []storage.RunRecord
	for rows.Next() {
		var (
			rec        storage.RunRecord
			iterations int64
			operations int64
			result     float64
			maxValue   float64
		)
		err := rows.Scan(
			&rec.ID, &rec.RunID, &rec.Benchmark, &rec.Engine, &rec.Shape, &iterations,
			&result, &operations, &maxValue, &rec.TotalNs, &rec.NsPerIteration, &rec.NsPerOperation,
			&rec.IterationsPerSecond, &rec.OperationsPerSecond, &rec.StartedAt, &rec.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan run record: %w", err)
		}
		rec.Iterations = uint64(iterations)
		rec.Operations = uint64(operations)
		rec.Result = report.Float(result)
		rec.MaxValue = report.Float(maxValue)
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run records: %w", err)
	}
	return recs, nil
}

func (s *Storer) Close() error {
	s.pool.Close()
	return nil
}

func row(rec storage.RunRecord) []any {
	return []any{
		rec.ID,
		rec.RunID,
		rec.Benchmark,
		rec.Engine,
		rec.Shape,
		int64(rec.Iterations),
		float64(rec.Result),
		int64(rec.Operations),
		float64(rec.MaxValue),
		rec.TotalNs,
		rec.NsPerIteration,
		rec.NsPerOperation,
		rec.IterationsPerSecond,
		rec.OperationsPerSecond,
		rec.StartedAt,
		rec.RecordedAt,
	}
}
