package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/callbench/internal/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
)

type Storer struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewStorer(ctx context.Context, config ClientConfig) (*Storer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("create Elasticsearch client: %w", err)
	}
	s := &Storer{
		client:    client,
		indexName: config.IndexName,
	}

	if err := s.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("ensure index exists: %w", err)
	}

	return s, nil
}

func (s *Storer) Save(ctx context.Context, rec storage.RunRecord) (uuid.UUID, error) {
	rec.Prepare(time.Now().UTC())

	res, err := s.client.Index(s.indexName).Id(rec.ID.String()).Document(rec).Do(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("index run record: %w", err)
	}

	slog.Debug("Run record indexed", "id", rec.ID, "index", s.indexName, "result", res.Result)
	return rec.ID, nil
}

func (s *Storer) SaveBulk(ctx context.Context, recs []storage.RunRecord) error {
	if len(recs) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:      s.indexName,
		Client:     s.client,
		NumWorkers: 1,
		Refresh:    "wait_for",
	})
	if err != nil {
		return fmt.Errorf("create bulk indexer: %w", err)
	}

	var failed atomic.Int64
	now := time.Now().UTC()
	for _, rec := range recs {
		rec.Prepare(now)

		body, err := json.Marshal(rec)
		if err != nil {
			failed.Add(1)
			slog.Error("marshal run record failed", "error", err, "id", rec.ID)
			continue
		}

		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: rec.ID.String(),
			Body:       bytes.NewReader(body),
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				failed.Add(1)
				if err != nil {
					slog.Error("bulk index error", "error", err, "id", item.DocumentID)
				} else {
					slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
				}
			},
		})
		if err != nil {
			failed.Add(1)
			slog.Error("add run record to bulk indexer failed", "error", err, "id", rec.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("close bulk indexer: %w", err)
	}

	stats := bi.Stats()
	slog.Info("Run records indexed", "index", s.indexName, "indexed", stats.NumIndexed, "failed", failed.Load())

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("failed to index %d of %d run records", n, len(recs))
	}
	return nil
}

func (s *Storer) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		slog.Debug("Index already exists", "index", s.indexName)
		return nil
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":                    types.NewKeywordProperty(),
			"run_id":                types.NewKeywordProperty(),
			"benchmark":             types.NewKeywordProperty(),
			"engine":                types.NewKeywordProperty(),
			"shape":                 types.NewKeywordProperty(),
			"iterations":            types.NewUnsignedLongNumberProperty(),
			"result":                scriptValueProperty(),
			"operations":            types.NewLongNumberProperty(),
			"max_value":             scriptValueProperty(),
			"total_ns":              types.NewLongNumberProperty(),
			"ns_per_iteration":      types.NewLongNumberProperty(),
			"ns_per_operation":      types.NewLongNumberProperty(),
			"iterations_per_second": types.NewDoubleNumberProperty(),
			"operations_per_second": types.NewDoubleNumberProperty(),
			"started_at":            types.NewDateProperty(),
			"recorded_at":           types.NewDateProperty(),
		},
	}

	res, err := s.client.Indices.Create(s.indexName).Mappings(&mappings).Do(ctx)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	if !res.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created", "index", s.indexName)
	return nil
}

// scriptValueProperty maps a script-produced double. Elasticsearch only
// accepts finite doubles; non-finite values stay in _source unindexed.
func scriptValueProperty() *types.DoubleNumberProperty {
	p := types.NewDoubleNumberProperty()
	ignore := true
	p.IgnoreMalformed = &ignore
	return p
}

// count returns the number of run records of benchmark in the index.
func (s *Storer) count(ctx context.Context, benchmark string) (int64, error) {
	if _, err := s.client.Indices.Refresh().Index(s.indexName).Do(ctx); err != nil {
		return 0, fmt.Errorf("refresh index: %w", err)
	}

	res, err := s.client.Count().Index(s.indexName).Query(&types.Query{
		Term: map[string]types.TermQuery{
			"benchmark": {Value: benchmark},
		},
	}).Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("count run records: %w", err)
	}
	return res.Count, nil
}

func (s *Storer) Close() error { return nil }
