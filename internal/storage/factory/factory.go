package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/callbench/internal/storage"
	"github.com/DjordjeVuckovic/callbench/internal/storage/es"
	"github.com/DjordjeVuckovic/callbench/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/callbench/internal/storage/pg"
)

// NewStorer creates the configured history store. storage.None yields a nil
// Storer and no error.
func NewStorer(ctx context.Context, cfg *StorageConfig) (storage.Storer, error) {
	switch cfg.Type {
	case storage.None:
		return nil, nil

	case storage.InMem:
		return in_mem.NewInMemStorer(), nil

	case storage.JSON:
		s, err := storage.NewJsonFileStorer(cfg.JSONPath)
		if err != nil {
			return nil, err
		}
		return s, nil

	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL config")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("create PostgreSQL connection pool: %w", err)
		}
		s, err := pg.NewStorer(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return s, nil

	case storage.ES:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch config")
		}
		s, err := es.NewStorer(ctx, *cfg.Es)
		if err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
