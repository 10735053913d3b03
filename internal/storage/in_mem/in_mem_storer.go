package in_mem

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/callbench/internal/storage"
	"github.com/google/uuid"
)

type InMemStorer struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]storage.RunRecord
	order       []uuid.UUID
}

func NewInMemStorer() *InMemStorer {
	return &InMemStorer{
		storage: make(map[uuid.UUID]storage.RunRecord),
	}
}

func (s *InMemStorer) Save(ctx context.Context, rec storage.RunRecord) (uuid.UUID, error) {
	rec.Prepare(time.Now().UTC())

	s.storageLock.Lock()
	defer s.storageLock.Unlock()
	s.put(rec)

	slog.Debug("Run record stored in memory", "id", rec.ID, "benchmark", rec.Benchmark)
	return rec.ID, nil
}

func (s *InMemStorer) SaveBulk(ctx context.Context, recs []storage.RunRecord) error {
	now := time.Now().UTC()

	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, rec := range recs {
		rec.Prepare(now)
		s.put(rec)
	}
	return nil
}

func (s *InMemStorer) put(rec storage.RunRecord) {
	if _, exists := s.storage[rec.ID]; !exists {
		s.order = append(s.order, rec.ID)
	}
	s.storage[rec.ID] = rec
}

func (s *InMemStorer) Get(id uuid.UUID) (storage.RunRecord, bool) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	rec, ok := s.storage[id]
	return rec, ok
}

// All returns the records in insertion order.
func (s *InMemStorer) All() []storage.RunRecord {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	recs := make([]storage.RunRecord, 0, len(s.order))
	for _, id := range s.order {
		recs = append(recs, s.storage[id])
	}
	return recs
}

func (s *InMemStorer) Close() error { return nil }
