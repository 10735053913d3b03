package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// JsonFileStorer appends one JSON document per line to a file.
type JsonFileStorer struct {
	mu       sync.Mutex
	filePath string
}

func NewJsonFileStorer(filePath string) (*JsonFileStorer, error) {
	if filePath == "" {
		return nil, fmt.Errorf("json storer needs a file path")
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}
	return &JsonFileStorer{filePath: filePath}, nil
}

func (s *JsonFileStorer) Save(ctx context.Context, rec RunRecord) (uuid.UUID, error) {
	rec.Prepare(time.Now().UTC())
	if err := s.append(ctx, []RunRecord{rec}); err != nil {
		return uuid.Nil, err
	}
	slog.Debug("Run record appended", "id", rec.ID, "benchmark", rec.Benchmark, "path", s.filePath)
	return rec.ID, nil
}

func (s *JsonFileStorer) SaveBulk(ctx context.Context, recs []RunRecord) error {
	if len(recs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	prepared := make([]RunRecord, len(recs))
	for i, rec := range recs {
		rec.Prepare(now)
		prepared[i] = rec
	}
	return s.append(ctx, prepared)
}

func (s *JsonFileStorer) append(ctx context.Context, recs []RunRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open store file: %w", err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, rec := range recs {
		if err := enc.Encode(rec); err != nil {
			_ = f.Close()
			return fmt.Errorf("encode run record %s: %w", rec.ID, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush store file: %w", err)
	}
	return f.Close()
}

// Load reads every record back in file order. A missing file holds no records.
func (s *JsonFileStorer) Load() ([]RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open store file: %w", err)
	}
	defer f.Close()

	var recs []RunRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var rec RunRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode run record %d: %w", len(recs)+1, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *JsonFileStorer) Close() error { return nil }
