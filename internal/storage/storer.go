package storage

import (
	"context"

	"github.com/google/uuid"
)

// Storer persists benchmark run records.
type Storer interface {
	Save(ctx context.Context, rec RunRecord) (uuid.UUID, error)
	SaveBulk(ctx context.Context, recs []RunRecord) error
	Close() error
}

type Type string

const (
	None  Type = "none"
	InMem Type = "in_mem"
	JSON  Type = "json"
	PG    Type = "pg"
	ES    Type = "es"
)

var Types = []Type{None, InMem, JSON, PG, ES}

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
