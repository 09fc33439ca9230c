package store

import (
	"context"
	"errors"

	"github.com/geoquiz/backend/internal/domain/dataset"
)

var (
	ErrEmpty = errors.New("cache holds no entries")
)

// DatasetStore persists the scraped dataset between runs.
type DatasetStore interface {
	SaveDataset(ctx context.Context, d *dataset.Dataset) error
	LoadDataset(ctx context.Context) (*dataset.Dataset, error)
	Close() error
}
