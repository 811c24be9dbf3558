package ports

import (
	"context"

	"gemdash/domain/diamond"
)

// DatasetSource reads the diamonds table from wherever it is kept.
// Implementations are called once per process by the dataset store.
type DatasetSource interface {
	// Name identifies the source in logs and errors
	Name() string

	// Load reads and decodes the full table
	Load(ctx context.Context) (*diamond.Dataset, error)
}
