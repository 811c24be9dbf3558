// Package dataset owns the process-wide diamonds table. The table is loaded
// once from a source and shared read-only by every request.
package dataset

import (
	"context"
	"sync"
	"time"

	"gemdash/domain/diamond"
	"gemdash/internal"
	"gemdash/internal/telemetry"
	"gemdash/ports"
)

// Store memoizes the first load of its source, including a failed one.
type Store struct {
	source ports.DatasetSource
	logger *internal.Logger

	once    sync.Once
	dataset *diamond.Dataset
	err     error
}

// NewStore creates a store over source. Nothing is read until Get.
func NewStore(source ports.DatasetSource, logger *internal.Logger) *Store {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Store{source: source, logger: logger.With("Dataset")}
}

// Get returns the dataset, loading it on the first call. Later calls return
// the same pointer, or the same error.
func (s *Store) Get(ctx context.Context) (*diamond.Dataset, error) {
	s.once.Do(func() {
		start := time.Now()
		s.dataset, s.err = s.source.Load(ctx)
		telemetry.ObserveDatasetLoad(s.err)
		if s.err != nil {
			s.logger.Error("load from %s failed: %v", s.source.Name(), s.err)
			return
		}
		s.logger.Info("loaded %d rows from %s in %v", s.dataset.Len(), s.source.Name(), time.Since(start).Round(time.Millisecond))
	})
	return s.dataset, s.err
}

// Source names the underlying source.
func (s *Store) Source() string {
	return s.source.Name()
}
