package store

import (
	"fmt"
	"log"
	"time"

	"github.com/bluele/gcache"

	"github.com/i474232898/bikeshare-dashboard/internal/observability"
	"github.com/i474232898/bikeshare-dashboard/internal/trips"
)

// LoadFunc reads a table from a path.
type LoadFunc func(path string) (*trips.Table, error)

// TableStore memoizes loaded tables by path.
//
// Concurrent first requests for the same path share one load. Failed loads are not cached,
// so a corrected file is picked up on the next request.
type TableStore struct {
	cache   gcache.Cache
	metrics *observability.Metrics
}

// NewTableStore creates a TableStore holding at most size tables (LRU).
// If size is <= 0, it holds one. A nil load uses trips.ReadTable.
func NewTableStore(size int, load LoadFunc, metrics *observability.Metrics) *TableStore {
	if size <= 0 {
		size = 1
	}
	if load == nil {
		load = trips.ReadTable
	}

	s := &TableStore{metrics: metrics}
	s.cache = gcache.New(size).
		LRU().
		LoaderFunc(func(key interface{}) (interface{}, error) {
			path := key.(string)

			start := time.Now()
			table, err := load(path)
			took := time.Since(start)

			s.metrics.ObserveLoad(path, table.Len(), took, err)
			if err != nil {
				log.Printf("store: load of %s failed after %s: %v", path, took, err)
				return nil, err
			}
			log.Printf("store: loaded %d rows from %s in %s", table.Len(), path, took)
			return table, nil
		}).
		Build()

	return s
}

// Get returns the table for path, loading it on first use.
func (s *TableStore) Get(path string) (*trips.Table, error) {
	s.metrics.ObserveCacheLookup(s.cache.Has(path))

	v, err := s.cache.Get(path)
	if err != nil {
		return nil, err
	}
	table, ok := v.(*trips.Table)
	if !ok {
		return nil, fmt.Errorf("store: unexpected cached value %T for %s", v, path)
	}
	return table, nil
}

// Purge drops the cached table for path. It reports whether an entry was removed.
func (s *TableStore) Purge(path string) bool {
	return s.cache.Remove(path)
}

// Len returns the number of cached tables.
func (s *TableStore) Len() int {
	return s.cache.Len(false)
}
