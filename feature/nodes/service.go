package nodes

import (
	"context"
	"sync"
	"time"

	"node-manager/core/etcd"
	"node-manager/core/manifest"
	"node-manager/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Service handles node lookups and on-demand validation batches.
type Service struct {
	store    etcd.Client
	logger   *zap.Logger
	reporter reconcile.Reporter

	// ttl bounds how long a fetched document is served from memory.
	// Zero disables caching.
	ttl   time.Duration
	mu    sync.RWMutex
	cache map[string]cacheEntry
	sf    singleflight.Group
}

type cacheEntry struct {
	result  etcd.GetResult
	fetched time.Time
}

// NewService creates a new node service.
func NewService(store etcd.Client, logger *zap.Logger, reporter reconcile.Reporter, cacheTTL time.Duration) *Service {
	return &Service{
		store:    store,
		logger:   logger,
		reporter: reporter,
		ttl:      cacheTTL,
		cache:    make(map[string]cacheEntry),
	}
}

// GetNode fetches the stored document for a hostname. Successful lookups
// are cached for the configured TTL; concurrent fetches for the same
// hostname collapse into a single store request.
func (s *Service) GetNode(ctx context.Context, hostname string) etcd.GetResult {
	// Fast path: fresh cache entry
	s.mu.RLock()
	entry, ok := s.cache[hostname]
	s.mu.RUnlock()

	if ok && !s.expired(entry) {
		return entry.result
	}

	// Slow path: fetch through singleflight to prevent stampedes
	v, _, _ := s.sf.Do(hostname, func() (interface{}, error) {
		// Double-check after acquiring the singleflight slot
		s.mu.RLock()
		entry, ok := s.cache[hostname]
		s.mu.RUnlock()

		if ok && !s.expired(entry) {
			return entry.result, nil
		}

		res := s.store.Get(ctx, hostname)

		// Only hits are cached; failures must stay retryable
		if res.Found() && s.ttl > 0 {
			s.mu.Lock()
			s.cache[hostname] = cacheEntry{result: res, fetched: time.Now()}
			s.mu.Unlock()
		}

		return res, nil
	})

	return v.(etcd.GetResult)
}

func (s *Service) expired(e cacheEntry) bool {
	if s.ttl == 0 {
		return true
	}
	return time.Since(e.fetched) > s.ttl
}

// Invalidate drops a hostname from the cache.
func (s *Service) Invalidate(hostname string) {
	s.mu.Lock()
	delete(s.cache, hostname)
	s.mu.Unlock()
}

// ValidateBatch parses a declared manifest and validates every record in
// it against the store. Parse failures abort before any store call.
func (s *Service) ValidateBatch(ctx context.Context, manifestData []byte, opts reconcile.Options) (reconcile.ValidateSummary, error) {
	records, err := manifest.Parse(manifestData)
	if err != nil {
		return reconcile.ValidateSummary{}, err
	}

	engine := reconcile.NewEngine(s.store, s.reporter, opts)
	return engine.ValidateAll(ctx, records), nil
}
