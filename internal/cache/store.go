// Package cache maintains one in-memory cached value per logical resource
// key, shared across all consumers, with request deduplication, interval
// revalidation and optimistic local mutation.
package cache

import (
	"context"
	"sync"
	"time"

	"taskboard/internal/logging"
)

const (
	// DefaultDedupeInterval is how long a fetched value is considered
	// fresh: reads within this window never issue a duplicate request.
	DefaultDedupeInterval = 5 * time.Second

	// DefaultRefreshInterval is the period of background revalidation.
	DefaultRefreshInterval = 30 * time.Second
)

// Fetcher loads the current remote value for one resource key.
type Fetcher func(ctx context.Context) (interface{}, error)

// Updater applies a pure local transformation to a cached collection. It
// must not mutate the input.
type Updater func(current interface{}) interface{}

// State is the externally visible condition of one resource key.
type State struct {
	Data      interface{}
	Err       error
	IsLoading bool
}

// Options configures a Store.
type Options struct {
	// DedupeInterval is the freshness window. Zero means the default.
	DedupeInterval time.Duration
	// RefreshInterval is the background revalidation period. Zero means
	// the default; negative disables background refresh.
	RefreshInterval time.Duration
}

type entry struct {
	data       interface{}
	err        error
	loading    bool
	hasData    bool
	optimistic bool
	fetchedAt  time.Time
	inflight   chan struct{} // closed when the running fetch completes
}

// Store is the keyed cache. All fields are guarded by mu; fetches run
// outside the lock so concurrent readers of other keys never block.
type Store struct {
	mu       sync.Mutex
	entries  map[string]*entry
	fetchers map[string]Fetcher

	dedupeInterval  time.Duration
	refreshInterval time.Duration

	stopOnce sync.Once
	stop     chan struct{}
}

// NewStore creates an empty Store with the given options.
func NewStore(opts Options) *Store {
	dedupe := opts.DedupeInterval
	if dedupe == 0 {
		dedupe = DefaultDedupeInterval
	}
	refresh := opts.RefreshInterval
	if refresh == 0 {
		refresh = DefaultRefreshInterval
	}
	return &Store{
		entries:         make(map[string]*entry),
		fetchers:        make(map[string]Fetcher),
		dedupeInterval:  dedupe,
		refreshInterval: refresh,
		stop:            make(chan struct{}),
	}
}

// Register binds a fetcher to a resource key. It does not fetch.
func (s *Store) Register(key string, fetch Fetcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchers[key] = fetch
	if _, ok := s.entries[key]; !ok {
		s.entries[key] = &entry{}
	}
}

// Snapshot returns the current state of a key without triggering a fetch.
func (s *Store) Snapshot(key string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return State{}
	}
	return State{Data: e.data, Err: e.err, IsLoading: e.loading}
}

// Get returns the cached value for a key, fetching it when absent. Values
// younger than the dedupe interval are returned as-is; concurrent callers
// during a fetch share the one in-flight request. A stale value is
// returned immediately while a revalidation is kicked off in the
// background (stale-while-revalidate).
func (s *Store) Get(ctx context.Context, key string) (interface{}, error) {
	s.mu.Lock()
	e, fetch, err := s.lookupLocked(key)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}

	// Fresh enough, or pinned by an unconfirmed optimistic update.
	if e.hasData && (e.optimistic || time.Since(e.fetchedAt) < s.dedupeInterval) {
		data := e.data
		s.mu.Unlock()
		return data, nil
	}

	if e.inflight != nil {
		// Share the running fetch.
		done := e.inflight
		stale := e.hasData
		data := e.data
		s.mu.Unlock()
		if stale {
			return data, nil
		}
		return s.await(ctx, key, done)
	}

	if e.hasData {
		// Stale: serve it and revalidate in the background.
		s.startFetchLocked(key, e, fetch)
		data := e.data
		s.mu.Unlock()
		return data, nil
	}

	done := s.startFetchLocked(key, e, fetch)
	s.mu.Unlock()
	return s.await(ctx, key, done)
}

// Mutate discards any optimistic state for a key and replaces the cached
// value with a fresh fetch. This is the revalidate-true form of the SWR
// mutate call.
func (s *Store) Mutate(ctx context.Context, key string) (interface{}, error) {
	s.mu.Lock()
	e, fetch, err := s.lookupLocked(key)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	e.optimistic = false
	var done chan struct{}
	if e.inflight != nil {
		done = e.inflight
	} else {
		done = s.startFetchLocked(key, e, fetch)
	}
	s.mu.Unlock()
	return s.await(ctx, key, done)
}

// MutateWith applies a pure transformation to the cached value
// synchronously, before any network response arrives. This is the
// revalidate-false form: the caller remains responsible for resyncing.
func (s *Store) MutateWith(key string, update Updater) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	e.data = update(e.data)
	e.err = nil
	e.hasData = true
	e.optimistic = true
}

// Optimistic runs the three-state optimistic update transition: the
// updater is applied synchronously, then write persists the change
// remotely. On success the local value is confirmed; on failure the cache
// itself reverts by revalidating the key, then returns the write error.
func (s *Store) Optimistic(ctx context.Context, key string, update Updater, write func(ctx context.Context) error) error {
	s.MutateWith(key, update)

	if err := write(ctx); err != nil {
		logging.Debug("optimistic write failed, reverting", "key", key, "error", err)
		if _, revalidateErr := s.Mutate(ctx, key); revalidateErr != nil {
			logging.Warn("revert revalidation failed", "key", key, "error", revalidateErr)
		}
		return err
	}

	s.mu.Lock()
	if e, ok := s.entries[key]; ok {
		e.optimistic = false
		e.fetchedAt = time.Now()
	}
	s.mu.Unlock()
	return nil
}

// Invalidate marks a key stale so the next Get refetches it.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		e.fetchedAt = time.Time{}
		e.optimistic = false
	}
}

// StartRefresh begins background revalidation of every registered key on
// the store's refresh interval. It returns immediately; Stop ends it.
func (s *Store) StartRefresh(ctx context.Context) {
	if s.refreshInterval < 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(s.refreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				s.refreshAll(ctx)
			}
		}
	}()
}

// Stop ends background revalidation.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Store) refreshAll(ctx context.Context) {
	s.mu.Lock()
	keys := make([]string, 0, len(s.fetchers))
	for key := range s.fetchers {
		keys = append(keys, key)
	}
	s.mu.Unlock()

	for _, key := range keys {
		if _, err := s.Mutate(ctx, key); err != nil {
			logging.Debug("background revalidation failed", "key", key, "error", err)
		}
	}
}

// lookupLocked returns the entry and fetcher for a key. Callers hold mu.
func (s *Store) lookupLocked(key string) (*entry, Fetcher, error) {
	fetch, ok := s.fetchers[key]
	if !ok {
		return nil, nil, ErrUnknownKey{Key: key}
	}
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	return e, fetch, nil
}

// startFetchLocked launches the fetch goroutine for a key. Callers hold
// mu; the fetch itself runs unlocked.
func (s *Store) startFetchLocked(key string, e *entry, fetch Fetcher) chan struct{} {
	done := make(chan struct{})
	e.inflight = done
	e.loading = true

	go func() {
		// Fetches deliberately outlive their triggering caller: a
		// revalidation started by one reader still lands for all.
		data, err := fetch(context.Background())

		s.mu.Lock()
		if err != nil {
			e.err = err
		} else {
			e.data = data
			e.err = nil
			e.hasData = true
			e.optimistic = false
		}
		e.loading = false
		e.fetchedAt = time.Now()
		e.inflight = nil
		s.mu.Unlock()
		close(done)
	}()

	return done
}

func (s *Store) await(ctx context.Context, key string, done chan struct{}) (interface{}, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	if e.err != nil {
		return nil, e.err
	}
	return e.data, nil
}

// ErrUnknownKey reports a Get against a key with no registered fetcher.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "no fetcher registered for resource key: " + e.Key
}
