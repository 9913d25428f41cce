package simulation

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"hemosim/internal/distribution"

	"github.com/google/uuid"
)

// ErrRunNotFound is returned when a run ID is unknown and no run has
// completed yet.
var ErrRunNotFound = errors.New("simulation run not found")

// Run is one completed simulation held in memory for later inspection.
// Runs are never persisted to disk.
type Run struct {
	ID          string        `json:"run_id"`
	Periods     int           `json:"periods"`
	Seed        *int64        `json:"seed,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"-"`
	Results     ResultTable   `json:"results"`
	CacheHit    bool          `json:"cache_hit,omitempty"`
	Fingerprint string        `json:"-"`
}

// Store keeps completed runs addressable by ID and tracks the most recent
// one, so tools can default to "the last run" when no ID is given.
type Store struct {
	mu     sync.RWMutex
	runs   map[string]*Run
	latest string

	// cached maps (table-set fingerprint, periods, seed) to a finished
	// result table. Only seeded runs land here: an unseeded run is not
	// reproducible, so caching it would change observable behavior.
	cached map[string]ResultTable
}

// NewStore creates an empty run store.
func NewStore() *Store {
	return &Store{
		runs:   make(map[string]*Run),
		cached: make(map[string]ResultTable),
	}
}

// Add registers a completed run under a fresh ID and marks it latest.
func (s *Store) Add(run *Run) string {
	id := uuid.NewString()
	run.ID = id

	s.mu.Lock()
	s.runs[id] = run
	s.latest = id
	s.mu.Unlock()
	return id
}

// Get returns the run with the given ID, or the latest run when id is
// empty.
func (s *Store) Get(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id == "" {
		id = s.latest
	}
	run, ok := s.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}
	return run, nil
}

// List returns all stored runs, newest first.
func (s *Store) List() []*Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs
}

// CacheKey derives the result-cache key for a seeded run over the given
// table set. The second return is false when seed is nil: such runs bypass
// the cache entirely.
func CacheKey(tables map[distribution.BloodType]*distribution.Table, periods int, seed *int64) (string, bool) {
	if seed == nil {
		return "", false
	}
	key := fmt.Sprintf("periods=%d|seed=%d", periods, *seed)
	for _, t := range distribution.BloodTypes() {
		key += "|" + tables[t].Fingerprint()
	}
	return key, true
}

// Cached returns the memoized result table for the key, if any.
func (s *Store) Cached(key string) (ResultTable, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results, ok := s.cached[key]
	return results, ok
}

// Memoize stores a finished result table under the key.
func (s *Store) Memoize(key string, results ResultTable) {
	s.mu.Lock()
	s.cached[key] = results
	s.mu.Unlock()
}
