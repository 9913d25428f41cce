package simulation

import (
	"errors"
	"testing"
	"time"

	"hemosim/internal/distribution"
)

func TestStoreAddAndGet(t *testing.T) {
	store := NewStore()

	if _, err := store.Get(""); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Get on empty store error = %v, want ErrRunNotFound", err)
	}

	first := &Run{Periods: 5, StartedAt: time.Now().Add(-time.Minute)}
	second := &Run{Periods: 10, StartedAt: time.Now()}
	firstID := store.Add(first)
	secondID := store.Add(second)

	if firstID == secondID {
		t.Fatal("Expected distinct run IDs")
	}

	got, err := store.Get(firstID)
	if err != nil {
		t.Fatalf("Get(firstID) returned error: %v", err)
	}
	if got.Periods != 5 {
		t.Errorf("Get(firstID).Periods = %d, want 5", got.Periods)
	}

	latest, err := store.Get("")
	if err != nil {
		t.Fatalf("Get latest returned error: %v", err)
	}
	if latest.ID != secondID {
		t.Errorf("Latest run = %s, want %s", latest.ID, secondID)
	}

	if _, err := store.Get("bogus"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Get(bogus) error = %v, want ErrRunNotFound", err)
	}
}

func TestStoreListNewestFirst(t *testing.T) {
	store := NewStore()
	store.Add(&Run{Periods: 1, StartedAt: time.Now().Add(-2 * time.Minute)})
	store.Add(&Run{Periods: 2, StartedAt: time.Now().Add(-time.Minute)})
	store.Add(&Run{Periods: 3, StartedAt: time.Now()})

	runs := store.List()
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		if runs[i].StartedAt.After(runs[i-1].StartedAt) {
			t.Errorf("Runs not sorted newest first at position %d", i)
		}
	}
}

func TestCacheKeyRequiresSeed(t *testing.T) {
	tables := allTables()

	if _, ok := CacheKey(tables, 10, nil); ok {
		t.Error("Unseeded runs must not be cacheable")
	}

	key1, ok := CacheKey(tables, 10, seed(42))
	if !ok {
		t.Fatal("Seeded run must be cacheable")
	}
	key2, _ := CacheKey(tables, 10, seed(42))
	if key1 != key2 {
		t.Error("Identical inputs must produce identical cache keys")
	}

	if key3, _ := CacheKey(tables, 11, seed(42)); key3 == key1 {
		t.Error("Different period counts must produce different keys")
	}
	if key4, _ := CacheKey(tables, 10, seed(43)); key4 == key1 {
		t.Error("Different seeds must produce different keys")
	}

	changed := allTables()
	changed[distribution.TypeA] = distribution.NewTable(distribution.TypeA, []distribution.ClassInterval{
		distribution.NewClassInterval(1, "5-6", 1, 1.0, 1.0, 100),
	})
	if key5, _ := CacheKey(changed, 10, seed(42)); key5 == key1 {
		t.Error("Different table contents must produce different keys")
	}
}

func TestStoreMemoize(t *testing.T) {
	store := NewStore()
	key, _ := CacheKey(allTables(), 5, seed(42))

	if _, ok := store.Cached(key); ok {
		t.Error("Expected a miss before Memoize")
	}

	results := ResultTable{{Index: 1, Total: 12}}
	store.Memoize(key, results)

	cached, ok := store.Cached(key)
	if !ok {
		t.Fatal("Expected a hit after Memoize")
	}
	if len(cached) != 1 || cached[0].Total != 12 {
		t.Errorf("Cached results = %+v, want the memoized table", cached)
	}
}
