package distribution

import (
	"sync"
	"time"
)

// Cache memoizes loaded tables keyed by (path, modtime). A table is reused
// for as long as its source file is unchanged on disk; touching the file
// invalidates the entry on the next Get. The cache is owned by the caller;
// the MCP server holds one for its process lifetime.
type Cache struct {
	mu        sync.RWMutex
	entries   map[string]cacheEntry
	clampTail bool
}

type cacheEntry struct {
	table   *Table
	modTime time.Time
}

// NewCache creates an empty table cache. clampTail is applied to every
// table loaded through it.
func NewCache(clampTail bool) *Cache {
	return &Cache{
		entries:   make(map[string]cacheEntry),
		clampTail: clampTail,
	}
}

// Get returns the cached table for the blood type's source path, loading it
// on a miss and reloading it when the file's modtime has changed.
func (c *Cache) Get(t BloodType, path string) (*Table, error) {
	mt, err := modTime(path)
	if err == nil {
		c.mu.RLock()
		entry, ok := c.entries[path]
		c.mu.RUnlock()
		if ok && entry.modTime.Equal(mt) && entry.table.Type == t {
			return entry.table, nil
		}
	}

	table, err := LoadXLSX(t, path)
	if err != nil {
		return nil, err
	}
	table.ClampTail = c.clampTail

	c.mu.Lock()
	c.entries[path] = cacheEntry{table: table, modTime: table.ModTime}
	c.mu.Unlock()
	return table, nil
}

// GetAll resolves every configured source through the cache, degrading
// unreadable sources to empty tables the same way LoadTables does.
func (c *Cache) GetAll(sources Sources) map[BloodType]*Table {
	tables := make(map[BloodType]*Table, len(sources))
	for _, t := range BloodTypes() {
		path, ok := sources[t]
		if !ok {
			tables[t] = NewTable(t, nil)
			continue
		}
		table, err := c.Get(t, path)
		if err != nil {
			tables[t] = NewTable(t, nil)
			continue
		}
		tables[t] = table
	}
	return tables
}

// Len reports how many source files currently have a cached table.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
