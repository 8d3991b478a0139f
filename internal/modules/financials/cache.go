package financials

import (
	"sort"
	"sync"

	"github.com/aristath/comps/internal/domain"
)

// SymbolCache holds fetched fact sheets by symbol. Entries never expire on their own;
// the owner decides the lifetime by calling Reset (see scheduler.CacheResetJob).
type SymbolCache struct {
	entries map[string]domain.RawFinancials
	hits    int64
	misses  int64
	mu      sync.RWMutex
}

// CacheStats is a point-in-time view of cache usage
type CacheStats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// NewSymbolCache creates an empty cache
func NewSymbolCache() *SymbolCache {
	return &SymbolCache{
		entries: make(map[string]domain.RawFinancials),
	}
}

// Get returns the cached fact sheet for symbol and records a hit or miss.
func (c *SymbolCache) Get(symbol string) (domain.RawFinancials, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.entries[symbol]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return raw, ok
}

// Put stores the fact sheet under its symbol.
func (c *SymbolCache) Put(raw domain.RawFinancials) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[raw.Symbol] = raw
}

// Len returns the number of cached symbols.
func (c *SymbolCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Symbols returns the cached symbols in alphabetical order.
func (c *SymbolCache) Symbols() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	symbols := make([]string, 0, len(c.entries))
	for s := range c.entries {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols
}

// Reset drops every entry and returns how many were removed. Counters are kept.
func (c *SymbolCache) Reset() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]domain.RawFinancials)
	return n
}

// Stats returns the current usage counters.
func (c *SymbolCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return CacheStats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
	}
}
