package financials

import (
	"sync"
	"testing"

	"github.com/aristath/comps/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSymbolCache_GetPut(t *testing.T) {
	c := NewSymbolCache()

	_, ok := c.Get("AAPL")
	assert.False(t, ok)

	c.Put(domain.RawFinancials{Symbol: "AAPL", MarketCap: 3e12})
	raw, ok := c.Get("AAPL")
	assert.True(t, ok)
	assert.Equal(t, 3e12, raw.MarketCap)

	stats := c.Stats()
	assert.Equal(t, CacheStats{Entries: 1, Hits: 1, Misses: 1}, stats)
}

func TestSymbolCache_SymbolsSorted(t *testing.T) {
	c := NewSymbolCache()
	c.Put(domain.RawFinancials{Symbol: "MSFT"})
	c.Put(domain.RawFinancials{Symbol: "AAPL"})
	c.Put(domain.RawFinancials{Symbol: "GOOGL"})

	assert.Equal(t, []string{"AAPL", "GOOGL", "MSFT"}, c.Symbols())
	assert.Equal(t, 3, c.Len())
}

func TestSymbolCache_Reset(t *testing.T) {
	c := NewSymbolCache()
	c.Put(domain.RawFinancials{Symbol: "AAPL"})
	c.Put(domain.RawFinancials{Symbol: "MSFT"})
	c.Get("AAPL")

	assert.Equal(t, 2, c.Reset())
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Symbols())
	assert.Equal(t, int64(1), c.Stats().Hits)
}

func TestSymbolCache_ConcurrentAccess(t *testing.T) {
	c := NewSymbolCache()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Put(domain.RawFinancials{Symbol: "AAPL"})
			c.Get("AAPL")
			c.Stats()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(20), c.Stats().Hits+c.Stats().Misses)
}
