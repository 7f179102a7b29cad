package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/janhq/jan-summarizer/internal/domain/summary"
	"github.com/janhq/jan-summarizer/internal/infrastructure/metrics"
)

// SummaryCache is an in-memory LRU of recent summaries with a TTL per entry.
type SummaryCache struct {
	lru *expirable.LRU[string, summary.Summary]
}

// NewSummaryCache creates a cache holding at most size entries for ttl each.
func NewSummaryCache(size int, ttl time.Duration) *SummaryCache {
	if size <= 0 {
		size = 1
	}
	return &SummaryCache{
		lru: expirable.NewLRU[string, summary.Summary](size, nil, ttl),
	}
}

func (c *SummaryCache) Get(key string) (summary.Summary, bool) {
	s, ok := c.lru.Get(key)
	metrics.RecordCacheLookup(ok)
	return s, ok
}

func (c *SummaryCache) Add(key string, s summary.Summary) {
	c.lru.Add(key, s)
}

// Purge drops every entry. Called whenever the loaded model changes.
func (c *SummaryCache) Purge() {
	c.lru.Purge()
}

// Len returns the number of live entries.
func (c *SummaryCache) Len() int {
	return c.lru.Len()
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(string) (summary.Summary, bool) { return summary.Summary{}, false }
func (NoopCache) Add(string, summary.Summary)        {}
func (NoopCache) Purge()                             {}

// New returns the cache selected by configuration.
func New(enabled bool, size int, ttl time.Duration) summary.Cache {
	if !enabled {
		return NoopCache{}
	}
	return NewSummaryCache(size, ttl)
}
