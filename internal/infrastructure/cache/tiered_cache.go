package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/janhq/jan-summarizer/internal/domain/summary"
	"github.com/janhq/jan-summarizer/internal/infrastructure/metrics"
)

// ErrCacheMiss is returned by a remote store for absent keys.
var ErrCacheMiss = errors.New("cache miss")

const keyPrefix = "summarizer:v1:"

// RemoteStore is the shared tier behind the in-process LRU.
type RemoteStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, expiration time.Duration) error
	DeletePattern(ctx context.Context, pattern string) error
}

// TieredCache checks the local LRU first and falls back to a shared store.
// Remote failures degrade to misses.
type TieredCache struct {
	local   *SummaryCache
	remote  RemoteStore
	ttl     time.Duration
	timeout time.Duration
	log     zerolog.Logger
}

// NewTieredCache layers local over remote. Remote calls are bounded by timeout.
func NewTieredCache(local *SummaryCache, remote RemoteStore, ttl, timeout time.Duration, log zerolog.Logger) *TieredCache {
	return &TieredCache{
		local:   local,
		remote:  remote,
		ttl:     ttl,
		timeout: timeout,
		log:     log.With().Str("component", "summary-cache").Logger(),
	}
}

func (c *TieredCache) Get(key string) (summary.Summary, bool) {
	if s, ok := c.local.lru.Get(key); ok {
		metrics.RecordCacheLookup(true)
		return s, true
	}

	ctx, cancel := c.opContext()
	defer cancel()

	raw, err := c.remote.Get(ctx, keyPrefix+key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.log.Warn().Err(err).Msg("shared cache read failed")
		}
		metrics.RecordCacheLookup(false)
		return summary.Summary{}, false
	}

	var s summary.Summary
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		c.log.Warn().Err(err).Msg("discarding undecodable shared cache entry")
		metrics.RecordCacheLookup(false)
		return summary.Summary{}, false
	}
	c.local.lru.Add(key, s)
	metrics.RecordCacheLookup(true)
	return s, true
}

func (c *TieredCache) Add(key string, s summary.Summary) {
	c.local.Add(key, s)

	data, err := json.Marshal(s)
	if err != nil {
		c.log.Warn().Err(err).Msg("encode summary for shared cache")
		return
	}

	ctx, cancel := c.opContext()
	defer cancel()
	if err := c.remote.Set(ctx, keyPrefix+key, string(data), c.ttl); err != nil {
		c.log.Warn().Err(err).Msg("shared cache write failed")
	}
}

// Purge clears both tiers.
func (c *TieredCache) Purge() {
	c.local.Purge()

	ctx, cancel := c.opContext()
	defer cancel()
	if err := c.remote.DeletePattern(ctx, keyPrefix+"*"); err != nil {
		c.log.Warn().Err(err).Msg("shared cache purge failed")
	}
}

func (c *TieredCache) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}
