package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janhq/jan-summarizer/internal/domain/summary"
)

type fakeRemote struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	failing bool
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRemote) Get(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return "", errors.New("connection refused")
	}
	v, ok := f.data[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return v, nil
}

func (f *fakeRemote) Set(_ context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return errors.New("connection refused")
	}
	f.data[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeRemote) DeletePattern(_ context.Context, pattern string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range f.data {
		if strings.HasPrefix(k, prefix) {
			delete(f.data, k)
		}
	}
	return nil
}

func newTiered(remote RemoteStore) *TieredCache {
	return NewTieredCache(NewSummaryCache(8, time.Minute), remote, time.Minute, time.Second, zerolog.Nop())
}

func TestTieredCacheWritesThrough(t *testing.T) {
	remote := newFakeRemote()
	c := newTiered(remote)

	c.Add("k", summary.Summary{ID: "a", Text: "hello"})
	assert.Contains(t, remote.data, keyPrefix+"k")
	assert.Equal(t, time.Minute, remote.ttls[keyPrefix+"k"])

	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "hello", got.Text)
}

func TestTieredCacheReadsFromSharedTier(t *testing.T) {
	remote := newFakeRemote()
	writer := newTiered(remote)
	writer.Add("k", summary.Summary{ID: "a", Text: "from another replica"})

	reader := newTiered(remote)
	got, ok := reader.Get("k")
	require.True(t, ok)
	assert.Equal(t, "from another replica", got.Text)
	assert.Equal(t, 1, reader.local.Len())
}

func TestTieredCacheRemoteFailureIsMiss(t *testing.T) {
	remote := newFakeRemote()
	remote.failing = true
	c := newTiered(remote)

	c.Add("k", summary.Summary{ID: "a"})
	_, ok := newTiered(remote).Get("k")
	assert.False(t, ok)

	_, ok = c.Get("k")
	assert.True(t, ok)
}

func TestTieredCachePurgeClearsBothTiers(t *testing.T) {
	remote := newFakeRemote()
	remote.data["unrelated"] = "keep"
	c := newTiered(remote)
	c.Add("k", summary.Summary{ID: "a"})

	c.Purge()
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, map[string]string{"unrelated": "keep"}, remote.data)
}

func TestBuildUniversalOptions(t *testing.T) {
	opts, err := buildUniversalOptions("redis://user:pw@cache-1:6379/2, cache-2:6379")
	require.NoError(t, err)
	assert.Equal(t, []string{"cache-1:6379", "cache-2:6379"}, opts.Addrs)
	assert.Equal(t, "user", opts.Username)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 2, opts.DB)

	_, err = buildUniversalOptions(" , ")
	require.Error(t, err)
}
